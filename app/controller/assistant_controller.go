package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"me-python-boutique/models"
	"me-python-boutique/service"
)

// AssistantController answers care questions
type AssistantController struct {
	assistant *service.AssistantService
}

// NewAssistantController creates a new AssistantController
func NewAssistantController(assistant *service.AssistantService) *AssistantController {
	return &AssistantController{assistant: assistant}
}

// Ask handles POST /assistant
func (c *AssistantController) Ask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	resp, err := c.assistant.Ask(r.Context(), req.Question)
	if errors.Is(err, service.ErrEmptyQuestion) {
		http.Error(w, "question cannot be empty", http.StatusBadRequest)
		return
	}
	if err != nil {
		resp = models.AssistantResponse{Answer: service.AssistantApology, IsError: true}
	}
	writeJSON(w, http.StatusOK, resp)
}
