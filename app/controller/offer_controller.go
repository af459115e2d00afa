package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"me-python-boutique/models"
	"me-python-boutique/service"
	"me-python-boutique/utils"
)

// OfferController handles price offer submissions
type OfferController struct {
	offers *service.OfferService
}

// NewOfferController creates a new OfferController
func NewOfferController(offers *service.OfferService) *OfferController {
	return &OfferController{offers: offers}
}

// offerRequest accepts the amount as a number or as typed text ("NT$ 35,000")
type offerRequest struct {
	SnakeID string `json:"snakeId"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Amount  any    `json:"amount"`
	Message string `json:"message"`
}

// Create handles POST /offers
func (c *OfferController) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req offerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateOffer: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	offer := &models.PriceOffer{
		SnakeID: req.SnakeID,
		Name:    req.Name,
		Contact: req.Contact,
		Amount:  utils.CoercePrice(req.Amount),
		Message: req.Message,
	}

	err := c.offers.Submit(r.Context(), offer)
	switch {
	case errors.Is(err, service.ErrInvalidOffer):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrNotFound):
		writeNotFound(w, "Snake not found")
		return
	case err != nil:
		log.Printf("❌ CreateOffer: %v", err)
		http.Error(w, "Failed to submit offer", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusAccepted, models.PriceOfferResponse{Status: "accepted", SnakeID: offer.SnakeID})
}
