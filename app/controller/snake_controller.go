package controller

import (
	"errors"
	"log"
	"net/http"

	"me-python-boutique/models"
	"me-python-boutique/service"
)

// SnakeController handles HTTP requests for the snake catalog
type SnakeController struct {
	catalog *service.CatalogService
}

// NewSnakeController creates a new SnakeController
func NewSnakeController(catalog *service.CatalogService) *SnakeController {
	return &SnakeController{catalog: catalog}
}

// List handles GET /snakes?sort=priceAsc&showSoldOut=true
func (c *SnakeController) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page := c.catalog.List(parseCatalogQuery(r))
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /snakes/{id} and GET /snakes/{id}/inquiry
func (c *SnakeController) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, rest := pathID(r.URL.Path, "/snakes/")
	if id == "" || (rest != "" && rest != "inquiry") {
		writeNotFound(w, "Snake not found")
		return
	}

	snake, err := c.catalog.Get(id)
	if errors.Is(err, service.ErrNotFound) {
		log.Printf("⚠️  Snake %s not found", id)
		writeNotFound(w, "Snake not found")
		return
	}
	if err != nil {
		http.Error(w, "Failed to load snake", http.StatusInternalServerError)
		return
	}

	if rest == "inquiry" {
		writeJSON(w, http.StatusOK, models.InquiryResponse{SnakeID: snake.ID, Text: service.InquiryText(snake)})
		return
	}
	writeJSON(w, http.StatusOK, snake)
}
