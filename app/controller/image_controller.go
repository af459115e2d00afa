package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"me-python-boutique/service"
)

// ImageController serves resized local snake photos
type ImageController struct {
	optimizer *service.ImageOptimizer
}

// NewImageController creates a new ImageController
func NewImageController(optimizer *service.ImageOptimizer) *ImageController {
	return &ImageController{optimizer: optimizer}
}

// GetImage handles GET /images/{name}?size=thumb|medium|full
func (c *ImageController) GetImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name, rest := pathID(r.URL.Path, "/images/")
	if rest != "" {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	data, err := c.optimizer.Get(name, r.URL.Query().Get("size"))
	if errors.Is(err, service.ErrImageNotFound) {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("❌ GetImage: Error optimizing %s: %v", name, err)
		http.Error(w, "Failed to process image", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ GetImage: Error writing response: %v", err)
	}
}
