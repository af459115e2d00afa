package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"me-python-boutique/models"
	"me-python-boutique/service"
)

// catalogURL is where not-found responses point the client back to
const catalogURL = "/snakes"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, models.NotFoundResponse{Error: message, CatalogURL: catalogURL})
}

// parseCatalogQuery reads ?sort=&showSoldOut= from the request
func parseCatalogQuery(r *http.Request) models.CatalogQuery {
	q := r.URL.Query()
	showSoldOut, _ := strconv.ParseBool(strings.TrimSpace(q.Get("showSoldOut")))
	return models.CatalogQuery{
		Sort:        service.ParseSortMode(q.Get("sort")),
		ShowSoldOut: showSoldOut,
	}
}

// pathID returns the path segment after prefix, and whatever follows it
func pathID(path, prefix string) (id string, rest string) {
	trimmed := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	id, rest, _ = strings.Cut(trimmed, "/")
	return id, rest
}
