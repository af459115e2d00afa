package controller

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"me-python-boutique/models"
	"me-python-boutique/service"
)

// priceListRenderer is the part of the price list service the controller needs
type priceListRenderer interface {
	RenderHTML(query models.CatalogQuery) (string, error)
	GeneratePDF(ctx context.Context, query models.CatalogQuery) ([]byte, error)
}

// CatalogController handles catalog maintenance and the printable price list
type CatalogController struct {
	catalog   *service.CatalogService
	priceList priceListRenderer
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalog *service.CatalogService, priceList priceListRenderer) *CatalogController {
	return &CatalogController{catalog: catalog, priceList: priceList}
}

type refreshResponse struct {
	Source   models.CatalogSource `json:"source"`
	Count    int                  `json:"count"`
	LoadedAt time.Time            `json:"loadedAt"`
}

// Refresh handles POST /catalog/refresh
func (c *CatalogController) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log.Printf("🔄 Refresh: catalog refresh requested")
	source := c.catalog.Refresh(r.Context())
	_, loadedAt := c.catalog.Source()
	page := c.catalog.List(models.CatalogQuery{ShowSoldOut: true})

	writeJSON(w, http.StatusOK, refreshResponse{Source: source, Count: page.Count, LoadedAt: loadedAt})
}

// RenderPriceList handles GET /catalog/render?sort=&showSoldOut=
// Returns the HTML page headless Chrome prints to PDF
func (c *CatalogController) RenderPriceList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	htmlContent, err := c.priceList.RenderHTML(parseCatalogQuery(r))
	if err != nil {
		log.Printf("❌ RenderPriceList: Error rendering HTML: %v", err)
		http.Error(w, fmt.Sprintf("Failed to render price list: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(htmlContent)); err != nil {
		log.Printf("❌ RenderPriceList: Error writing HTML response: %v", err)
	}
}

// DownloadPDF handles GET /catalog/pdf?sort=&showSoldOut=
func (c *CatalogController) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pdf, err := c.priceList.GeneratePDF(r.Context(), parseCatalogQuery(r))
	if err != nil {
		log.Printf("❌ DownloadPDF: Error generating PDF: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("me-python-price-list-%s.pdf", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("❌ DownloadPDF: Error writing PDF response: %v", err)
	}
}
