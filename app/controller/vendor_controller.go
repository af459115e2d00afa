package controller

import (
	"errors"
	"net/http"

	"me-python-boutique/models"
	"me-python-boutique/service"
)

// vendorView adds the derived appendix flag to a vendor
type vendorView struct {
	models.Vendor
	HasAppendix bool `json:"hasAppendix"`
}

func toVendorView(v models.Vendor) vendorView {
	return vendorView{Vendor: v, HasAppendix: v.HasAppendix()}
}

// VendorController handles HTTP requests for vendors
type VendorController struct {
	catalog *service.CatalogService
}

// NewVendorController creates a new VendorController
func NewVendorController(catalog *service.CatalogService) *VendorController {
	return &VendorController{catalog: catalog}
}

// List handles GET /vendors
func (c *VendorController) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	vendors := c.catalog.Vendors()
	views := make([]vendorView, 0, len(vendors))
	for _, v := range vendors {
		views = append(views, toVendorView(v))
	}
	writeJSON(w, http.StatusOK, views)
}

// Get handles GET /vendors/{id}
func (c *VendorController) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, rest := pathID(r.URL.Path, "/vendors/")
	if id == "" || rest != "" {
		writeNotFound(w, "Vendor not found")
		return
	}

	vendor, err := c.catalog.Vendor(id)
	if errors.Is(err, service.ErrNotFound) {
		writeNotFound(w, "Vendor not found")
		return
	}
	if err != nil {
		http.Error(w, "Failed to load vendor", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toVendorView(vendor))
}
