package models

// SortMode selects the catalog ordering
type SortMode string

const (
	SortDefault        SortMode = "default"
	SortPriceDesc      SortMode = "priceDesc"
	SortPriceAsc       SortMode = "priceAsc"
	SortListingTime    SortMode = "listingTime"
	SortBirthDateYoung SortMode = "birthDateYoung"
	SortBirthDateOld   SortMode = "birthDateOld"
)

// CatalogQuery narrows and orders the in-memory catalog
type CatalogQuery struct {
	Sort        SortMode
	ShowSoldOut bool
}

// CatalogSource names where the current catalog came from
type CatalogSource string

const (
	SourceRemote   CatalogSource = "remote"
	SourceSnapshot CatalogSource = "snapshot"
	SourceFallback CatalogSource = "fallback"
)

// CatalogPage is the list response for the storefront
type CatalogPage struct {
	Source CatalogSource `json:"source"`
	Count  int           `json:"count"`
	Snakes []Snake       `json:"snakes"`
}

// PriceListItem is one row of the printable price list
type PriceListItem struct {
	ID           string
	Morph        string
	GenderLabel  string
	Price        string
	Availability string
	ImageURL     string
	Genetics     string
}

// PriceListData is passed to the price list template
type PriceListData struct {
	Title       string
	GeneratedAt string
	Items       []PriceListItem
}

// NotFoundResponse is returned when a detail lookup misses
type NotFoundResponse struct {
	Error      string `json:"error"`
	CatalogURL string `json:"catalogUrl"`
}

// GalleryImage is an extra image for a fallback snake found in a Drive folder
type GalleryImage struct {
	DriveFileID string `json:"driveFileId"`
	FileName    string `json:"fileName"`
	SnakeID     string `json:"snakeId"`
	Label       string `json:"label"`
	ImageURL    string `json:"imageUrl"`
}
