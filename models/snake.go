package models

import "time"

// Gender of a catalog animal
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Availability is the sale status of a catalog item
type Availability string

const (
	AvailabilityAvailable Availability = "Available"
	AvailabilityOnHold    Availability = "On Hold"
	AvailabilitySold      Availability = "Sold"
	AvailabilityPreOrder  Availability = "Pre-Order"
)

// Sentinels and defaults applied by the normalizer
const (
	NoID                  = "No ID"
	UnknownMorph          = "Unknown"
	UnknownHatchDate      = "Unknown"
	DefaultScientificName = "Python regius"
	DefaultDiet           = "Frozen/Thawed Rodent"
	DefaultDescription    = "No description provided."
	PlaceholderImageURL   = "https://picsum.photos/seed/error/800/800"
)

// Snake represents a single animal listed for sale
type Snake struct {
	ID               string       `json:"id" yaml:"id"`
	Morph            string       `json:"morph" yaml:"morph"`
	ScientificName   string       `json:"scientificName" yaml:"scientificName"`
	Price            int64        `json:"price" yaml:"price"`
	Gender           Gender       `json:"gender" yaml:"gender"`
	Weight           float64      `json:"weight" yaml:"weight"` // grams
	HatchDate        string       `json:"hatchDate" yaml:"hatchDate"`
	Genetics         []string     `json:"genetics" yaml:"genetics"`
	Diet             string       `json:"diet" yaml:"diet"`
	Availability     Availability `json:"availability" yaml:"availability"`
	Description      string       `json:"description" yaml:"description"`
	ImageURL         string       `json:"imageUrl" yaml:"imageUrl"`
	Images           []string     `json:"images" yaml:"images"`
	OriginalImageURL string       `json:"originalImageUrl" yaml:"originalImageUrl"`
	OriginalImages   []string     `json:"originalImages" yaml:"originalImages"`
	CreatedAt        *time.Time   `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
}

// IsSold reports whether the snake is no longer for sale
func (s Snake) IsSold() bool {
	return s.Availability == AvailabilitySold
}

// LightboxImages returns the full-resolution gallery, falling back to the
// optimized one when no originals were recorded.
func (s Snake) LightboxImages() []string {
	if len(s.OriginalImages) > 0 {
		return s.OriginalImages
	}
	return s.Images
}
