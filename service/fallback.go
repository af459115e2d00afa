package service

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"me-python-boutique/models"
	"me-python-boutique/utils"
)

//go:embed data/fallback_snakes.yaml
var fallbackSnakesYAML []byte

// fallbackSnake is the on-disk shape of a fallback entry. Gender and
// availability go through the same vocabulary mapping as remote records.
type fallbackSnake struct {
	ID             string   `yaml:"id"`
	Morph          string   `yaml:"morph"`
	ScientificName string   `yaml:"scientificName"`
	Price          int64    `yaml:"price"`
	Gender         string   `yaml:"gender"`
	Weight         float64  `yaml:"weight"`
	HatchDate      string   `yaml:"hatchDate"`
	Genetics       []string `yaml:"genetics"`
	Diet           string   `yaml:"diet"`
	Availability   string   `yaml:"availability"`
	Description    string   `yaml:"description"`
	Images         []string `yaml:"images"`
}

// ParseFallbackSnakes decodes a YAML list of snakes
func ParseFallbackSnakes(data []byte) ([]models.Snake, error) {
	var entries []fallbackSnake
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse fallback snakes: %w", err)
	}

	snakes := make([]models.Snake, 0, len(entries))
	for _, e := range entries {
		snake := models.Snake{
			ID:             orDefault(e.ID, models.NoID),
			Morph:          orDefault(e.Morph, models.UnknownMorph),
			ScientificName: orDefault(e.ScientificName, models.DefaultScientificName),
			Price:          utils.CoercePrice(e.Price),
			Gender:         utils.MapGender(e.Gender),
			Weight:         nonNegative(e.Weight),
			HatchDate:      orDefault(e.HatchDate, models.UnknownHatchDate),
			Genetics:       e.Genetics,
			Diet:           orDefault(e.Diet, models.DefaultDiet),
			Availability:   utils.MapAvailability(e.Availability),
			Description:    orDefault(e.Description, models.DefaultDescription),
		}
		if snake.Genetics == nil {
			snake.Genetics = []string{}
		}
		setImages(&snake, e.Images)
		snakes = append(snakes, snake)
	}
	return snakes, nil
}

// setImages fills both galleries. Bare file names refer to local files
// served (and thumbnailed) by the image endpoint.
func setImages(snake *models.Snake, refs []string) {
	var originals, optimized []string
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if isLocalImage(ref) {
			name := url.PathEscape(path.Base(ref))
			originals = append(originals, "/images/"+name+"?size=full")
			optimized = append(optimized, "/images/"+name+"?size=medium")
			continue
		}
		u := utils.NormalizeAssetURL(ref)
		originals = append(originals, u)
		optimized = append(optimized, utils.OptimizeImageURL(u))
	}
	if len(originals) == 0 {
		originals = []string{models.PlaceholderImageURL}
		optimized = []string{utils.OptimizeImageURL(models.PlaceholderImageURL)}
	}
	snake.OriginalImages = originals
	snake.OriginalImageURL = originals[0]
	snake.Images = optimized
	snake.ImageURL = optimized[0]
}

func isLocalImage(ref string) bool {
	return !strings.HasPrefix(ref, "//") && !strings.Contains(ref, "://")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

// FallbackCatalog serves the bundled static dataset, optionally enriched
// with gallery images from a Drive folder
type FallbackCatalog struct {
	snakes   []models.Snake
	drive    DriveServiceInterface
	folderID string
}

// NewFallbackCatalog loads the embedded dataset. drive may be nil.
func NewFallbackCatalog(drive DriveServiceInterface, folderID string) (*FallbackCatalog, error) {
	snakes, err := ParseFallbackSnakes(fallbackSnakesYAML)
	if err != nil {
		return nil, err
	}
	return &FallbackCatalog{snakes: snakes, drive: drive, folderID: folderID}, nil
}

// Snakes returns a copy of the fallback dataset. Drive gallery images are
// appended to their snakes when a folder is configured; Drive errors are
// logged and ignored.
func (f *FallbackCatalog) Snakes(ctx context.Context) []models.Snake {
	snakes := make([]models.Snake, len(f.snakes))
	copy(snakes, f.snakes)

	if f.drive == nil || f.folderID == "" {
		return snakes
	}

	gallery, err := f.drive.ListGalleryImages(ctx, f.folderID)
	if err != nil {
		log.Printf("⚠️  Could not list fallback gallery from Drive folder %s: %v", f.folderID, err)
		return snakes
	}

	byID := make(map[string][]string)
	for _, img := range gallery {
		byID[img.SnakeID] = append(byID[img.SnakeID], img.ImageURL)
	}
	for i := range snakes {
		extra := byID[strings.ToUpper(snakes[i].ID)]
		if len(extra) == 0 {
			continue
		}
		addGalleryImages(&snakes[i], extra)
	}
	return snakes
}

// addGalleryImages appends Drive images to both galleries, keeping them index
// aligned. A placeholder-only gallery is replaced.
func addGalleryImages(snake *models.Snake, extra []string) {
	originals := snake.OriginalImages
	optimized := snake.Images
	if len(originals) == 1 && originals[0] == models.PlaceholderImageURL {
		originals, optimized = nil, nil
	}
	originals = append([]string(nil), originals...)
	optimized = append([]string(nil), optimized...)

	seen := make(map[string]bool, len(originals)+len(extra))
	for _, u := range originals {
		seen[u] = true
	}
	for _, u := range extra {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		originals = append(originals, u)
		optimized = append(optimized, utils.OptimizeImageURL(u))
	}
	if len(originals) == 0 {
		return
	}

	snake.OriginalImages = originals
	snake.OriginalImageURL = originals[0]
	snake.Images = optimized
	snake.ImageURL = optimized[0]
}
