package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"

	"me-python-boutique/models"
)

type stubDrive struct {
	images []models.GalleryImage
	err    error
}

func (s *stubDrive) ListGalleryImages(ctx context.Context, folderID string) ([]models.GalleryImage, error) {
	return s.images, s.err
}

func TestEmbeddedFallbackDataset(t *testing.T) {
	snakes, err := ParseFallbackSnakes(fallbackSnakesYAML)
	require.NoError(t, err)
	require.Len(t, snakes, 6)

	first := snakes[0]
	assert.Equal(t, "BP-001", first.ID)
	assert.Equal(t, int64(38000), first.Price)
	assert.Equal(t, models.GenderMale, first.Gender)
	assert.Equal(t, models.AvailabilityAvailable, first.Availability)
	assert.Len(t, first.Images, len(first.OriginalImages))
	assert.True(t, strings.HasPrefix(first.ImageURL, first.OriginalImageURL))

	assert.Equal(t, models.AvailabilitySold, snakes[4].Availability)
	assert.Equal(t, models.AvailabilityPreOrder, snakes[5].Availability)
}

func TestParseFallbackSnakesDefaultsAndLocalImages(t *testing.T) {
	data := []byte(`
- id: LOCAL-1
  gender: 母
  availability: 已售出
  images: [local-1.jpg, //cdn.example/b.png]
- morph: Spider
`)
	snakes, err := ParseFallbackSnakes(data)
	require.NoError(t, err)
	require.Len(t, snakes, 2)

	assert.Equal(t, models.GenderFemale, snakes[0].Gender)
	assert.Equal(t, models.AvailabilitySold, snakes[0].Availability)
	assert.Equal(t, []string{"/images/local-1.jpg?size=full", "https://cdn.example/b.png"}, snakes[0].OriginalImages)
	assert.Equal(t, "/images/local-1.jpg?size=medium", snakes[0].ImageURL)

	assert.Equal(t, models.NoID, snakes[1].ID)
	assert.Equal(t, models.PlaceholderImageURL, snakes[1].OriginalImageURL)
	assert.Equal(t, []string{}, snakes[1].Genetics)
}

func TestParseFallbackSnakesInvalidYAML(t *testing.T) {
	_, err := ParseFallbackSnakes([]byte("- id: [unclosed"))
	assert.Error(t, err)
}

func TestFallbackCatalogMergesDriveGallery(t *testing.T) {
	drv := &stubDrive{images: []models.GalleryImage{
		{SnakeID: "BP-002", ImageURL: "https://drive.google.com/uc?id=abc"},
		{SnakeID: "BP-404", ImageURL: "https://drive.google.com/uc?id=zzz"},
	}}
	fb, err := NewFallbackCatalog(drv, "folder")
	require.NoError(t, err)

	snakes := fb.Snakes(context.Background())
	assert.Contains(t, snakes[1].OriginalImages, "https://drive.google.com/uc?id=abc")
	assert.NotContains(t, snakes[0].OriginalImages, "https://drive.google.com/uc?id=abc")

	// the embedded dataset itself is left untouched
	again, err := NewFallbackCatalog(nil, "")
	require.NoError(t, err)
	assert.NotContains(t, again.Snakes(context.Background())[1].OriginalImages, "https://drive.google.com/uc?id=abc")
}

func TestDriveGalleryReplacesPlaceholder(t *testing.T) {
	snakes, err := ParseFallbackSnakes([]byte(`
- id: BP-900
  morph: Pastel
`))
	require.NoError(t, err)
	require.Equal(t, models.PlaceholderImageURL, snakes[0].OriginalImageURL)

	fb := &FallbackCatalog{
		snakes:   snakes,
		drive:    &stubDrive{images: []models.GalleryImage{{SnakeID: "BP-900", ImageURL: "https://drive.google.com/uc?id=d1"}}},
		folderID: "folder",
	}

	got := fb.Snakes(context.Background())[0]
	assert.Equal(t, []string{"https://drive.google.com/uc?id=d1"}, got.OriginalImages)
	assert.Equal(t, "https://drive.google.com/uc?id=d1", got.OriginalImageURL)
	assert.Equal(t, []string{"https://drive.google.com/uc?id=d1&w=800&q=75&fm=webp"}, got.Images)
	assert.Equal(t, "https://drive.google.com/uc?id=d1&w=800&q=75&fm=webp", got.ImageURL)

	// the parsed dataset still carries its placeholder
	assert.Equal(t, models.PlaceholderImageURL, fb.snakes[0].OriginalImageURL)
}

func TestDriveGalleryKeepsGalleriesAligned(t *testing.T) {
	snakes, err := ParseFallbackSnakes([]byte(`
- id: BP-901
  images: ["//cdn.host/a.jpg", local.jpg]
`))
	require.NoError(t, err)

	fb := &FallbackCatalog{
		snakes: snakes,
		drive: &stubDrive{images: []models.GalleryImage{
			{SnakeID: "BP-901", ImageURL: "https://drive.google.com/uc?id=d2"},
			{SnakeID: "BP-901", ImageURL: "https://cdn.host/a.jpg"},
		}},
		folderID: "folder",
	}

	got := fb.Snakes(context.Background())[0]
	require.Len(t, got.OriginalImages, 3)
	require.Len(t, got.Images, 3)
	assert.Equal(t, "https://cdn.host/a.jpg", got.OriginalImageURL)
	assert.Equal(t, "https://drive.google.com/uc?id=d2", got.OriginalImages[2])
	assert.Equal(t, "https://drive.google.com/uc?id=d2&w=800&q=75&fm=webp", got.Images[2])
	assert.Equal(t, "/images/local.jpg?size=medium", got.Images[1])
}

func TestFallbackCatalogIgnoresDriveErrors(t *testing.T) {
	fb, err := NewFallbackCatalog(&stubDrive{err: errors.New("403")}, "folder")
	require.NoError(t, err)
	assert.Len(t, fb.Snakes(context.Background()), 6)
}

func TestGalleryFromFiles(t *testing.T) {
	files := []*drive.File{
		{Id: "1", Name: "bp-001-head.jpg", MimeType: "image/jpeg"},
		{Id: "2", Name: "notes.txt", MimeType: "text/plain"},
		{Id: "3", Name: "random.png", MimeType: "image/png"},
		{Id: "4", Name: "BP-003.webp", MimeType: "image/webp"},
	}

	images := galleryFromFiles(files)
	require.Len(t, images, 2)
	assert.Equal(t, "BP-001", images[0].SnakeID)
	assert.Equal(t, "head", images[0].Label)
	assert.Equal(t, "https://drive.google.com/uc?id=1", images[0].ImageURL)
	assert.Equal(t, "BP-003", images[1].SnakeID)
	assert.Empty(t, images[1].Label)
}
