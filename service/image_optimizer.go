package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	qualityFull   = 90
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
	maxSizeFull   = 2000
)

// Image sizes accepted by the image endpoint
const (
	SizeThumb  = "thumb"
	SizeMedium = "medium"
	SizeFull   = "full"
)

// ErrImageNotFound is returned when the requested source file does not exist
var ErrImageNotFound = errors.New("image not found")

// ImageOptimizer serves locally stored snake photos resized and re-encoded
// as JPEG, caching every variant on disk
type ImageOptimizer struct {
	sourceDir string
	cacheDir  string
	mu        sync.Mutex
}

// NewImageOptimizer creates an ImageOptimizer reading from sourceDir
func NewImageOptimizer(sourceDir, cacheDir string) *ImageOptimizer {
	return &ImageOptimizer{sourceDir: sourceDir, cacheDir: cacheDir}
}

// EnsureCacheDir ensures the cache directory exists, creates it if it doesn't
func (o *ImageOptimizer) EnsureCacheDir() error {
	if err := os.MkdirAll(o.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// ParseSize maps a query value to a known size, defaulting to medium
func ParseSize(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case SizeThumb:
		return SizeThumb
	case SizeFull:
		return SizeFull
	default:
		return SizeMedium
	}
}

// Get returns the JPEG bytes of name at size, from cache when available
func (o *ImageOptimizer) Get(name string, size string) ([]byte, error) {
	clean, err := cleanImageName(name)
	if err != nil {
		return nil, err
	}
	size = ParseSize(size)

	cachePath := o.cachePath(clean, size)
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	// one encode per variant at a time
	o.mu.Lock()
	defer o.mu.Unlock()
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	source, err := os.ReadFile(filepath.Join(o.sourceDir, clean))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", clean, ErrImageNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	data, err := OptimizeImage(source, size)
	if err != nil {
		return nil, err
	}
	if err := saveToCache(cachePath, data); err != nil {
		log.Printf("⚠️  %v", err)
	}
	return data, nil
}

func (o *ImageOptimizer) cachePath(name, size string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(o.cacheDir, fmt.Sprintf("%s_%s.jpg", base, size))
}

// cleanImageName rejects anything that is not a plain file name
func cleanImageName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid image name %q: %w", name, ErrImageNotFound)
	}
	return name, nil
}

func saveToCache(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Printf("✓ Image cached: %s", cachePath)
	return nil
}

// OptimizeImage decodes imageData (PNG or JPEG), shrinks it to the size's
// max dimension keeping aspect ratio and re-encodes it as JPEG
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var maxDim, quality int
	switch size {
	case SizeThumb:
		maxDim, quality = maxSizeThumb, qualityThumb
	case SizeFull:
		maxDim, quality = maxSizeFull, qualityFull
	default:
		maxDim, quality = maxSizeMedium, qualityMedium
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var resized image.Image = img
	if width > maxDim || height > maxDim {
		// imaging keeps the aspect ratio when one dimension is 0
		if width >= height {
			resized = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
		} else {
			resized = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
		}
		log.Printf("🔄 Resized %s image: %dx%d -> %dx%d", format, width, height, resized.Bounds().Dx(), resized.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
