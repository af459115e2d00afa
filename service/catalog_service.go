package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"me-python-boutique/models"
	"me-python-boutique/repository"
	"me-python-boutique/utils"
)

// ErrNotFound is returned when a snake or vendor id is not in the catalog
var ErrNotFound = errors.New("not found")

// CatalogService owns the in-memory catalog. Reads never block on a refresh:
// a refresh builds the new lists first and swaps them in under the lock.
type CatalogService struct {
	normalizer *Normalizer
	snapshots  repository.SnapshotRepositoryInterface
	fallback   *FallbackCatalog

	mu        sync.RWMutex
	snakes    []models.Snake
	vendors   []models.Vendor
	source    models.CatalogSource
	loadedAt  time.Time
	refreshMu sync.Mutex

	cron *cron.Cron
}

// NewCatalogService creates a CatalogService. snapshots and fallback may be nil.
func NewCatalogService(normalizer *Normalizer, snapshots repository.SnapshotRepositoryInterface, fallback *FallbackCatalog) *CatalogService {
	return &CatalogService{
		normalizer: normalizer,
		snapshots:  snapshots,
		fallback:   fallback,
		snakes:     []models.Snake{},
		vendors:    []models.Vendor{},
		source:     models.SourceFallback,
	}
}

// LoadSnakes fetches and normalizes the remote catalog. An empty remote
// result falls back to the last stored snapshot, then to the bundled dataset.
func (s *CatalogService) LoadSnakes(ctx context.Context) ([]models.Snake, models.CatalogSource) {
	snakes := s.normalizer.FetchSnakes(ctx)
	if len(snakes) > 0 {
		if s.snapshots != nil {
			if err := s.snapshots.Save(ctx, models.SourceRemote, snakes); err != nil {
				log.Printf("⚠️  Could not store catalog snapshot: %v", err)
			}
		}
		return snakes, models.SourceRemote
	}

	if s.snapshots != nil {
		stored, at, err := s.snapshots.Latest(ctx)
		switch {
		case err == nil && len(stored) > 0:
			log.Printf("🔄 Remote catalog empty, using snapshot from %s (%d snakes)", at.Format(time.RFC3339), len(stored))
			return stored, models.SourceSnapshot
		case err != nil && !errors.Is(err, repository.ErrNoSnapshot):
			log.Printf("❌ Error loading catalog snapshot: %v", err)
		}
	}

	if s.fallback == nil {
		return []models.Snake{}, models.SourceFallback
	}
	log.Printf("🔄 Remote catalog empty, using bundled fallback dataset")
	return s.fallback.Snakes(ctx), models.SourceFallback
}

// LoadVendors fetches and normalizes vendors. There is no fallback dataset.
func (s *CatalogService) LoadVendors(ctx context.Context) []models.Vendor {
	return s.normalizer.FetchVendors(ctx)
}

// Refresh reloads snakes and vendors and replaces the catalog. Concurrent
// calls are serialized.
func (s *CatalogService) Refresh(ctx context.Context) models.CatalogSource {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	snakes, source := s.LoadSnakes(ctx)
	vendors := s.LoadVendors(ctx)

	s.mu.Lock()
	s.snakes = snakes
	s.vendors = vendors
	s.source = source
	s.loadedAt = time.Now()
	s.mu.Unlock()

	log.Printf("✓ Catalog refreshed: %d snakes (%s), %d vendors", len(snakes), source, len(vendors))
	return source
}

// StartSchedule runs Refresh on a cron schedule. An empty schedule does nothing.
func (s *CatalogService) StartSchedule(ctx context.Context, schedule string) error {
	if strings.TrimSpace(schedule) == "" {
		log.Printf("⚠️  CATALOG_REFRESH_CRON not set, catalog refreshes only on demand")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { s.Refresh(ctx) }); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	c.Start()
	s.cron = c
	log.Printf("✓ Catalog refresh scheduled: %s", schedule)
	return nil
}

// Stop halts the refresh schedule and waits for a running refresh to finish
func (s *CatalogService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// List returns the filtered and sorted catalog
func (s *CatalogService) List(query models.CatalogQuery) models.CatalogPage {
	s.mu.RLock()
	snakes := FilterAndSort(s.snakes, query)
	source := s.source
	s.mu.RUnlock()

	return models.CatalogPage{Source: source, Count: len(snakes), Snakes: snakes}
}

// Get looks a snake up by id, ignoring case
func (s *CatalogService) Get(id string) (models.Snake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, snake := range s.snakes {
		if strings.EqualFold(snake.ID, strings.TrimSpace(id)) {
			return snake, nil
		}
	}
	return models.Snake{}, fmt.Errorf("snake %s: %w", id, ErrNotFound)
}

// Vendors returns every vendor in source order
func (s *CatalogService) Vendors() []models.Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Vendor, len(s.vendors))
	copy(out, s.vendors)
	return out
}

// Vendor looks a vendor up by id
func (s *CatalogService) Vendor(id string) (models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, v := range s.vendors {
		if strings.EqualFold(v.ID, strings.TrimSpace(id)) {
			return v, nil
		}
	}
	return models.Vendor{}, fmt.Errorf("vendor %s: %w", id, ErrNotFound)
}

// Source reports where the current catalog came from and when it was loaded
func (s *CatalogService) Source() (models.CatalogSource, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source, s.loadedAt
}

// InquiryText builds the message a buyer copies into a messaging app
func InquiryText(snake models.Snake) string {
	return fmt.Sprintf("你好 我想詢問 %s%s (%s)", utils.GenderLabel(snake.Gender), snake.Morph, snake.ID)
}
