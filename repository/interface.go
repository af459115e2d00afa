package repository

import (
	"context"
	"time"

	"me-python-boutique/models"
)

// SnapshotRepositoryInterface defines the contract for catalog snapshot persistence
type SnapshotRepositoryInterface interface {
	Save(ctx context.Context, source models.CatalogSource, snakes []models.Snake) error
	// Latest returns the most recent snapshot, or ErrNoSnapshot
	Latest(ctx context.Context) ([]models.Snake, time.Time, error)
}

// OfferRepositoryInterface defines the contract for price offer records
type OfferRepositoryInterface interface {
	Insert(ctx context.Context, offer *models.PriceOffer) (int64, error)
	ListBySnake(ctx context.Context, snakeID string) ([]models.PriceOffer, error)
}
