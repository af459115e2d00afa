package repository

import (
	"context"
	"database/sql"
	"fmt"

	"me-python-boutique/models"
)

// OfferRepository handles database operations for price offers
type OfferRepository struct {
	db *sql.DB
}

// NewOfferRepository creates a new OfferRepository
func NewOfferRepository(conn *sql.DB) *OfferRepository {
	return &OfferRepository{db: conn}
}

// Ensure OfferRepository implements OfferRepositoryInterface
var _ OfferRepositoryInterface = (*OfferRepository)(nil)

// Insert records an offer and returns its id
func (r *OfferRepository) Insert(ctx context.Context, offer *models.PriceOffer) (int64, error) {
	query := `
		INSERT INTO price_offers (snake_id, name, contact, amount, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		offer.SnakeID,
		offer.Name,
		offer.Contact,
		offer.Amount,
		offer.Message,
	).Scan(&offer.ID, &offer.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert price offer: %w", err)
	}
	return offer.ID, nil
}

// ListBySnake returns the offers for one snake, newest first
func (r *OfferRepository) ListBySnake(ctx context.Context, snakeID string) ([]models.PriceOffer, error) {
	query := `
		SELECT id, snake_id, name, contact, amount, message, created_at
		FROM price_offers
		WHERE snake_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, snakeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query price offers: %w", err)
	}
	defer rows.Close()

	var offers []models.PriceOffer
	for rows.Next() {
		var o models.PriceOffer
		if err := rows.Scan(&o.ID, &o.SnakeID, &o.Name, &o.Contact, &o.Amount, &o.Message, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan price offer: %w", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate price offers: %w", err)
	}
	return offers, nil
}
