package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"me-python-boutique/models"
)

// ErrNoSnapshot is returned when no catalog snapshot has been stored yet
var ErrNoSnapshot = errors.New("no catalog snapshot stored")

// SnapshotRepository stores the last good catalog load
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(conn *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: conn}
}

// Ensure SnapshotRepository implements SnapshotRepositoryInterface
var _ SnapshotRepositoryInterface = (*SnapshotRepository)(nil)

// Save stores snakes as a new snapshot row
func (r *SnapshotRepository) Save(ctx context.Context, source models.CatalogSource, snakes []models.Snake) error {
	payload, err := json.Marshal(snakes)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO catalog_snapshots (source, item_count, payload)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, string(source), len(snakes), payload); err != nil {
		log.Printf("❌ Error saving catalog snapshot: %v", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	log.Printf("✓ Catalog snapshot saved (%d snakes, source=%s)", len(snakes), source)
	return nil
}

// Latest loads the newest snapshot
func (r *SnapshotRepository) Latest(ctx context.Context) ([]models.Snake, time.Time, error) {
	query := `
		SELECT payload, created_at
		FROM catalog_snapshots
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	var payload []byte
	var createdAt time.Time
	err := r.db.QueryRowContext(ctx, query).Scan(&payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query snapshot: %w", err)
	}

	var snakes []models.Snake
	if err := json.Unmarshal(payload, &snakes); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snakes, createdAt, nil
}
