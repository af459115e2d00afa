package service

import (
	"context"

	"me-python-boutique/models"
)

// ContentStoreClientInterface defines the contract for reading the headless content store
type ContentStoreClientInterface interface {
	// Enabled is false when the store credentials are missing
	Enabled() bool
	FetchEntries(ctx context.Context, contentType string, order string) ([]models.RawRecord, error)
}
