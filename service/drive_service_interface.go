package service

import (
	"context"

	"me-python-boutique/models"
)

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListGalleryImages(ctx context.Context, folderID string) ([]models.GalleryImage, error)
}
