package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"me-python-boutique/models"
	"me-python-boutique/utils"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService handles Google Drive API operations
// Implements DriveServiceInterface
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath string) (*DriveService, error) {
	// option.WithCredentialsFile automatically handles Service Account authentication
	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

var galleryMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// ListGalleryImages lists the image files in a Drive folder whose names
// follow SNAKEID-LABEL.EXT
func (ds *DriveService) ListGalleryImages(ctx context.Context, folderID string) ([]models.GalleryImage, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Context(ctx).
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	return galleryFromFiles(allFiles), nil
}

func galleryFromFiles(files []*drive.File) []models.GalleryImage {
	var images []models.GalleryImage
	for _, file := range files {
		if !galleryMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}

		snakeID, label, err := utils.ParseGalleryFileName(file.Name)
		if err != nil {
			log.Printf("⚠️  Skipping gallery file %s: %v", file.Name, err)
			continue
		}

		images = append(images, models.GalleryImage{
			DriveFileID: file.Id,
			FileName:    file.Name,
			SnakeID:     snakeID,
			Label:       label,
			ImageURL:    fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id),
		})
	}
	return images
}
