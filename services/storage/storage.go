package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService is the thin adapter over the external blob store used for
// property images. The store itself (Cloudinary) owns durability and serving.
type StorageService interface {
	// UploadImage pushes a local file into the given folder and returns the
	// public ID and delivery URL.
	UploadImage(ctx context.Context, localFilePath, folder string) (publicID, url string, err error)
	// DeleteImage removes an uploaded image by its public ID.
	DeleteImage(ctx context.Context, publicID string) error
}

type cloudinaryStorageService struct {
	client *cloudinary.Cloudinary
}

// NewCloudinaryStorageService wraps a configured Cloudinary client.
func NewCloudinaryStorageService(client *cloudinary.Cloudinary) StorageService {
	return &cloudinaryStorageService{client: client}
}

func (s *cloudinaryStorageService) UploadImage(ctx context.Context, localFilePath, folder string) (string, string, error) {
	result, err := s.client.Upload.Upload(ctx, localFilePath, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %w", err)
	}
	return result.PublicID, result.SecureURL, nil
}

func (s *cloudinaryStorageService) DeleteImage(ctx context.Context, publicID string) error {
	if _, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", publicID, err)
	}
	return nil
}
