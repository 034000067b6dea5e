package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/Anietiedaniel/stay-next-agent-service/internal/config"
)

// cloudinaryStorage implements Uploader over the Cloudinary API.
type cloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage creates the Cloudinary-backed Uploader.
func NewCloudinaryStorage(cfg *config.Config) (Uploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &cloudinaryStorage{cld: cld}, nil
}

// Upload stores a media buffer under folder and returns its secure URL.
// Resource type is auto-detected so the same path serves images and videos.
func (s *cloudinaryStorage) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload to folder %s failed: %w", folder, err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload to folder %s failed: %s", folder, resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// Delete removes an object by public id.
func (s *cloudinaryStorage) Delete(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = "image"
	}
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy of %s failed: %w", publicID, err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy of %s returned %q", publicID, resp.Result)
	}
	return nil
}
