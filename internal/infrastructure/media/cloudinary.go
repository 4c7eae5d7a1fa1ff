// Package media stores listing images with Cloudinary.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Config holds the Cloudinary account credentials and the target folder.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Enabled reports whether credentials are present.
func (c Config) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

var errNotConfigured = errors.New("cloudinary: credentials are not configured")

// CloudinaryStore implements ports.ImageStore.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cfg Config) (*CloudinaryStore, error) {
	if !cfg.Enabled() {
		return nil, errNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStore{cld: cld, folder: cfg.Folder}, nil
}

// Upload stores the image under publicID, replacing any previous upload, and
// returns its HTTPS URL.
func (s *CloudinaryStore) Upload(ctx context.Context, image io.Reader, publicID string) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicID,
		Overwrite:    api.Bool(true),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}
