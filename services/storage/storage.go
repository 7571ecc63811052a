package storage

import (
	"context"
	"fmt"
	"io"

	"ehealth/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore implements BlobStore on Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore creates a client from account credentials.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload sends the file into folder and lets Cloudinary detect the resource type.
func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, folder string) (*models.UploadedFile, error) {
	params := uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	}
	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, fmt.Errorf("CloudinaryStore: failed to upload file: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("CloudinaryStore: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("CloudinaryStore: no public ID returned")
	}
	return &models.UploadedFile{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// Delete removes a file given its public ID.
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("CloudinaryStore: failed to delete file: %w", err)
	}
	return nil
}

// DisabledStore stands in when no blob backend is configured.
type DisabledStore struct{}

func (DisabledStore) Upload(context.Context, io.Reader, string) (*models.UploadedFile, error) {
	return nil, fmt.Errorf("file storage is not configured")
}

func (DisabledStore) Delete(context.Context, string) error {
	return nil
}
