package storage

import (
	"context"
)

// StorageService defines the interface for blob storage operations
type StorageService interface {
	// Upload uploads an object and returns its object name
	Upload(ctx context.Context, bucket, objectName string, content []byte, contentType string) (string, error)

	// Download downloads an object
	Download(ctx context.Context, bucket, objectName string) ([]byte, error)

	// Delete deletes an object
	Delete(ctx context.Context, bucket, objectName string) error
}
