package storage

import (
	"context"
	"fmt"

	"library-catalog/pkg/utils"

	"go.uber.org/zap"
)

// CoverStorage persists uploaded cover images and returns the address they are served from
type CoverStorage interface {
	Save(ctx context.Context, objectPath, contentType string, data []byte) (string, error)
	// Delete removes a stored object; a missing object is not an error
	Delete(ctx context.Context, objectPath string) error
	Close() error
}

// NewFromConfig picks the backend named by STORAGE_DRIVER
func NewFromConfig(ctx context.Context, config utils.StorageConfig, log *zap.Logger) (CoverStorage, error) {
	switch config.Driver {
	case "", "local":
		return NewLocalStorage(config.MediaRoot, config.MediaURL, log), nil
	case "gcs":
		return NewGCSStorage(ctx, config.GCSBucket, config.GCSCredentialsFile, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.Driver)
	}
}
