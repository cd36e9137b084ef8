package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GCSStorage uploads covers to a Google Cloud Storage bucket with public read access
type GCSStorage struct {
	client *gcs.Client
	bucket string
	log    *zap.Logger
}

// NewGCSStorage uses application default credentials when credsPath is empty
func NewGCSStorage(ctx context.Context, bucket, credsPath string, log *zap.Logger) (*GCSStorage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET is required for the gcs storage driver")
	}

	var opts []option.ClientOption
	if credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}

	return &GCSStorage{
		client: client,
		bucket: bucket,
		log:    log.With(zap.String("storage", "gcs")),
	}, nil
}

func (s *GCSStorage) Save(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	wc := s.client.Bucket(s.bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // small files, single request

	if _, err := io.Copy(wc, bytes.NewReader(data)); err != nil {
		_ = wc.Close()
		s.log.Error("Failed to upload cover", zap.Error(err), zap.String("object", objectPath))
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	if err := wc.Close(); err != nil {
		s.log.Error("Failed to finalize cover upload", zap.Error(err), zap.String("object", objectPath))
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}

	return PublicURL(s.bucket, objectPath), nil
}

func (s *GCSStorage) Delete(ctx context.Context, objectPath string) error {
	err := s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("delete %s: %w", objectPath, err)
	}
	return nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}
