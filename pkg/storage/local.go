package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// LocalStorage writes covers below a media root served at baseURL
type LocalStorage struct {
	root    string
	baseURL string
	log     *zap.Logger
}

func NewLocalStorage(root, baseURL string, log *zap.Logger) *LocalStorage {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStorage{
		root:    root,
		baseURL: baseURL,
		log:     log.With(zap.String("storage", "local")),
	}
}

func (s *LocalStorage) Root() string {
	return s.root
}

func (s *LocalStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalStorage) Save(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := path.Clean("/" + objectPath)[1:]
	target := filepath.Join(s.root, filepath.FromSlash(clean))

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		s.log.Error("Failed to write cover", zap.Error(err), zap.String("path", target))
		return "", fmt.Errorf("write %s: %w", clean, err)
	}

	s.log.Debug("Cover stored",
		zap.String("path", target),
		zap.String("content_type", contentType),
		zap.Int("size", len(data)),
	)
	return s.baseURL + clean, nil
}

func (s *LocalStorage) Delete(ctx context.Context, objectPath string) error {
	clean := path.Clean("/" + objectPath)[1:]
	target := filepath.Join(s.root, filepath.FromSlash(clean))

	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", clean, err)
	}
	return nil
}

func (s *LocalStorage) Close() error {
	return nil
}
