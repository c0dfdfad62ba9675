package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage abstracts the blob store used for profile pictures.
type Storage interface {
	// Save stores a file at the given key.
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Get retrieves a file by key.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for the key.
	GetURL(ctx context.Context, key string) (string, error)
}

// Config selects and configures a storage backend.
type Config struct {
	Type      string // local, s3, minio
	BasePath  string // local
	BaseURL   string // public URL base
	Bucket    string // s3/minio
	Region    string // s3
	AccessKey string // s3/minio
	SecretKey string // s3/minio
	Endpoint  string // minio or custom s3
	UseSSL    bool   // minio
}

// NewStorage builds a storage backend from configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "minio":
		return NewMinioStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
