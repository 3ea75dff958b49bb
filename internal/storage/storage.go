package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Storage defines the interface for photo storage operations
type Storage interface {
	// Save stores a file at the given key
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves a file by key
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file by key
	Delete(ctx context.Context, key string) error

	// Exists checks if a file exists
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a public URL for the file
	GetURL(ctx context.Context, key string) (string, error)

	// PresignUpload returns a temporary URL a client can PUT the file to directly
	PresignUpload(ctx context.Context, key string, contentType string, expiry time.Duration) (string, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For S3
	Region    string // For S3
	AccessKey string // For S3
	SecretKey string // For S3
	Endpoint  string // For S3-compatible providers (R2, MinIO)
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
