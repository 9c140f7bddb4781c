package storage

import (
	"context"
	"fmt"

	"restaurant-catalog/internal/config"
)

// Backend is a Storage that can also report health and prepare its bucket
type Backend interface {
	Storage
	EnsureBucket(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}

// New picks the implementation named by cfg.Driver
func New(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Driver {
	case config.StorageDriverMinIO:
		return NewMinIOStorage(cfg)
	case config.StorageDriverS3:
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
