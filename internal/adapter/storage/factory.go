package storage

import (
	"context"
	"fmt"

	"github.com/srgjo27/park_booking/internal/core/ports"
	"github.com/srgjo27/park_booking/internal/platform/config"
)

func New(ctx context.Context, cfg config.StorageConfig) (ports.ObjectStorage, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			PublicBaseURL:   cfg.PublicBaseURL,
		})
	case "local", "":
		return NewLocalStorage(cfg.LocalDir, cfg.LocalBaseURL), nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}
