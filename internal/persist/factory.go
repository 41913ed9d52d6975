package persist

import (
	"context"
	"fmt"

	"github.com/vitalscope/vitalscope/pkg/config"
)

// FromStorageConfig builds the Repository the storage config selects.
func FromStorageConfig(ctx context.Context, cfg config.StorageConfig) (Repository, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileRepository(cfg.SnapshotPath()), nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 backend requires a bucket")
		}
		return NewS3Repository(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Key:       cfg.S3Key,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("gcs backend requires a bucket")
		}
		return NewGCSRepository(ctx, cfg.GCSBucket, cfg.GCSKey)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
