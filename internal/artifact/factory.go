package artifact

import (
	"context"
	"fmt"

	"sitecheck/internal/config"
	"sitecheck/internal/inspect"
)

// NewStoreFromConfig creates an ArtifactStore implementation based on the
// artifacts config type.
func NewStoreFromConfig(ctx context.Context, cfg config.ArtifactsConfig) (inspect.ArtifactStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "filesystem":
		if cfg.Root == "" {
			return nil, fmt.Errorf("filesystem artifact store requires root to be set")
		}
		return NewFileSystemStore(cfg.Root)
	case "s3":
		return NewS3Store(ctx, S3Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			SessionToken:    cfg.S3SessionToken,
			PathStyle:       cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown artifact store type: %s", cfg.Type)
	}
}
