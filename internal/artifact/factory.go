package artifact

import (
	"context"
	"fmt"

	"github.com/Elisha-Seme/assetqr/internal/config"
)

// Open selects a Store implementation from configuration.
//
//	ARTIFACT_DRIVER: fs|minio|s3|memory (default fs)
//	ARTIFACT_DIR:    directory root when driver=fs
//	ARTIFACT_PREFIX: object key prefix for minio and s3
func Open(ctx context.Context, cfg *config.AppConfig) (Store, error) {
	switch Driver(cfg.Artifacts.Driver) {
	case DriverFilesystem, "":
		return NewFilesystem(cfg.Artifacts.Dir)
	case DriverMinIO:
		return NewMinIO(ctx, cfg.MinIO, cfg.Artifacts.Prefix)
	case DriverS3:
		return NewS3(ctx, cfg.S3, cfg.Artifacts.Prefix)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown artifact driver %q", cfg.Artifacts.Driver)
	}
}
