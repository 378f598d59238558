// Package storage implementa ports.FileStorage sobre disco local y S3.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-management-api/internal/application/ports"
	"github.com/jhoicas/inventory-management-api/pkg/config"
	"github.com/jhoicas/inventory-management-api/pkg/logger"
)

// New elige el adaptador según STORAGE_DRIVER.
func New(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (ports.FileStorage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.LocalDir)
	case "s3":
		return NewS3Storage(ctx, cfg.S3, log)
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
}
