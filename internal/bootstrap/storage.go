package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/config"
	"github.com/osse101/IdleTracker_Go/internal/database"
	"github.com/osse101/IdleTracker_Go/internal/database/postgres"
	"github.com/osse101/IdleTracker_Go/internal/database/sqlite"
	"github.com/osse101/IdleTracker_Go/internal/repository"
)

// Storage is the opened save backend together with its cleanup
type Storage struct {
	Saves repository.Saves
	close func() error
}

// Close releases the backend's connections
func (s *Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStorage opens and migrates the backend selected by cfg.StorageDriver
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageSQLite:
		repo, db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStorage, err)
		}
		slog.Info(LogMsgStorageOpened, "driver", cfg.StorageDriver, "path", cfg.SQLitePath)
		return &Storage{Saves: repo, close: db.Close}, nil

	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MaxConnIdleTime: cfg.DBMaxConnIdleTime,
			MaxConnLifetime: cfg.DBMaxConnLifetime,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStorage, err)
		}
		if err := database.MigratePool(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStorage, err)
		}
		slog.Info(LogMsgStorageOpened, "driver", cfg.StorageDriver, "host", cfg.DBHost, "db", cfg.DBName)
		return &Storage{
			Saves: postgres.NewSaveRepository(pool),
			close: func() error { pool.Close(); return nil },
		}, nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorage, cfg.StorageDriver)
}

// LoadCatalog reads the catalog file named by cfg, or the embedded default
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	source := cfg.CatalogPath
	if source == "" {
		source = "embedded"
	}
	slog.Info(LogMsgCatalogLoaded,
		"source", source,
		"skills", len(cat.Skills),
		"titles", len(cat.Titles))

	return cat, nil
}
