package main

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/IdleTracker_Go/internal/bootstrap"
	"github.com/osse101/IdleTracker_Go/internal/catalog"
	"github.com/osse101/IdleTracker_Go/internal/config"
	"github.com/osse101/IdleTracker_Go/internal/economy"
	"github.com/osse101/IdleTracker_Go/internal/engine"
	"github.com/osse101/IdleTracker_Go/internal/event"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
	"github.com/osse101/IdleTracker_Go/internal/logger"
	"github.com/osse101/IdleTracker_Go/internal/profile"
	"github.com/osse101/IdleTracker_Go/internal/repository"
	"github.com/osse101/IdleTracker_Go/internal/state"
	"github.com/osse101/IdleTracker_Go/internal/stats"
	"github.com/osse101/IdleTracker_Go/internal/validation"
)

// session is one command's view of the save: loaded on open, written on close
type session struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	curve   *leveling.Curve
	storage *bootstrap.Storage
	store   *state.Store
	engine  engine.Service
	economy economy.Service
	profile profile.Service
	stats   stats.Service
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Keep the terminal for command output
	logger.InitLoggerWithWriter(
		logger.NewConfig(logger.LogLevelWarn, logger.LogFormatText, cfg.ServiceName, cfg.Version, cfg.Environment, false),
		os.Stderr,
	)

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	curve := leveling.Default()

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	initial, err := repository.LoadState(ctx, storage.Saves, cfg.ProfileID, cat, curve)
	if initial == nil {
		_ = storage.Close()
		return nil, err
	}

	schemas, err := validation.NewSchemaValidator()
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	bus := event.NewMemoryBus()
	store := state.NewStore(initial, repository.NewPersister(storage.Saves, cfg.ProfileID))
	eng := engine.NewService(store, cat, curve, bus, time.Now)

	return &session{
		cfg:     cfg,
		catalog: cat,
		curve:   curve,
		storage: storage,
		store:   store,
		engine:  eng,
		economy: economy.NewService(store, cat, eng, bus),
		profile: profile.NewService(store, cat, curve, eng, bus, schemas),
		stats:   stats.NewService(eng, cat, curve),
	}, nil
}

func (s *session) close(ctx context.Context) error {
	return errors.Join(s.store.Flush(ctx), s.storage.Close())
}

// run adapts a session-scoped command body to cobra's RunE
func run(fn func(ctx context.Context, s *session, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		s, err := openSession(ctx)
		if err != nil {
			return err
		}

		runErr := fn(ctx, s, cmd.OutOrStdout(), args)
		return errors.Join(runErr, s.close(ctx))
	}
}
