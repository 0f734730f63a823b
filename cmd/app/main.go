package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/IdleTracker_Go/internal/bootstrap"
	"github.com/osse101/IdleTracker_Go/internal/config"
	"github.com/osse101/IdleTracker_Go/internal/economy"
	"github.com/osse101/IdleTracker_Go/internal/engine"
	"github.com/osse101/IdleTracker_Go/internal/leveling"
	"github.com/osse101/IdleTracker_Go/internal/notify"
	"github.com/osse101/IdleTracker_Go/internal/profile"
	"github.com/osse101/IdleTracker_Go/internal/repository"
	"github.com/osse101/IdleTracker_Go/internal/scheduler"
	"github.com/osse101/IdleTracker_Go/internal/server"
	"github.com/osse101/IdleTracker_Go/internal/sse"
	"github.com/osse101/IdleTracker_Go/internal/state"
	"github.com/osse101/IdleTracker_Go/internal/stats"
	"github.com/osse101/IdleTracker_Go/internal/validation"
	"github.com/osse101/IdleTracker_Go/internal/worker"
)

const jobQueueSize = 16

func main() {
	if err := run(); err != nil {
		slog.Error("IdleTracker exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logCloser, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}
	curve := leveling.Default()

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}

	initial, loadErr := repository.LoadState(ctx, storage.Saves, cfg.ProfileID, cat, curve)
	if initial == nil {
		_ = storage.Close()
		return loadErr
	}
	store := state.NewStore(initial, repository.NewPersister(storage.Saves, cfg.ProfileID))

	publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		_ = storage.Close()
		return err
	}

	schemas, err := validation.NewSchemaValidator()
	if err != nil {
		_ = storage.Close()
		return fmt.Errorf("failed to compile save schema: %w", err)
	}

	engineService := engine.NewService(store, cat, curve, publisher, time.Now)
	economyService := economy.NewService(store, cat, engineService, publisher)
	profileService := profile.NewService(store, cat, curve, engineService, publisher, schemas)
	statsService := stats.NewService(engineService, cat, curve)
	center := notify.NewCenter(cfg.NotificationCacheSize, notify.DefaultMaxTTL, profileService, publisher)

	bootstrap.WatchSaveFailures(store, center)
	if loadErr != nil {
		bootstrap.ReportRejectedSave(ctx, center, loadErr)
	}

	hub := sse.NewHub()
	hub.Start()

	bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: publisher,
		Notify:   center,
		Catalog:  cat,
		Hub:      hub,
	})

	// Settle time that passed while the process was down before serving
	if err := engineService.Tick(ctx); err != nil {
		slog.Warn("Startup accrual failed", "error", err)
	}

	pool := worker.NewPool(cfg.WorkerCount, jobQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.TickInterval, worker.NewTickJob(engineService))
	sched.Schedule(cfg.SaveInterval, worker.NewSaveJob(store))

	srv := server.NewServer(
		server.Options{
			Port:           cfg.Port,
			APIKey:         cfg.APIKey,
			TrustedProxies: cfg.TrustedProxies,
		},
		server.Dependencies{
			Engine:   engineService,
			Economy:  economyService,
			Profile:  profileService,
			Stats:    statsService,
			Notify:   center,
			Catalog:  cat,
			Curve:    curve,
			Storage:  storage.Saves,
			EventHub: hub,
		},
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
			Server:             srv,
			Scheduler:          sched,
			WorkerPool:         pool,
			Store:              store,
			Hub:                hub,
			ResilientPublisher: publisher,
			Storage:            storage,
		})
		return nil
	})

	return g.Wait()
}
