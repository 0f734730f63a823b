// Command setup prepares save storage: for postgres it waits for the server,
// creates the database when missing and applies migrations; for sqlite it
// creates and migrates the file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/IdleTracker_Go/internal/bootstrap"
	"github.com/osse101/IdleTracker_Go/internal/config"
)

const (
	maxConnectAttempts = 30
	retryInterval      = 2 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	if cfg.StorageDriver == config.StoragePostgres {
		if err := ensureDatabase(ctx, cfg); err != nil {
			log.Fatalf("Failed to prepare database: %v", err)
		}
	}

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to migrate storage: %v", err)
	}
	defer storage.Close()

	fmt.Println("Storage ready.")
}

// ensureDatabase connects to the server's maintenance database and creates
// cfg.DBName if it does not exist.
func ensureDatabase(ctx context.Context, cfg *config.Config) error {
	serverConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort)

	conn, err := connectWithRetry(ctx, serverConnString)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check if database exists: %w", err)
	}
	if exists {
		fmt.Printf("Database %s already exists.\n", cfg.DBName)
		return nil
	}

	fmt.Printf("Creating database %s...\n", cfg.DBName)
	if _, err := conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.DBName}.Sanitize()); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	return nil
}

func connectWithRetry(ctx context.Context, connString string) (*pgx.Conn, error) {
	var lastErr error
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		conn, err := pgx.Connect(ctx, connString)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		fmt.Printf("Database not ready (%d/%d): %v\n", attempt, maxConnectAttempts, err)
		time.Sleep(retryInterval)
	}
	return nil, errors.Join(fmt.Errorf("database failed to become ready after %d attempts", maxConnectAttempts), lastErr)
}
