// Command migrate applies migrations/*.sql in lexical order and records each
// applied file in schema_migrations.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"stayledger/internal/infra/db"
	"stayledger/internal/pkg/config"
	"stayledger/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

func main() {
	dir := flag.String("dir", "migrations", "directory holding *.sql migrations")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	var cfg config.DBConfig
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("failed to load db config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	applied, err := run(ctx, pool, *dir)
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations complete", "applied", applied)
}

func run(ctx context.Context, pool *pgxpool.Pool, dir string) (int, error) {
	if _, err := pool.Exec(ctx, createMigrationsTable); err != nil {
		return 0, errs.Wrap(err, "create schema_migrations")
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return 0, errs.Wrap(err, "list migrations")
	}
	sort.Strings(files)

	applied := 0
	for _, file := range files {
		version := filepath.Base(file)
		ok, err := apply(ctx, pool, version, file)
		if err != nil {
			return applied, err
		}
		if ok {
			applied++
			slog.Info("migration applied", "version", version)
		}
	}
	return applied, nil
}

// apply runs one file and records it in the same transaction.
func apply(ctx context.Context, pool *pgxpool.Pool, version, file string) (bool, error) {
	body, err := os.ReadFile(file)
	if err != nil {
		return false, errs.Wrapf(err, "read %s", file)
	}

	var done bool
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
		).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return nil
		}
		if _, err := tx.Exec(ctx, string(body)); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return err
		}
		done = true
		return nil
	})
	if err != nil {
		return false, errs.Wrapf(err, "apply %s", version)
	}
	return done, nil
}
