package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"stayledger/cmd/bootstrap"
	"stayledger/internal/infra/rates"
	"stayledger/internal/pkg/config"
	"stayledger/internal/scheduler"
	"stayledger/internal/usecase/batch"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

const shutdownTimeout = 30 * time.Second

type jobs struct {
	fx.In

	Advance *batch.StatusAdvanceJob
	Index   *batch.MidnightIndexJob
	Rates   *rates.Provider
	Config  config.Config
}

func newScheduler(j jobs) *scheduler.Scheduler {
	s := scheduler.New()
	s.Every("midnight-index", j.Config.Batch.IndexRefreshInterval, true, func(ctx context.Context, now time.Time) {
		j.Index.Run(ctx, now)
	})
	s.Every("status-advance", j.Config.Batch.TickInterval, false, func(ctx context.Context, now time.Time) {
		j.Advance.Run(ctx, now)
	})
	s.Every("rates-refresh", j.Config.Redis.RatesTTL, true, func(ctx context.Context, _ time.Time) {
		if _, err := j.Rates.Refresh(ctx); err != nil {
			slog.Warn("rates refresh failed", "error", err)
		}
	})
	return s
}

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting batch scheduler")
			go func() {
				defer close(done)
				s.Start(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				logger.Info("batch scheduler stopped")
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	app := fx.New(
		bootstrap.BatchModule,
		fx.Provide(newScheduler),
		fx.Invoke(startScheduler),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start batch", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		slog.Error("failed to stop batch", "error", err)
	}
}
