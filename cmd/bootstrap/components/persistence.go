package components

import (
	"context"
	"log/slog"

	"stayledger/internal/infra/cache"
	"stayledger/internal/infra/db"
	"stayledger/internal/infra/rates"
	"stayledger/internal/infra/repository"
	"stayledger/internal/infra/uow"
	"stayledger/internal/pkg/config"
	"stayledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	cacheModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var cacheModule = fx.Module("persistence/cache",
	fx.Provide(
		NewRedisClient,
		fx.Annotate(
			cache.NewRedisCache,
			fx.As(fx.Self()),
			fx.As(new(rates.Cache)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Exchange rates, read outside transactions
		fx.Annotate(
			repository.NewExchangeRateRepository,
			fx.As(new(rates.Source)),
		),
		fx.Annotate(
			rates.NewProvider,
			fx.As(fx.Self()),
			fx.As(new(shared.RateProvider)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewRedisClient(lc fx.Lifecycle, cfg config.RedisConfig) *redis.Client {
	client := cache.NewRedisClient(cfg)
	lc.Append(fx.Hook{
		// quotes fall back to the database while redis is unreachable
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				slog.Warn("redis unreachable, rates will be read from the database", "addr", cfg.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}
