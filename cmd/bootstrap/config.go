package bootstrap

import (
	"stayledger/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.DBConfig { return cfg.DB },
		func(cfg config.Config) config.RedisConfig { return cfg.Redis },
		func(cfg config.Config) config.KafkaConfig { return cfg.Kafka },
		func(cfg config.Config) config.BatchConfig { return cfg.Batch },
		func(cfg config.Config) config.LedgerConfig { return cfg.Ledger },
		func(cfg config.Config) config.RateLimitConfig { return cfg.RateLimit },
		func(cfg config.Config) config.LogConfig { return cfg.Log },
	),
)
