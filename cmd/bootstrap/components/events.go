package components

import (
	"context"
	"log/slog"

	"stayledger/internal/infra/events"
	"stayledger/internal/pkg/clock"
	"stayledger/internal/pkg/config"
	"stayledger/internal/usecase/shared"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher produces to Kafka when brokers are configured and falls
// back to logging otherwise.
func NewEventPublisher(lc fx.Lifecycle, cfg config.KafkaConfig, clk clock.Clock, logger *slog.Logger) shared.EventPublisher {
	if len(cfg.Brokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, booking events will only be logged")
		return events.NewLogPublisher(logger)
	}

	pub := events.NewKafkaPublisher(events.NewKafkaWriter(cfg), clk, cfg)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub
}
