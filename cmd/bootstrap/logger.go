package bootstrap

import (
	"log/slog"

	"stayledger/internal/handler/middleware"
	"stayledger/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		func(l *middleware.Logger) *slog.Logger { return l.GetSlogLogger() },
	),
)

// NewLogger also installs the handler as the slog default.
func NewLogger(cfg config.LogConfig) *middleware.Logger {
	return middleware.NewLogger(cfg)
}
