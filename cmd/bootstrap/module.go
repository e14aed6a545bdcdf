package bootstrap

import (
	"stayledger/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.EventsModule,
	components.UseCaseModule,
	components.HandlerModule,
)

// BatchModule wires the scheduled jobs without the HTTP stack.
var BatchModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	components.PersistenceModule,
	components.EventsModule,
	components.BatchModule,
)
