package components

import (
	"stayledger/internal/pkg/clock"
	"stayledger/internal/usecase"
	"stayledger/internal/usecase/batch"
	"stayledger/internal/usecase/commands"
	"stayledger/internal/usecase/queries"
	"stayledger/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	shared.NewAvailabilityChecker,
	shared.NewPriceCalculator,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewLedgerCommands,
		commands.NewReservationCommands,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRoomQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

// BatchModule holds the jobs run by cmd/batch.
var BatchModule = fx.Module("batch",
	fx.Provide(
		clock.NewRealClock,
		batch.NewStatusAdvanceJob,
		batch.NewMidnightIndexJob,
	),
)
