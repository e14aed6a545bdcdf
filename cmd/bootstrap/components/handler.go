package components

import (
	"stayledger/internal/handler"
	"stayledger/internal/handler/api"
	"stayledger/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRoomHandler,
		api.NewBookingHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
		middleware.NewRateLimiter,
	),
	fx.Invoke(handler.NewRouter),
)
