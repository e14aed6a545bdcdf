package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stayledger/internal/domain/user"
	"stayledger/internal/handler/api"
	reqdto "stayledger/internal/handler/dto/request"
	"stayledger/internal/handler/middleware"
	"stayledger/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Room    *api.RoomHandler
	Booking *api.BookingHandler
}

func NewHandlers(room *api.RoomHandler, booking *api.BookingHandler) Handlers {
	return Handlers{Room: room, Booking: booking}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) error {
	if err := registerValidators(); err != nil {
		return err
	}
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware, limiter)
	return nil
}

func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return reqdto.RegisterValidators(v)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	hostOnly := authMiddleware.RequireRole(user.RoleHost)
	guestOnly := authMiddleware.RequireRole(user.RoleGuest)

	apiGroup := engine.Group("/api")
	{
		rooms := apiGroup.Group("/rooms")
		{
			public := rooms.Group("")
			public.Use(limiter.Limit())
			addRoutes(public, []route{
				{Method: http.MethodGet, Path: "/:id/quote", Handler: h.Room.Quote},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Room.Availability},
			})

			hosted := rooms.Group("")
			hosted.Use(authMiddleware.RequireAuth(), limiter.Limit())
			addRoutes(hosted, []route{
				{Method: http.MethodGet, Path: "/:id/ledger", Handler: h.Room.Ledger, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPut, Path: "/:id/availability", Handler: h.Room.SetAvailability, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPut, Path: "/:id/pricing", Handler: h.Room.SetPricing, Mw: []gin.HandlerFunc{hostOnly}},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth(), limiter.Limit())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: []gin.HandlerFunc{guestOnly}},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Booking.Approve, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Booking.Reject, Mw: []gin.HandlerFunc{hostOnly}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
