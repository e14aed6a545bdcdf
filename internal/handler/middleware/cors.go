package middleware

import (
	"log/slog"
	"slices"

	"stayledger/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// exposed regardless of CORS_EXPOSE_HEADERS
var alwaysExposed = []string{"Retry-After", requestIDHeader}

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	exposed := slices.Clone(cfg.ExposeHeaders)
	for _, h := range alwaysExposed {
		if !slices.Contains(exposed, h) {
			exposed = append(exposed, h)
		}
	}

	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    exposed,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins, "expose_headers", exposed)
	return cors.New(corsCfg)
}
