package router

import (
	"fmt"
	"net/http"

	"remindbot/internal/infrastructure/database/sqlite"
	"remindbot/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// Config holds the dependencies for the ops router.
type Config struct {
	DB     *gorm.DB
	Logger logger.Logger
}

// NewRouter creates the Echo router serving the liveness and health
// endpoints. The bot itself long-polls Telegram; this server exists for the
// deployment environment.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "reminder bot is running")
	})

	e.GET("/healthz", func(c echo.Context) error {
		if err := sqlite.Ping(cfg.DB); err != nil {
			cfg.Logger.Error("Health check failed", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "down"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
