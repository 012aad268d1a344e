package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"planerka/server/middleware"
	"planerka/service"
)

// Options настройки HTTP-сервера
type Options struct {
	RateLimit int
	Logger    *slog.Logger
}

// NewRouter собирает gin-маршрутизатор сервера отчетов
func NewRouter(data *service.DataService, opts Options) *gin.Engine {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 100
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.RateLimit(opts.RateLimit),
		middleware.Gzip(),
	)

	h := NewHandler(data, logger)

	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.GET("/tabs", h.Tabs)
		api.GET("/tables/:tab", h.Table)

		history := api.Group("/history")
		{
			history.GET("/range", h.HistoryRange)
			history.GET("/dates", h.HistoryDates)
			history.GET("/managers", h.HistoryManagers)
			history.GET("/managers/:name", h.ManagerHistory)
			history.GET("/totals", h.CompanyTotals)
		}
	}
	return router
}
