package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/libreria-gestion/backoffice/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(screensHandler *handlers.ScreenHandler, reportsHandler *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/nav", screensHandler.Routes)

	screen := api.Group("/screens/:screen")
	screen.GET("", screensHandler.Show)
	screen.POST("/reload", screensHandler.Reload)
	screen.PUT("/filter", screensHandler.Filter)
	screen.POST("/create", screensHandler.Create)
	screen.POST("/records/:id/edit", screensHandler.Edit)
	screen.POST("/records/:id/delete", screensHandler.Delete)
	screen.POST("/submit", screensHandler.Submit)
	screen.POST("/confirm-delete", screensHandler.ConfirmDelete)
	screen.POST("/cancel", screensHandler.Cancel)
	screen.DELETE("/error", screensHandler.DismissError)

	api.GET("/reports/stock", reportsHandler.Stock)
	api.GET("/reports/stock/latest", reportsHandler.LatestStock)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
