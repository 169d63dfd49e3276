// Package api wires the HTTP routes onto a gin engine.
package api

import (
	"net/http"

	"greenops-insights/internal/api/handlers"
	"greenops-insights/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with middleware and every route registered.
func NewRouter(h *handlers.InsightsHandler, corsOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(corsOrigins...))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/config", h.GetConfig)

		api.POST("/insights", h.RunInsights)
		api.GET("/insights", h.FetchInsights)
		api.GET("/insights/:id", h.GetInsights)
		api.POST("/insights/branches", h.RunBranches)

		api.POST("/summary", h.Summary)
		api.POST("/alerts", h.Alerts)
		api.POST("/series", h.Series)

		api.POST("/upload-csv", h.UploadCSV)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})

	return router
}
