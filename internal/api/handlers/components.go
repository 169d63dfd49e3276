package handlers

import (
	"net/http"

	"greenops-insights/internal/analysis"
	"greenops-insights/internal/api/models"
	"greenops-insights/internal/insights"

	"github.com/gin-gonic/gin"
)

// prepare binds the request body and cleans it with the effective options.
// On failure the response has already been written.
func (h *InsightsHandler) prepare(c *gin.Context) (*insights.Engine, *insights.Dataset, bool) {
	var req models.InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return nil, nil, false
	}
	engine, err := h.engine(req.Options)
	if err != nil {
		writeError(c, err)
		return nil, nil, false
	}
	d, err := engine.Prepare(req.Input())
	if err != nil {
		writeError(c, err)
		return nil, nil, false
	}
	return engine, d, true
}

// Summary handles POST /api/v1/summary
func (h *InsightsHandler) Summary(c *gin.Context) {
	engine, d, ok := h.prepare(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, engine.Summary(d))
}

// Alerts handles POST /api/v1/alerts
func (h *InsightsHandler) Alerts(c *gin.Context) {
	engine, d, ok := h.prepare(c)
	if !ok {
		return
	}
	alerts := engine.Alerts(d)
	c.JSON(http.StatusOK, models.AlertsResponse{
		Alerts:   alerts,
		Counts:   analysis.CountAlerts(alerts),
		Rejected: d.Rejected,
	})
}

// Series handles POST /api/v1/series
func (h *InsightsHandler) Series(c *gin.Context) {
	engine, d, ok := h.prepare(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SeriesResponse{
		Series:   engine.Series(d),
		Rejected: d.Rejected,
	})
}
