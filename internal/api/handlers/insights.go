package handlers

import (
	"net/http"
	"strings"

	"greenops-insights/internal/api/models"
	"greenops-insights/internal/config"
	"greenops-insights/internal/data"
	"greenops-insights/internal/insights"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OptionsSource supplies the server's current insight options.
type OptionsSource interface {
	Options() insights.Options
}

// InsightsHandler serves every insight route.
type InsightsHandler struct {
	options OptionsSource
	store   *data.StoreClient
	cache   *data.Cache[*models.InsightsResponse]
}

// NewInsightsHandler creates a new insights handler. store may be nil, in
// which case the store-backed route answers STORE_NOT_CONFIGURED.
func NewInsightsHandler(options OptionsSource, store *data.StoreClient, cache *data.Cache[*models.InsightsResponse]) *InsightsHandler {
	return &InsightsHandler{options: options, store: store, cache: cache}
}

// GetConfig handles GET /api/v1/config
func (h *InsightsHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.options.Options())
}

// RunInsights handles POST /api/v1/insights
func (h *InsightsHandler) RunInsights(c *gin.Context) {
	var req models.InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	engine, err := h.engine(req.Options)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := engine.Run(req.Input())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.remember(result, ""))
}

// GetInsights handles GET /api/v1/insights/:id
func (h *InsightsHandler) GetInsights(c *gin.Context) {
	id := c.Param("id")
	resp, ok := h.cache.Get(id)
	if !ok {
		abortError(c, http.StatusNotFound, "NOT_FOUND", "No insight result with id "+id+" (it may have expired)", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FetchInsights handles GET /api/v1/insights, reading the caller's data from
// the reading store with the caller's bearer token.
func (h *InsightsHandler) FetchInsights(c *gin.Context) {
	branchID := strings.TrimSpace(c.Query("branch_id"))
	store := h.store
	if store != nil {
		store = store.WithToken(bearerToken(c))
	}

	readings, err := store.FetchReadings(c.Request.Context(), branchID)
	if err != nil {
		writeError(c, err)
		return
	}
	forecasts, err := store.FetchForecasts(c.Request.Context(), branchID)
	if err != nil {
		writeError(c, err)
		return
	}

	engine, err := h.engine(nil)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := engine.Run(insights.Input{Readings: readings, Forecasts: forecasts})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.remember(result, branchID))
}

// RunBranches handles POST /api/v1/insights/branches
func (h *InsightsHandler) RunBranches(c *gin.Context) {
	var req models.InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	engine, err := h.engine(req.Options)
	if err != nil {
		writeError(c, err)
		return
	}
	all, err := engine.Prepare(req.Input())
	if err != nil {
		writeError(c, err)
		return
	}

	groups := data.GroupByBranch(all.Readings)
	resp := models.BranchesResponse{
		Branches: make([]models.BranchInsights, 0, len(groups)),
		Rejected: all.Rejected,
	}
	for _, id := range data.BranchIDs(groups) {
		result := engine.Analyze(&insights.Dataset{Readings: groups[id], Forecasts: all.Forecasts})
		resp.Branches = append(resp.Branches, models.BranchInsights{
			BranchID:    id,
			Summary:     result.Summary,
			Alerts:      result.Alerts,
			AlertCounts: result.AlertCounts,
			Series:      result.Series,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// engine builds an engine from the current options with override laid over
// them.
func (h *InsightsHandler) engine(override *config.InsightsConfig) (*insights.Engine, error) {
	opts := h.options.Options()
	if override != nil {
		opts = override.Apply(opts)
	}
	return insights.New(opts)
}

func (h *InsightsHandler) remember(result *insights.Result, branchID string) *models.InsightsResponse {
	resp := &models.InsightsResponse{
		ID:       uuid.NewString(),
		BranchID: branchID,
		Result:   *result,
	}
	h.cache.Set(resp.ID, resp)
	return resp
}

func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
