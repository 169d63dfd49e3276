package handlers

import (
	"errors"
	"net/http"

	"greenops-insights/internal/api/models"
	"greenops-insights/internal/data"
	"greenops-insights/internal/insights"

	"github.com/gin-gonic/gin"
)

func abortError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	_ = c.Error(errors.New(message))
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func badRequest(c *gin.Context, err error) {
	abortError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
}

// writeError maps an engine or store error onto the error envelope.
func writeError(c *gin.Context, err error) {
	var (
		cfgErr   *insights.ConfigurationError
		valErr   *insights.ValidationError
		storeErr *data.StoreError
	)
	switch {
	case errors.As(err, &cfgErr):
		abortError(c, http.StatusBadRequest, "INVALID_CONFIG", err.Error(), map[string]interface{}{
			"field":  cfgErr.Field,
			"reason": cfgErr.Reason,
		})
	case errors.As(err, &valErr):
		abortError(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error(), map[string]interface{}{
			"problems": valErr.Problems,
		})
	case errors.Is(err, data.ErrStoreNotConfigured):
		abortError(c, http.StatusServiceUnavailable, "STORE_NOT_CONFIGURED", err.Error(), nil)
	case errors.As(err, &storeErr):
		status := http.StatusBadGateway
		if storeErr.StatusCode == http.StatusForbidden || storeErr.StatusCode == http.StatusUnauthorized {
			status = http.StatusUnauthorized
		} else if storeErr.StatusCode == http.StatusTooManyRequests {
			status = http.StatusTooManyRequests
		}
		abortError(c, status, storeErr.Code, storeErr.Message, map[string]interface{}{
			"status_code": storeErr.StatusCode,
			"retry_after": storeErr.RetryAfter,
		})
	case errors.Is(err, data.ErrInvalidCSV):
		abortError(c, http.StatusBadRequest, "INVALID_CSV", err.Error(), nil)
	default:
		abortError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
	}
}
