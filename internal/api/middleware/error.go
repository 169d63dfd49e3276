package middleware

import (
	"fmt"
	"net/http"

	"greenops-insights/internal/api/models"
	"greenops-insights/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware recovers panics into a 500 error envelope.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			"request_id", c.GetString(RequestIDKey),
			"path", c.Request.URL.Path,
			"panic", fmt.Sprint(recovered),
		)

		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}
