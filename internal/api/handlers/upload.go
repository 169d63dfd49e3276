package handlers

import (
	"fmt"
	"net/http"

	"greenops-insights/internal/api/models"
	"greenops-insights/internal/data"
	"greenops-insights/internal/insights"
	"greenops-insights/internal/logger"

	"github.com/gin-gonic/gin"
)

// MaxUploadBytes caps the size of an uploaded readings file.
const MaxUploadBytes = 10 << 20

// UploadCSV handles POST /api/v1/upload-csv
//
// The multipart form carries the readings file in "file" and, optionally, a
// "branch_name" applied to rows that have no branch of their own.
func (h *InsightsHandler) UploadCSV(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, fmt.Errorf("file is required: %w", err))
		return
	}
	if fh.Size > MaxUploadBytes {
		abortError(c, http.StatusRequestEntityTooLarge, "INVALID_REQUEST",
			fmt.Sprintf("file is %d bytes, the limit is %d", fh.Size, MaxUploadBytes), nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()

	parsed, err := data.ParseReadingsCSV(f)
	if err != nil {
		writeError(c, err)
		return
	}
	parsed.WithBranch(c.PostForm("branch_name"))

	engine, err := h.engine(nil)
	if err != nil {
		writeError(c, err)
		return
	}
	result, err := engine.Run(insights.Input{Readings: parsed.Rows})
	if err != nil {
		writeError(c, err)
		return
	}

	logger.Info("csv uploaded",
		"file", fh.Filename,
		"rows", len(parsed.Rows),
		"rejected", len(result.Rejected),
	)

	c.JSON(http.StatusOK, models.UploadResponse{
		Rows:     len(parsed.Rows),
		Columns:  parsed.Columns,
		Rejected: len(result.Rejected),
		Insights: h.remember(result, ""),
	})
}
