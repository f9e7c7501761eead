package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zlecenia-backend-go/internal/core"
	"zlecenia-backend-go/internal/middleware"
	"zlecenia-backend-go/internal/models"
)

// ReportHandler handles report submission on orders.
type ReportHandler struct {
	reportService core.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs core.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// Create handles POST /orders/:id/report. Only an admin or the order's
// currently assigned worker may append a report.
func (h *ReportHandler) Create(c *gin.Context) {
	uid, ok := callerUID(c)
	if !ok {
		return
	}

	var req models.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body", Details: err.Error()})
		return
	}

	id, err := h.reportService.Append(
		c.Request.Context(),
		uid,
		c.GetString(middleware.ContextDisplayName),
		c.Param("id"),
		req.Text,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreatedResponse{Message: "Report saved", ID: id})
}
