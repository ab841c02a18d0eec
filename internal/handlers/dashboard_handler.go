package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "contas/internal/errors"
	"contas/internal/services"
)

// DashboardHandler serves the aggregated dashboard snapshot
type DashboardHandler struct {
	reportService services.ReportServicer
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(reportService services.ReportServicer) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// GetDashboard returns the dashboard rollups. The monthly series window
// defaults to six months.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	windowMonths := 6
	if raw := c.Query("window_months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 36 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid window_months"))
			return
		}
		windowMonths = parsed
	}

	snapshot, err := h.reportService.Dashboard(windowMonths)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
