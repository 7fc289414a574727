package handlers

import (
	"net/http"

	"rentora/services/dashboard"
	"rentora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler serves the back-office overview.
type DashboardHandler struct {
	DashboardService dashboard.DashboardService
}

// GetStatsHandler handles GET /api/admin/dashboard.
func (h *DashboardHandler) GetStatsHandler(c *gin.Context) {
	logger := utils.GetLogger()
	stats, err := h.DashboardService.Stats(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build dashboard stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
