package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/disease-risk-backend-go/internal/service"
	"github.com/jengzang/disease-risk-backend-go/pkg/response"
)

// StatsHandler handles the dashboard endpoint
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetDashboard handles GET /api/v1/dashboard
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, dashboard)
}
