package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/disease-risk-backend-go/internal/service"
	"github.com/jengzang/disease-risk-backend-go/pkg/response"
)

// RiskHandler handles HTTP requests for risk maps and the risk model
type RiskHandler struct {
	riskService *service.RiskService
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(riskService *service.RiskService) *RiskHandler {
	return &RiskHandler{
		riskService: riskService,
	}
}

// GetRiskMap handles GET /api/v1/risk-map/:lat/:lng/:disease
func (h *RiskHandler) GetRiskMap(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Param("lat"), 64)
	if err != nil {
		response.BadRequest(c, "invalid latitude")
		return
	}
	lng, err := strconv.ParseFloat(c.Param("lng"), 64)
	if err != nil {
		response.BadRequest(c, "invalid longitude")
		return
	}

	areas, err := h.riskService.RiskMap(c.Request.Context(), lat, lng, c.Param("disease"))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"lat":        lat,
		"lng":        lng,
		"disease":    c.Param("disease"),
		"risk_areas": areas,
	})
}

// GetEntryRisk handles GET /api/v1/entries/:id/risk
func (h *RiskHandler) GetEntryRisk(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.riskService.EntryRisk(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}

// GetEntryPredictions handles GET /api/v1/entries/:id/predictions
func (h *RiskHandler) GetEntryPredictions(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	predictions, err := h.riskService.History(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, predictions)
}

// GetModel handles GET /api/v1/model
func (h *RiskHandler) GetModel(c *gin.Context) {
	response.Success(c, h.riskService.ModelInfo())
}

// TrainModel handles POST /api/v1/model/train
func (h *RiskHandler) TrainModel(c *gin.Context) {
	info, err := h.riskService.Train(c.Request.Context())
	if errors.Is(err, service.ErrTrainingFailed) {
		response.Error(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, info)
}
