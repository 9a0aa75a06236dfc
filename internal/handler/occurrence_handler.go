package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/disease-risk-backend-go/internal/models"
	"github.com/jengzang/disease-risk-backend-go/internal/service"
	"github.com/jengzang/disease-risk-backend-go/pkg/response"
)

// OccurrenceHandler handles HTTP requests for disease entries
type OccurrenceHandler struct {
	occurrenceService *service.OccurrenceService
}

// NewOccurrenceHandler creates a new occurrence handler
func NewOccurrenceHandler(occurrenceService *service.OccurrenceService) *OccurrenceHandler {
	return &OccurrenceHandler{
		occurrenceService: occurrenceService,
	}
}

// ListEntries handles GET /api/v1/entries
func (h *OccurrenceHandler) ListEntries(c *gin.Context) {
	var filter models.OccurrenceFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	entries, err := h.occurrenceService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, entries)
}

// CreateEntry handles POST /api/v1/entries
func (h *OccurrenceHandler) CreateEntry(c *gin.Context) {
	var req models.CreateOccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	entry, err := h.occurrenceService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, entry)
}

// GetEntry handles GET /api/v1/entries/:id
func (h *OccurrenceHandler) GetEntry(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	entry, err := h.occurrenceService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, entry)
}

// ListDiseases handles GET /api/v1/diseases
func (h *OccurrenceHandler) ListDiseases(c *gin.Context) {
	response.Success(c, models.Diseases)
}
