package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/disease-risk-backend-go/internal/repository"
	"github.com/jengzang/disease-risk-backend-go/internal/service"
	"github.com/jengzang/disease-risk-backend-go/pkg/response"
)

// respondError maps service and repository errors to HTTP responses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.NotFound(c, "entry not found")
	default:
		_ = c.Error(err)
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		response.InternalError(c, "internal server error")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "invalid entry id")
		return 0, false
	}
	return id, true
}
