package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/valtyr/warspire/internal/constants"
	"github.com/valtyr/warspire/internal/service"
)

// MissionHandler groups all mission-related HTTP handlers.
type MissionHandler struct {
	missions *service.MissionService
}

// NewMissionHandler creates a new MissionHandler backed by the given service.
func NewMissionHandler(missions *service.MissionService) *MissionHandler {
	return &MissionHandler{missions: missions}
}

// parsePlayerID reads a positive numeric ID from a route parameter.
func parsePlayerID(c *gin.Context, param string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || n == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidPlayerID})
		return 0, false
	}
	return uint(n), true
}

// writeServiceError maps service sentinel errors onto HTTP statuses.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrPlayerNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrPlayerNotFound})
	case errors.Is(err, service.ErrSelfTarget):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrSelfTarget})
	case errors.Is(err, service.ErrNoFortification):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoFortification})
	case errors.Is(err, service.ErrInvalidSpiesSent), errors.Is(err, service.ErrInvalidAssassTarget):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: fallback})
	}
}
