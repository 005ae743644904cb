package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/valtyr/warspire/internal/constants"
)

// GetPlayerStats returns the computed army stats and profile for a player.
func (h *MissionHandler) GetPlayerStats(c *gin.Context) {
	id, ok := parsePlayerID(c, "playerID")
	if !ok {
		return
	}
	stats, err := h.missions.PlayerStats(id)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchStats)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListMissionLogs returns the player's most recent missions, newest first.
func (h *MissionHandler) ListMissionLogs(c *gin.Context) {
	id, ok := parsePlayerID(c, "playerID")
	if !ok {
		return
	}
	// optional ?limit=N
	limit := 20
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	logs, err := h.missions.MissionLogs(id, limit)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedMissionLogs)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ListLeaderboard returns the top players by experience, limited to top 10 by default.
func (h *MissionHandler) ListLeaderboard(c *gin.Context) {
	// optional ?limit=N
	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	entries, err := h.missions.Leaderboard(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedLeaderboard})
		return
	}
	c.JSON(http.StatusOK, entries)
}
