package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valtyr/warspire/internal/constants"
	"github.com/valtyr/warspire/internal/engine"
	"github.com/valtyr/warspire/internal/logging"
)

type battleRequest struct {
	AttackerID uint `json:"attacker_id" binding:"required"`
	DefenderID uint `json:"defender_id" binding:"required"`
	Turns      int  `json:"turns" binding:"required"`
}

type spyRequest struct {
	AttackerID uint   `json:"attacker_id" binding:"required"`
	DefenderID uint   `json:"defender_id" binding:"required"`
	SpiesSent  int    `json:"spies_sent" binding:"required"`
	Target     string `json:"target"`
}

// Battle resolves a multi-turn attack between two players.
func (h *MissionHandler) Battle(c *gin.Context) {
	var req battleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	result, entry, err := h.missions.Attack(req.AttackerID, req.DefenderID, req.Turns)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedResolve)
		return
	}
	logging.Info("battle resolved", logging.Fields{
		constants.LogFieldAttackerID: req.AttackerID,
		constants.LogFieldDefenderID: req.DefenderID,
		constants.LogFieldTurns:      result.TurnsTaken,
	})
	c.JSON(http.StatusOK, gin.H{"result": result, "log": entry})
}

// SpyIntel runs a reconnaissance mission against a target player.
func (h *MissionHandler) SpyIntel(c *gin.Context) {
	var req spyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	result, entry, err := h.missions.Intel(req.AttackerID, req.DefenderID, req.SpiesSent)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedResolve)
		return
	}
	logging.Info("intel mission resolved", logging.Fields{
		constants.LogFieldAttackerID: req.AttackerID,
		constants.LogFieldDefenderID: req.DefenderID,
		constants.LogFieldMission:    string(entry.Kind),
	})
	c.JSON(http.StatusOK, gin.H{"result": result, "log": entry})
}

// SpyInfiltrate runs a fort sabotage mission against a target player.
func (h *MissionHandler) SpyInfiltrate(c *gin.Context) {
	var req spyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	result, entry, err := h.missions.Infiltrate(req.AttackerID, req.DefenderID, req.SpiesSent)
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedResolve)
		return
	}
	logging.Info("infiltration resolved", logging.Fields{
		constants.LogFieldAttackerID: req.AttackerID,
		constants.LogFieldDefenderID: req.DefenderID,
		constants.LogFieldMission:    string(entry.Kind),
	})
	c.JSON(http.StatusOK, gin.H{"result": result, "log": entry})
}

// SpyAssassinate runs a targeted kill mission against a target player.
func (h *MissionHandler) SpyAssassinate(c *gin.Context) {
	var req spyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	result, entry, err := h.missions.Assassinate(req.AttackerID, req.DefenderID, req.SpiesSent, engine.AssassinationTarget(req.Target))
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedResolve)
		return
	}
	logging.Info("assassination resolved", logging.Fields{
		constants.LogFieldAttackerID: req.AttackerID,
		constants.LogFieldDefenderID: req.DefenderID,
		constants.LogFieldMission:    string(entry.Kind),
	})
	c.JSON(http.StatusOK, gin.H{"result": result, "log": entry})
}
