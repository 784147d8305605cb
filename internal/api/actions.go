package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/idl3o/tasern-3-sub001/internal/constants"
	"github.com/idl3o/tasern-3-sub001/internal/engine"
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/logging"
	"github.com/idl3o/tasern-3-sub001/internal/service"
)

type ActionPayload struct {
	Type           string         `json:"type"`
	CardID         string         `json:"card_id"`
	Position       *game.Position `json:"position"`
	TargetCardID   string         `json:"target_card_id"`
	TargetPlayerID string         `json:"target_player_id"`
	AbilityKey     string         `json:"ability_key"`
}

// SubmitAction applies one action for the authenticated player. Rule
// violations come back as 409 with the rejection code; the battle is left
// exactly as it was.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	rec, ok := h.lookupBattle(c)
	if !ok {
		return
	}
	var req ActionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	playerID, _ := playerIdentity(c)

	action := game.Action{
		Type:           game.ActionType(req.Type),
		PlayerID:       playerID,
		CardID:         req.CardID,
		Position:       req.Position,
		TargetCardID:   req.TargetCardID,
		TargetPlayerID: req.TargetPlayerID,
		AbilityKey:     req.AbilityKey,
	}

	h.applyAction(c, rec.ID, playerID, action)
}

// Surrender concedes the battle for the authenticated player.
func (h *BattleHandler) Surrender(c *gin.Context) {
	rec, ok := h.lookupBattle(c)
	if !ok {
		return
	}
	playerID, _ := playerIdentity(c)
	h.applyAction(c, rec.ID, playerID, game.Action{
		Type:     game.ActionSurrender,
		PlayerID: playerID,
	})
}

func (h *BattleHandler) applyAction(c *gin.Context, battleID uint, playerID string, action game.Action) {
	rec, state, err := service.SubmitAction(h.repo, battleID, playerID, action, h.cfg.ActionTimeout)
	if err != nil {
		var ia *engine.IllegalActionError
		switch {
		case errors.As(err, &ia):
			c.JSON(http.StatusConflict, gin.H{
				constants.JSONKeyError: ia.Reason,
				"code":                 ia.Code,
			})
		case errors.Is(err, service.ErrBattleNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case errors.Is(err, service.ErrBattleNotInProgress):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleNotInProgress})
		case errors.Is(err, service.ErrPlayerNotInBattle):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInBattle})
		default:
			logging.Error("failed to store action", err, logging.Fields{
				constants.LogFieldPlayerID: playerID,
				constants.LogFieldAction:   string(action.Type),
			})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreAction})
		}
		return
	}
	c.JSON(http.StatusOK, viewFor(rec, state, playerID))
}
