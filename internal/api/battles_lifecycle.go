package api

import (
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/idl3o/tasern-3-sub001/internal/constants"
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/logging"
	"github.com/idl3o/tasern-3-sub001/internal/service"
)

type CreateBattlePayload struct {
	Name        string            `json:"name"`
	Private     bool              `json:"private"`
	VsAI        bool              `json:"vs_ai"`
	Personality *game.Personality `json:"personality"`
	Seed        int64             `json:"seed"`
}

// CreateBattle creates a battle and returns its join code. A vs-AI battle
// starts immediately; a PvP battle waits for a second player.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	playerID, playerName := playerIdentity(c)

	if utf8.RuneCountInString(req.Name) > 32 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrNameExceeds})
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rec, err := service.CreateBattle(h.repo, h.cfg, service.CreateBattleParams{
		Name:        req.Name,
		Private:     req.Private,
		JoinCode:    generateJoinCode(),
		HostID:      playerID,
		HostName:    playerName,
		VsAI:        req.VsAI,
		Personality: req.Personality,
		Seed:        seed,
	})
	if err != nil {
		logging.Error("failed to create battle", err, logging.Fields{constants.LogFieldPlayerID: playerID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}

	state, _ := rec.State()
	c.JSON(http.StatusCreated, viewFor(rec, state, playerID))
}

type JoinBattlePayload struct {
	JoinCode string `json:"join_code"`
}

// JoinBattle seats the authenticated player as the second combatant.
func (h *BattleHandler) JoinBattle(c *gin.Context) {
	var req JoinBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	code := normalizeJoinCode(req.JoinCode)
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	playerID, playerName := playerIdentity(c)

	rec, err := service.JoinBattle(h.repo, h.cfg, code, playerID, playerName)
	if err != nil {
		switch err {
		case service.ErrBattleNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		case service.ErrBattleFull:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFull})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		}
		return
	}

	state, _ := rec.State()
	c.JSON(http.StatusOK, viewFor(rec, state, playerID))
}
