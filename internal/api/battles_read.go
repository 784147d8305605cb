package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/idl3o/tasern-3-sub001/internal/constants"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

// openBattleSummary lists a joinable battle without exposing its state.
type openBattleSummary struct {
	JoinCode  string `json:"join_code"`
	Name      string `json:"name"`
	HostName  string `json:"host_name"`
	CreatedAt string `json:"created_at"`
}

// ListOpenBattles returns recent public battles still waiting for an
// opponent.
func (h *BattleHandler) ListOpenBattles(c *gin.Context) {
	recs, err := h.repo.GetOpenBattles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}
	out := make([]openBattleSummary, 0, len(recs))
	for _, r := range recs {
		out = append(out, openBattleSummary{
			JoinCode:  r.JoinCode,
			Name:      r.Name,
			HostName:  r.HostName,
			CreatedAt: r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetBattle returns the battle for the code, with the snapshot redacted for
// the viewer.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	rec, ok := h.lookupBattle(c)
	if !ok {
		return
	}
	state, err := rec.State()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	playerID, _ := playerIdentity(c)
	c.JSON(http.StatusOK, viewFor(rec, state, playerID))
}

// GetBattleLog returns only the action log, for replay and spectator views.
func (h *BattleHandler) GetBattleLog(c *gin.Context) {
	rec, ok := h.lookupBattle(c)
	if !ok {
		return
	}
	state, err := rec.State()
	if err != nil || state == nil {
		c.JSON(http.StatusOK, gin.H{"log": []struct{}{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"log": state.BattleLog})
}

// lookupBattle resolves the :battleCode route param or writes the error
// response itself.
func (h *BattleHandler) lookupBattle(c *gin.Context) (*storage.BattleRecord, bool) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return nil, false
	}
	rec, err := h.repo.FindBattleByJoinCode(code)
	if err != nil || rec == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return nil, false
	}
	return rec, true
}
