package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/idl3o/tasern-3-sub001/internal/constants"
	"github.com/idl3o/tasern-3-sub001/internal/logging"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

const watchPollInterval = time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Spectator stream carries no hidden information, so any origin may
	// subscribe.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WatchBattle streams spectator snapshots over a websocket. Each message is
// the same redacted view GetBattle serves; a new one is pushed whenever the
// battle log advances. The stream ends when the battle finishes or the
// client disconnects.
func (h *BattleHandler) WatchBattle(c *gin.Context) {
	code := normalizeJoinCode(c.Param("battleCode"))
	if !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return
	}
	rec, err := h.repo.FindBattleByJoinCode(code)
	if err != nil || rec == nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldBattleCode: code})
		return
	}
	defer conn.Close()

	// Read pump: spectators send nothing, but reads must drain for close
	// frames to be processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(watchPollInterval)
	defer ticker.Stop()

	lastLogLen := -1
	for {
		rec, err := h.repo.FindBattleByJoinCode(code)
		if err != nil || rec == nil {
			return
		}
		state, err := rec.State()
		if err != nil {
			return
		}
		logLen := 0
		if state != nil {
			logLen = len(state.BattleLog)
		}
		if logLen != lastLogLen || rec.Status == storage.StatusFinished {
			lastLogLen = logLen
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(viewFor(rec, state, "")); err != nil {
				return
			}
			if rec.Status == storage.StatusFinished {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "battle finished"))
				return
			}
		}

		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}
