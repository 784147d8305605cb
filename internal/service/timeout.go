package service

import (
	"time"

	"github.com/idl3o/tasern-3-sub001/internal/engine"
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/logging"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

// maxMissedTurns is how many consecutive timeouts a battle tolerates before
// the stalled player forfeits.
const maxMissedTurns = 3

// HandleTimedOutBattle applies timeout resolution for one claimed battle:
// a battle still waiting for an opponent is closed, an in-progress battle
// gets an automatic END_TURN on behalf of the stalled active player (the
// core has no internal timers; the host substitutes the pass). Repeated
// inactivity becomes a forfeit.
func HandleTimedOutBattle(repo BattleRepo, rec *storage.BattleRecord, actionTimeout time.Duration) error {
	switch rec.Status {
	case storage.StatusWaiting:
		rec.Status = storage.StatusFinished
		rec.ActionDeadline = time.Time{}
		logging.Info("closing unmatched battle", logging.Fields{"battle_code": rec.JoinCode})
		return repo.UpdateBattle(rec)
	case storage.StatusInProgress:
		// fallthrough below
	default:
		return nil
	}

	state, err := rec.State()
	if err != nil || state == nil {
		return ErrBattleCorrupt
	}
	stalled := state.ActivePlayer
	src := rng.New(rec.Seed + int64(len(state.BattleLog)))

	rec.MissedTurns++
	autoAction := game.Action{Type: game.ActionEndTurn, PlayerID: stalled}
	if rec.MissedTurns >= maxMissedTurns {
		autoAction.Type = game.ActionSurrender
	}
	next, err := engine.ExecuteAction(state, autoAction, src)
	if err != nil {
		return err
	}
	if autoAction.Type == game.ActionSurrender {
		logging.Info("forfeiting battle after repeated inactivity", logging.Fields{"battle_code": rec.JoinCode, "player_id": stalled})
	} else {
		logging.Info("auto-ending turn for inactive player", logging.Fields{"battle_code": rec.JoinCode, "player_id": stalled})
	}

	if rec.VsAI && next.Phase == game.PhaseInProgress && next.ActivePlayer == rec.GuestID {
		next = RunAITurnDeduped(rec.BattleUUID, next, rec.GuestID, src)
	}

	if err := rec.SetState(next); err != nil {
		return err
	}
	if next.Phase == game.PhaseVictory {
		finishBattle(repo, rec, next, autoAction)
	} else {
		rec.ActionDeadline = time.Now().Add(actionTimeout)
	}
	rec.ClaimedBy = ""
	rec.ClaimedAt = time.Time{}
	return repo.UpdateBattle(rec)
}
