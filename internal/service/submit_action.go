package service

import (
	"time"

	"github.com/idl3o/tasern-3-sub001/internal/engine"
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

// SubmitAction applies one action on behalf of playerID, then drives the AI
// opponent's whole turn when the action hands it the initiative. Rule
// violations surface as engine.IllegalActionError with the stored state
// untouched.
func SubmitAction(repo BattleRepo, battleID uint, playerID string, action game.Action, actionTimeout time.Duration) (*storage.BattleRecord, *game.BattleState, error) {
	rec, err := repo.GetBattleByID(battleID)
	if err != nil || rec == nil {
		return nil, nil, ErrBattleNotFound
	}
	if rec.Status != storage.StatusInProgress {
		return nil, nil, ErrBattleNotInProgress
	}
	if playerID != rec.HostID && playerID != rec.GuestID {
		return nil, nil, ErrPlayerNotInBattle
	}
	state, err := rec.State()
	if err != nil || state == nil {
		return nil, nil, ErrBattleCorrupt
	}

	// Reseed from the battle seed plus log length so a retried request
	// replays the same rolls instead of drifting.
	src := rng.New(rec.Seed + int64(len(state.BattleLog)))

	action.PlayerID = playerID
	next, err := engine.ExecuteAction(state, action, src)
	if err != nil {
		return rec, state, err
	}

	if rec.VsAI && next.Phase == game.PhaseInProgress && next.ActivePlayer == rec.GuestID {
		next = RunAITurnDeduped(rec.BattleUUID, next, rec.GuestID, src)
	}

	if err := rec.SetState(next); err != nil {
		return nil, nil, err
	}
	rec.MissedTurns = 0
	if next.Phase == game.PhaseVictory {
		finishBattle(repo, rec, next, action)
	} else {
		rec.ActionDeadline = time.Now().Add(actionTimeout)
	}
	if err := repo.UpdateBattle(rec); err != nil {
		return nil, nil, err
	}
	return rec, next, nil
}

// finishBattle counts stats exactly once per battle.
func finishBattle(repo BattleRepo, rec *storage.BattleRecord, s *game.BattleState, lastAction game.Action) {
	rec.Status = storage.StatusFinished
	rec.ActionDeadline = time.Time{}
	if rec.StatsCounted {
		return
	}
	resignedID := ""
	if lastAction.Type == game.ActionSurrender {
		resignedID = lastAction.PlayerID
	}
	_ = repo.UpdateStatsOnBattleEnd(rec, resignedID)
	rec.StatsCounted = true
}
