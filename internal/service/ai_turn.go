package service

import (
	"golang.org/x/sync/singleflight"

	"github.com/idl3o/tasern-3-sub001/internal/ai"
	"github.com/idl3o/tasern-3-sub001/internal/engine"
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/logging"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
)

// aiTurnGroup deduplicates concurrent AI-turn computation per battle, so two
// racing submissions for the same battle cannot double-run the opponent.
var aiTurnGroup singleflight.Group

// aiTurnBudget caps actions per AI turn as a stuck-loop guard; the AI ends
// its turn well before this in practice.
const aiTurnBudget = 50

// RunAITurnDeduped computes the AI's turn once per battle key even under
// concurrent callers.
func RunAITurnDeduped(battleKey string, state *game.BattleState, aiPlayerID string, src *rng.Source) *game.BattleState {
	v, _, _ := aiTurnGroup.Do(battleKey, func() (interface{}, error) {
		return runAITurn(state, aiPlayerID, src), nil
	})
	return v.(*game.BattleState)
}

// runAITurn lets the consciousness act until it ends its turn, loses the
// initiative or the battle finishes.
func runAITurn(state *game.BattleState, aiPlayerID string, src *rng.Source) *game.BattleState {
	player := state.Players[aiPlayerID]
	if player == nil {
		return state
	}
	pers := defaultAIPersonality
	if player.Personality != nil {
		pers = *player.Personality
	}
	mind := ai.New(aiPlayerID, pers, src)

	for i := 0; i < aiTurnBudget; i++ {
		if state.Phase != game.PhaseInProgress || state.ActivePlayer != aiPlayerID {
			return state
		}
		action := mind.SelectAction(state)
		next, err := engine.ExecuteAction(state, action, src)
		if err != nil {
			// The AI enumerates from engine rules, so a rejection here is a
			// bug worth logging; pass rather than loop on it.
			logging.Error("ai emitted an illegal action", err, logging.Fields{"player_id": aiPlayerID, "action": string(action.Type)})
			next, err = engine.EndTurn(state, src)
			if err != nil {
				return state
			}
		}
		state = next
		if action.Type == game.ActionEndTurn {
			return state
		}
	}
	if state.Phase == game.PhaseInProgress && state.ActivePlayer == aiPlayerID {
		if next, err := engine.EndTurn(state, src); err == nil {
			state = next
		}
	}
	return state
}
