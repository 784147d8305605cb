package engine

import "github.com/idl3o/tasern-3-sub001/internal/game"

// CheckVictoryConditions inspects castle hit points and reports the winner,
// if any. When both castles are at zero the defender of the action that
// caused the last castle damage loses, which makes mutual destruction
// deterministic.
func CheckVictoryConditions(s *game.BattleState) (string, bool) {
	if s.WinnerID != "" {
		return s.WinnerID, true
	}
	var losers []string
	for _, id := range s.TurnOrder {
		if s.Players[id].CastleHP <= 0 {
			losers = append(losers, id)
		}
	}
	switch len(losers) {
	case 0:
		return "", false
	case 1:
		return s.Opponent(losers[0]), true
	default:
		// Mutual destruction: the last damaged castle falls first.
		if s.LastDamagedPlayer != "" {
			return s.Opponent(s.LastDamagedPlayer), true
		}
		return s.Opponent(s.TurnOrder[0]), true
	}
}

// evaluateVictory applies the result of CheckVictoryConditions to the state.
// Once a winner is set the phase is terminal and never changes again.
func evaluateVictory(s *game.BattleState) {
	if s.Phase == game.PhaseVictory {
		return
	}
	if winner, ok := CheckVictoryConditions(s); ok {
		s.WinnerID = winner
		s.Phase = game.PhaseVictory
	}
}
