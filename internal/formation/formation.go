// Package formation detects positional patterns among a player's battlefield
// cards and maps them to fixed combat modifiers. It is a stateless module of
// pure functions: identical inputs always produce identical bonuses.
package formation

import "github.com/idl3o/tasern-3-sub001/internal/game"

// Formations are mutually exclusive: candidates are evaluated in strict
// priority order and the first match wins.
//
// SIEGE > PHALANX > VANGUARD > ARCHER_LINE > FLANKING > SKIRMISH

// CalculateBonus returns the formation modifier for the given battlefield
// card. The default SKIRMISH formation always matches, so a bonus is always
// returned.
func CalculateBonus(card *game.BattleCard, state *game.BattleState) game.FormationBonus {
	allies := state.Cards(card.OwnerID)
	frontRow := state.FrontRow(card.OwnerID)
	backRow := state.BackRow(card.OwnerID)

	rowCounts := make(map[int]int, state.Grid.Rows)
	leftmost, rightmost := false, false
	for _, a := range allies {
		rowCounts[a.Position.Row]++
		if a.Position.Col == 0 {
			leftmost = true
		}
		if a.Position.Col == state.Grid.Cols-1 {
			rightmost = true
		}
	}

	switch {
	case rowCounts[frontRow] >= 2 && card.Position.Row == frontRow:
		return game.FormationBonus{Type: game.FormationSiege, AttackMod: 1.25, DefenseMod: 0.85, SpeedMod: 1.0}
	case anyRowExactly(rowCounts, 3):
		return game.FormationBonus{Type: game.FormationPhalanx, AttackMod: 1.0, DefenseMod: 1.30, SpeedMod: 0.90}
	case rowCounts[frontRow] >= 2:
		return game.FormationBonus{Type: game.FormationVanguard, AttackMod: 1.20, DefenseMod: 1.0, SpeedMod: 1.0}
	case rowCounts[backRow] >= 2:
		return game.FormationBonus{Type: game.FormationArcherLine, AttackMod: 1.15, DefenseMod: 0.90, SpeedMod: 1.0}
	case leftmost && rightmost:
		return game.FormationBonus{Type: game.FormationFlanking, AttackMod: 1.10, DefenseMod: 1.0, SpeedMod: 1.15}
	default:
		return game.FormationBonus{Type: game.FormationSkirmish, AttackMod: 1.0, DefenseMod: 1.0, SpeedMod: 1.05}
	}
}

func anyRowExactly(rowCounts map[int]int, n int) bool {
	for _, c := range rowCounts {
		if c == n {
			return true
		}
	}
	return false
}
