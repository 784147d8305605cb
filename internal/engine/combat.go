package engine

import (
	"math"

	"github.com/idl3o/tasern-3-sub001/internal/formation"
	"github.com/idl3o/tasern-3-sub001/internal/game"
)

// Modifier composition order is fixed: base stat, then status effects, then
// formation, then weather, then the owner's loyalty bonus (attack only). The
// same pass is used for every combat calculation so formation and weather can
// never compose in a different order for attacker and defender.

func statusMultiplier(bc *game.BattleCard, statusType string) float64 {
	m := 1.0
	for _, se := range bc.StatusEffects {
		if se.Type == statusType && se.Duration > 0 {
			m *= 1.0 + float64(se.Magnitude)/100.0
		}
	}
	return m
}

func EffectiveAttack(bc *game.BattleCard, s *game.BattleState) float64 {
	fb := formation.CalculateBonus(bc, s)
	atk := float64(bc.Attack) * statusMultiplier(bc, game.StatusAttackBuff) * fb.AttackMod
	if s.Weather != nil {
		atk *= s.Weather.AttackMod
	}
	if owner, ok := s.Players[bc.OwnerID]; ok && owner.LPBonus > 0 {
		atk *= owner.LPBonus
	}
	if atk < 0 {
		return 0
	}
	return atk
}

func EffectiveDefense(bc *game.BattleCard, s *game.BattleState) float64 {
	fb := formation.CalculateBonus(bc, s)
	def := float64(bc.Defense) * statusMultiplier(bc, game.StatusDefenseBuff) * fb.DefenseMod
	if s.Weather != nil {
		def *= s.Weather.DefenseMod
	}
	if def < 0 {
		return 0
	}
	return def
}

// EffectiveSpeed is exported for AI scoring; the engine itself only uses
// speed indirectly today but the modifier pass must stay consistent.
func EffectiveSpeed(bc *game.BattleCard, s *game.BattleState) float64 {
	fb := formation.CalculateBonus(bc, s)
	spd := float64(bc.Speed) * statusMultiplier(bc, game.StatusSpeedBuff) * fb.SpeedMod
	if s.Weather != nil {
		spd *= s.Weather.SpeedMod
	}
	if spd < 0 {
		return 0
	}
	return spd
}

// PredictCardDamage is the card-vs-card damage formula: max(0, effAtk -
// effDef), rounded to the nearest point. Exported so the AI scores with the
// exact math the engine will apply.
func PredictCardDamage(attacker, target *game.BattleCard, s *game.BattleState) int {
	raw := EffectiveAttack(attacker, s) - EffectiveDefense(target, s)
	if raw <= 0 {
		return 0
	}
	return int(math.Round(raw))
}

// PredictCastleDamage is the raw effective attack; castles have no defense
// stat.
func PredictCastleDamage(attacker *game.BattleCard, s *game.BattleState) int {
	return int(math.Round(EffectiveAttack(attacker, s)))
}

// AttackRange returns the Chebyshev reach for a combat type.
func AttackRange(t game.CombatType) int {
	switch t {
	case game.CombatRanged:
		return 3
	case game.CombatArcane:
		return 2
	default:
		return 1
	}
}

func chebyshev(a, b game.Position) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}

// inRange reports whether the attacker can reach the target cell under the
// combat-range rule.
func inRange(attacker *game.BattleCard, target game.Position) bool {
	return chebyshev(attacker.Position, target) <= AttackRange(attacker.CombatType)
}

// canReachCastle reports whether the attacker may strike the enemy castle:
// it must hold its owner's front row, the contact line between the halves.
func canReachCastle(attacker *game.BattleCard, s *game.BattleState) bool {
	return attacker.Position.Row == s.FrontRow(attacker.OwnerID)
}
