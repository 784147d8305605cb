package ai

import (
	"github.com/idl3o/tasern-3-sub001/internal/engine"
	"github.com/idl3o/tasern-3-sub001/internal/game"
)

// endTurnBaseScore is the bar a real option has to clear. Passing is always
// legal, so any option scoring below this is worse than doing nothing.
const endTurnBaseScore = 1.0

// modeWeights tunes the four heuristic channels per strategic mode.
type modeWeights struct {
	damage  float64
	kill    float64
	defense float64
	tempo   float64
}

var weightsByMode = map[Mode]modeWeights{
	ModeAggressive: {damage: 1.4, kill: 1.6, defense: 0.6, tempo: 0.9},
	ModeDefensive:  {damage: 0.8, kill: 1.1, defense: 1.5, tempo: 0.8},
	ModeBuilding:   {damage: 0.9, kill: 1.0, defense: 1.0, tempo: 1.5},
	ModeDesperate:  {damage: 1.7, kill: 2.0, defense: 0.4, tempo: 0.6},
}

// scoreOption produces the base (pre-variance) score for a candidate.
func (c *Consciousness) scoreOption(s *game.BattleState, opt option, mode Mode, confidence float64) float64 {
	w := weightsByMode[mode]
	var score float64

	switch opt.kind {
	case optDeploy:
		card := opt.card
		statValue := float64(card.Attack+card.Defense+card.HitPoints) / 3.0
		tempo := statValue / float64(card.ManaCost+1)
		score = w.tempo*tempo + w.defense*float64(card.Defense)*0.3
		// Holding mana back is patience; spending it all is aggression.
		score *= 0.8 + 0.4*c.Personality.Aggression
	case optAttackCard:
		score = w.damage * float64(opt.damage)
		if opt.kills {
			score += w.kill * float64(opt.target.ManaCost+3)
		}
		// Trading into a counterattack is a risk proposition.
		exposure := engine.PredictCardDamage(opt.target, opt.attacker, s)
		score -= (1.0 - c.Personality.RiskTolerance) * float64(exposure) * 0.5
	case optAttackCastle:
		score = w.damage * float64(opt.damage) * (0.8 + 0.6*c.Personality.Aggression)
		if opt.kills {
			score += 1000 // lethal: nothing outranks winning
		}
	case optAbility:
		if opt.target != nil && opt.target.OwnerID != c.PlayerID {
			score = w.damage * float64(opt.damage) * 0.9
			if opt.kills {
				score += w.kill * float64(opt.target.ManaCost+3)
			}
		} else {
			// Heals and self-buffs are defensive value.
			score = w.defense * (float64(opt.damage) + 2.0)
		}
	}

	// Confidence scales the whole evaluation: a shaken mind undervalues its
	// own plans and ends up passing sooner.
	return score * (0.5 + confidence)
}
