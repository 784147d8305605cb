// Package ai implements the heuristic decision engine for AI seats. Each
// turn runs a fixed pipeline: sanitize the snapshot, self-assess from memory,
// classify a strategic mode, enumerate every legal option, score them with
// personality-weighted heuristics plus controlled variance, and record the
// choice for the next self-assessment.
package ai

import (
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/logging"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
)

// Mode is the board-level posture the scorer weights options by.
type Mode string

const (
	ModeAggressive Mode = "AGGRESSIVE"
	ModeDefensive  Mode = "DEFENSIVE"
	ModeBuilding   Mode = "BUILDING"
	ModeDesperate  Mode = "DESPERATE"
)

const defaultVarianceFactor = 0.4

// Consciousness drives one AI player across a battle.
type Consciousness struct {
	PlayerID    string
	Personality game.Personality
	Memory      *Memory

	src            *rng.Source
	varianceFactor float64
}

func New(playerID string, p game.Personality, src *rng.Source) *Consciousness {
	return &Consciousness{
		PlayerID:       playerID,
		Personality:    p,
		Memory:         NewMemory(),
		src:            src,
		varianceFactor: defaultVarianceFactor,
	}
}

// SelectAction runs the decision pipeline and always returns a legal action.
// On a terminal state, or when nothing besides passing is legal, it returns
// END_TURN.
func (c *Consciousness) SelectAction(state *game.BattleState) game.Action {
	endTurn := game.Action{Type: game.ActionEndTurn, PlayerID: c.PlayerID}
	if state == nil || state.Phase == game.PhaseVictory {
		return endTurn
	}

	// 1. Validate: never trust the snapshot blindly.
	s := c.sanitize(state)
	self := s.Players[c.PlayerID]
	if self == nil {
		return endTurn
	}
	enemyID := s.Opponent(c.PlayerID)
	enemy := s.Players[enemyID]
	if enemy == nil {
		return endTurn
	}

	// 2. Self-assessment.
	c.Memory.Observe(self.CastleHP, enemy.CastleHP, len(s.Cards(c.PlayerID)), len(s.Cards(enemyID)))
	confidence := c.confidence()

	// 3. Strategic mode.
	mode := c.classifyMode(s, self, enemy)

	// 4. Enumerate options.
	options := c.enumerateOptions(s, self, enemyID)

	// 5. Score and choose.
	best := option{action: endTurn, score: endTurnBaseScore}
	bestFinal := c.applyVariance(best.score)
	for _, opt := range options {
		base := c.scoreOption(s, opt, mode, confidence)
		final := c.applyVariance(base)
		switch {
		case final > bestFinal:
			best, bestFinal = opt, final
			best.score = base
		case final == bestFinal && c.src.Intn(2) == 0:
			best, bestFinal = opt, final
			best.score = base
		}
	}

	// 6. Record.
	c.Memory.Record(best.action, best.score)
	return best.action
}

// AvailableCards returns the hand cards the player can currently afford.
func (c *Consciousness) AvailableCards(state *game.BattleState) []game.Card {
	p := state.Players[c.PlayerID]
	if p == nil {
		return nil
	}
	out := make([]game.Card, 0, len(p.Hand))
	for _, card := range p.Hand {
		if card.ManaCost <= p.Mana {
			out = append(out, card)
		}
	}
	return out
}

// sanitize clamps out-of-range values in a private clone. A corrupted
// snapshot is logged and repaired locally, never propagated as a failure.
func (c *Consciousness) sanitize(state *game.BattleState) *game.BattleState {
	s := state.Clone()
	repaired := false
	for _, p := range s.Players {
		if p.CastleHP < 0 {
			p.CastleHP = 0
			repaired = true
		}
		if p.CastleHP > p.MaxCastleHP && p.MaxCastleHP > 0 {
			p.CastleHP = p.MaxCastleHP
			repaired = true
		}
		if p.Mana < 0 {
			p.Mana = 0
			repaired = true
		}
		if p.MaxMana > 0 && p.Mana > p.MaxMana {
			p.Mana = p.MaxMana
			repaired = true
		}
	}
	for _, bc := range s.Cards("") {
		if bc.HitPoints > bc.MaxHitPoints && bc.MaxHitPoints > 0 {
			bc.HitPoints = bc.MaxHitPoints
			repaired = true
		}
		if _, ok := s.Players[bc.OwnerID]; !ok {
			// Dangling owner reference: drop the card from consideration.
			s.Battlefield[bc.Position.Row][bc.Position.Col] = nil
			repaired = true
		}
	}
	if repaired {
		logging.Warn("ai sanitized battle snapshot", logging.Fields{"player_id": c.PlayerID, "turn": s.CurrentTurn})
	}
	return s
}

// confidence blends the rolling success rate with neutral 0.5 according to
// adaptability: an unadaptable mind ignores its track record.
func (c *Consciousness) confidence() float64 {
	rate := c.Memory.SuccessRate()
	return 0.5 + (rate-0.5)*c.Personality.Adaptability
}

func (c *Consciousness) classifyMode(s *game.BattleState, self, enemy *game.Player) Mode {
	castleRatio := 1.0
	if enemy.CastleHP > 0 {
		castleRatio = float64(self.CastleHP) / float64(enemy.CastleHP)
	}
	cardDiff := len(s.Cards(self.ID)) - len(s.Cards(enemy.ID))

	if castleRatio < 0.35 {
		return ModeDesperate
	}
	aggressionTilt := (c.Personality.Aggression - 0.5) * 0.4
	patienceTilt := (c.Personality.Patience - 0.5) * 0.4
	switch {
	case castleRatio+aggressionTilt > 1.2 || cardDiff >= 2:
		return ModeAggressive
	case castleRatio < 0.8-patienceTilt || cardDiff <= -2:
		return ModeDefensive
	default:
		return ModeBuilding
	}
}

// applyVariance perturbs a base score by the personality's creativity:
// finalScore = base * (1 + (rng-0.5) * creativity * varianceFactor).
func (c *Consciousness) applyVariance(base float64) float64 {
	return base * (1 + (c.src.Float64()-0.5)*c.Personality.Creativity*c.varianceFactor)
}
