package engine

import (
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
	"github.com/idl3o/tasern-3-sub001/internal/weather"
)

// endTurn mutates an already-cloned state: hands the turn to the other
// player, increments the turn counter when the cycle returns to the first
// player, refreshes the newly active player's cards and mana, draws a card,
// consults the weather schedule and finally evaluates victory.
func endTurn(s *game.BattleState, src *rng.Source) {
	next := s.Opponent(s.ActivePlayer)
	s.ActivePlayer = next

	fullCycle := len(s.TurnOrder) > 0 && next == s.TurnOrder[0]
	if fullCycle {
		s.CurrentTurn++
	}

	refreshCards(s, next)
	refreshMana(s.Players[next], s.Rules)
	drawCard(s.Players[next])

	if fullCycle {
		tickWeather(s, src)
	}

	evaluateVictory(s)
}

// refreshCards resets the per-turn flags and ticks down ability cooldowns and
// status effect durations for the newly active player's battlefield cards.
func refreshCards(s *game.BattleState, playerID string) {
	for _, bc := range s.Cards(playerID) {
		bc.HasMoved = false
		bc.HasAttacked = false
		for i := range bc.Abilities {
			if bc.Abilities[i].CurrentCooldown > 0 {
				bc.Abilities[i].CurrentCooldown--
			}
		}
		kept := bc.StatusEffects[:0]
		for _, se := range bc.StatusEffects {
			se.Duration--
			if se.Duration > 0 {
				kept = append(kept, se)
			}
		}
		bc.StatusEffects = kept
	}
}

func refreshMana(p *game.Player, rules game.Rules) {
	if p.MaxMana < rules.ManaCap {
		p.MaxMana++
	}
	p.Mana = p.MaxMana
}

func drawCard(p *game.Player) {
	if len(p.Deck) == 0 {
		return
	}
	p.Hand = append(p.Hand, p.Deck[0])
	p.Deck = p.Deck[1:]
}

// tickWeather runs once per full turn cycle: the current effect burns one
// turn (clearing at zero), then the schedule decides whether to re-roll.
func tickWeather(s *game.BattleState, src *rng.Source) {
	if s.Weather != nil {
		s.Weather.TurnsRemaining--
		if s.Weather.TurnsRemaining <= 0 {
			s.Weather = nil
		}
	}
	if weather.ShouldChange(s.CurrentTurn, src) {
		s.Weather = weather.Generate(src)
	}
}
