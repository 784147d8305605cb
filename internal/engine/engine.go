// Package engine implements all battle state transitions: initialization,
// action execution, turn rollover and victory evaluation. Every transition
// either returns a complete new state or the unchanged input plus an error;
// nothing is ever partially applied.
package engine

import (
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
	"github.com/idl3o/tasern-3-sub001/internal/weather"
)

// Config describes the battlefield and resource rules for a new battle.
type Config struct {
	Grid             game.GridConfig
	BlockedTiles     []game.Position
	StartingHandSize int
	StartingMana     int
	ManaCap          int
	CastleHP         int
}

// DefaultConfig returns the standard 4x5 battlefield rules.
func DefaultConfig() Config {
	return Config{
		Grid:             game.GridConfig{Rows: 4, Cols: 5},
		StartingHandSize: 5,
		StartingMana:     3,
		ManaCap:          10,
		CastleHP:         50,
	}
}

// InitializeBattle builds the opening snapshot: shuffled decks, dealt hands,
// turn 1 with the first-supplied player active, and the mandatory initial
// weather roll (ShouldChange is unconditionally true on turn 1; the weather
// field stays nil only when that roll comes up clear).
func InitializeBattle(a, b game.Player, cfg Config, src *rng.Source) (*game.BattleState, error) {
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		return nil, ErrInvalidPlayerCount
	}
	if cfg.Grid.Rows < 2 || cfg.Grid.Rows%2 != 0 || cfg.Grid.Cols < 1 {
		return nil, ErrInvalidConfig
	}

	state := &game.BattleState{
		Grid: cfg.Grid,
		Rules: game.Rules{
			StartingHandSize: cfg.StartingHandSize,
			StartingMana:     cfg.StartingMana,
			ManaCap:          cfg.ManaCap,
		},
		Players:      map[string]*game.Player{},
		TurnOrder:    []string{a.ID, b.ID},
		CurrentTurn:  1,
		ActivePlayer: a.ID,
		Phase:        game.PhaseInProgress,
		DiscardPiles: map[string][]game.Card{a.ID: {}, b.ID: {}},
	}

	state.Battlefield = make([][]*game.BattleCard, cfg.Grid.Rows)
	for r := range state.Battlefield {
		state.Battlefield[r] = make([]*game.BattleCard, cfg.Grid.Cols)
	}
	for _, t := range cfg.BlockedTiles {
		if cfg.Grid.Contains(t) {
			state.BlockedTiles = append(state.BlockedTiles, t)
		}
	}

	for _, p := range []game.Player{a, b} {
		pp := p
		if pp.MaxCastleHP == 0 {
			pp.MaxCastleHP = cfg.CastleHP
		}
		if pp.CastleHP == 0 {
			pp.CastleHP = pp.MaxCastleHP
		}
		if pp.LPBonus == 0 {
			pp.LPBonus = 1.0
		}
		pp.Mana = cfg.StartingMana
		pp.MaxMana = cfg.StartingMana
		pp.Deck = append([]game.Card(nil), pp.Deck...)
		src.Shuffle(len(pp.Deck), func(i, j int) {
			pp.Deck[i], pp.Deck[j] = pp.Deck[j], pp.Deck[i]
		})
		deal := cfg.StartingHandSize
		if deal > len(pp.Deck) {
			deal = len(pp.Deck)
		}
		pp.Hand = append([]game.Card(nil), pp.Deck[:deal]...)
		pp.Deck = pp.Deck[deal:]
		state.Players[pp.ID] = &pp
	}

	if weather.ShouldChange(state.CurrentTurn, src) {
		state.Weather = weather.Generate(src)
	}

	state.BattleLog = append(state.BattleLog, game.LogEntry{
		Turn:     1,
		PlayerID: a.ID,
		Action:   "battle_start",
		Result:   battleStartSummary(state),
	})
	return state, nil
}

func battleStartSummary(s *game.BattleState) string {
	if s.Weather == nil {
		return "battle begins under clear skies"
	}
	return "battle begins under " + string(s.Weather.Type)
}
