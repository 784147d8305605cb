// Command arena runs a local AI-vs-AI battle and prints the action log.
// Useful for balancing card stats and watching two personalities fight.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/idl3o/tasern-3-sub001/internal/ai"
	"github.com/idl3o/tasern-3-sub001/internal/config"
	"github.com/idl3o/tasern-3-sub001/internal/engine"
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
	"github.com/idl3o/tasern-3-sub001/internal/service"
	"github.com/idl3o/tasern-3-sub001/internal/strategy"
)

const maxActions = 2000

func main() {
	configPath := flag.String("config", "./tasern_config.json", "path to the battle configuration file")
	seed := flag.Int64("seed", 0, "battle seed (0 uses the current time)")
	turnLimit := flag.Int("turns", 100, "stop the simulation after this many turns")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arena: %v\n", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	src := rng.New(*seed)
	red := game.Player{
		ID:   "red",
		Name: "Crimson Mind",
		Type: game.PlayerAI,
		Personality: &game.Personality{
			Aggression: 0.85, Patience: 0.2, Creativity: 0.5, Adaptability: 0.6, RiskTolerance: 0.8,
		},
		Deck: service.BuildDeck(cfg.Cards, cfg.DeckSize, src),
	}
	blue := game.Player{
		ID:   "blue",
		Name: "Azure Mind",
		Type: game.PlayerAI,
		Personality: &game.Personality{
			Aggression: 0.3, Patience: 0.8, Creativity: 0.4, Adaptability: 0.7, RiskTolerance: 0.25,
		},
		Deck: service.BuildDeck(cfg.Cards, cfg.DeckSize, src),
	}

	state, err := engine.InitializeBattle(red, blue, engine.Config{
		Grid:             game.GridConfig{Rows: cfg.GridRows, Cols: cfg.GridCols},
		BlockedTiles:     cfg.BlockedTiles,
		StartingHandSize: cfg.StartingHandSize,
		StartingMana:     cfg.StartingMana,
		ManaCap:          cfg.ManaCap,
		CastleHP:         cfg.CastleHP,
	}, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arena: %v\n", err)
		os.Exit(1)
	}

	color.New(color.Bold).Printf("Seed %d: %s vs %s\n\n", *seed, red.Name, blue.Name)

	minds := map[string]strategy.Strategy{
		red.ID:  strategy.NewAI(ai.New(red.ID, *red.Personality, src)),
		blue.ID: strategy.NewAI(ai.New(blue.ID, *blue.Personality, src)),
	}
	colors := map[string]*color.Color{
		red.ID:  color.New(color.FgRed),
		blue.ID: color.New(color.FgBlue),
	}

	ctx := context.Background()
	logged := len(state.BattleLog)
	for i := 0; i < maxActions; i++ {
		if state.Phase == game.PhaseVictory || state.CurrentTurn > *turnLimit {
			break
		}
		active := state.ActivePlayer
		action, err := minds[active].SelectAction(ctx, state)
		if err != nil {
			fmt.Fprintf(os.Stderr, "arena: %v\n", err)
			os.Exit(1)
		}
		next, err := engine.ExecuteAction(state, action, src)
		if err != nil {
			// An AI action should always be legal; fall back to passing.
			next, err = engine.EndTurn(state, src)
			if err != nil {
				fmt.Fprintf(os.Stderr, "arena: %v\n", err)
				os.Exit(1)
			}
		}
		state = next
		for ; logged < len(state.BattleLog); logged++ {
			e := state.BattleLog[logged]
			printEntry(colors, state, e)
		}
	}

	fmt.Println()
	if state.Phase == game.PhaseVictory {
		winner := state.Players[state.WinnerID]
		color.New(color.Bold, color.FgGreen).Printf("%s wins on turn %d\n", winner.Name, state.CurrentTurn)
	} else {
		color.New(color.Bold, color.FgYellow).Printf("No victor after %d turns\n", *turnLimit)
	}
	for _, id := range state.TurnOrder {
		p := state.Players[id]
		fmt.Printf("  %s castle %d/%d, %d cards fielded\n", p.Name, p.CastleHP, p.MaxCastleHP, len(state.Cards(id)))
	}
}

func printEntry(colors map[string]*color.Color, state *game.BattleState, e game.LogEntry) {
	cl := colors[e.PlayerID]
	if cl == nil {
		cl = color.New(color.FgWhite)
	}
	name := e.PlayerID
	if p, ok := state.Players[e.PlayerID]; ok {
		name = p.Name
	}
	cl.Printf("turn %2d  %-12s %-14s %s\n", e.Turn, name, e.Action, e.Result)
}
