package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/idl3o/tasern-3-sub001/internal/game"
)

type abilityEntry struct {
	Key         string             `json:"key"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ManaCost    int                `json:"mana_cost"`
	Cooldown    int                `json:"cooldown"`
	Effect      game.AbilityEffect `json:"effect"`
}

type cardEntry struct {
	Name       string         `json:"name"`
	Attack     int            `json:"attack"`
	Defense    int            `json:"defense"`
	HitPoints  int            `json:"hit_points"`
	Speed      int            `json:"speed"`
	ManaCost   int            `json:"mana_cost"`
	Rarity     string         `json:"rarity"`
	CombatType string         `json:"combat_type"`
	Abilities  []abilityEntry `json:"abilities"`
}

type rawConfig struct {
	CardList []cardEntry `json:"card_list"`
	Server   *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	Battle *struct {
		GridRows         int             `json:"grid_rows"`
		GridCols         int             `json:"grid_cols"`
		BlockedTiles     []game.Position `json:"blocked_tiles"`
		StartingHandSize int             `json:"starting_hand_size"`
		StartingMana     int             `json:"starting_mana"`
		ManaCap          int             `json:"mana_cap"`
		CastleHP         int             `json:"castle_hp"`
		DeckSize         int             `json:"deck_size"`
		ActionTimeoutSec int             `json:"action_timeout_seconds"`
	} `json:"battle"`
}

// LoadedConfig contains the card catalog and host settings.
type LoadedConfig struct {
	Cards         []game.Card
	ServerAddress string
	DatabasePath  string

	GridRows         int
	GridCols         int
	BlockedTiles     []game.Position
	StartingHandSize int
	StartingMana     int
	ManaCap          int
	CastleHP         int
	DeckSize         int
	ActionTimeout    time.Duration
}

// LoadConfig reads the configuration file at path. It requires the key
// `card_list` (snake_case); everything else has defaults.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CardList) == 0 {
		return nil, fmt.Errorf("config file %s: card_list is empty (provide 'card_list' array)", path)
	}

	cards := make([]game.Card, 0, len(rc.CardList))
	for _, e := range rc.CardList {
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: card entry missing 'name'", path)
		}
		card := game.Card{
			Name:         e.Name,
			Attack:       e.Attack,
			Defense:      e.Defense,
			HitPoints:    e.HitPoints,
			MaxHitPoints: e.HitPoints,
			Speed:        e.Speed,
			ManaCost:     e.ManaCost,
			Rarity:       game.Rarity(e.Rarity),
			CombatType:   game.CombatType(e.CombatType),
		}
		if card.CombatType == "" {
			card.CombatType = game.CombatMelee
		}
		for _, ae := range e.Abilities {
			if strings.TrimSpace(ae.Key) == "" {
				return nil, fmt.Errorf("config file %s: card '%s' has an ability missing 'key'", path, e.Name)
			}
			card.Abilities = append(card.Abilities, game.Ability{
				Key:         ae.Key,
				Name:        ae.Name,
				Description: ae.Description,
				ManaCost:    ae.ManaCost,
				Cooldown:    ae.Cooldown,
				Effect:      ae.Effect,
			})
		}
		cards = append(cards, card)
	}

	// Cross-entry validation: unique card names (case-insensitive) and
	// unique ability keys within each card.
	nameSet := make(map[string]struct{}, len(cards))
	for _, card := range cards {
		ln := strings.ToLower(strings.TrimSpace(card.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate card name '%s'", path, card.Name)
		}
		nameSet[ln] = struct{}{}
		keySet := make(map[string]struct{}, len(card.Abilities))
		for _, ab := range card.Abilities {
			if _, exists := keySet[ab.Key]; exists {
				return nil, fmt.Errorf("config file %s: card '%s' has duplicate ability key '%s'", path, card.Name, ab.Key)
			}
			keySet[ab.Key] = struct{}{}
		}
	}

	out := &LoadedConfig{
		Cards:            cards,
		ServerAddress:    ":8080",
		DatabasePath:     "tasern.db",
		GridRows:         4,
		GridCols:         5,
		StartingHandSize: 5,
		StartingMana:     3,
		ManaCap:          10,
		CastleHP:         50,
		DeckSize:         15,
		ActionTimeout:    90 * time.Second,
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		out.DatabasePath = rc.Database.Path
	}
	if bt := rc.Battle; bt != nil {
		if bt.GridRows > 0 {
			out.GridRows = bt.GridRows
		}
		if bt.GridCols > 0 {
			out.GridCols = bt.GridCols
		}
		if bt.GridRows > 0 && bt.GridRows%2 != 0 {
			return nil, fmt.Errorf("config file %s: grid_rows must be even (got %d)", path, bt.GridRows)
		}
		out.BlockedTiles = bt.BlockedTiles
		if bt.StartingHandSize > 0 {
			out.StartingHandSize = bt.StartingHandSize
		}
		if bt.StartingMana > 0 {
			out.StartingMana = bt.StartingMana
		}
		if bt.ManaCap > 0 {
			out.ManaCap = bt.ManaCap
		}
		if bt.CastleHP > 0 {
			out.CastleHP = bt.CastleHP
		}
		if bt.DeckSize > 0 {
			out.DeckSize = bt.DeckSize
		}
		if bt.ActionTimeoutSec > 0 {
			out.ActionTimeout = time.Duration(bt.ActionTimeoutSec) * time.Second
		}
	}
	return out, nil
}
