package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/idl3o/tasern-3-sub001/internal/config"
	"github.com/idl3o/tasern-3-sub001/internal/engine"
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

// AIOpponentName labels the AI seat in vs-AI battles.
const AIOpponentName = "Consciousness"

// defaultAIPersonality is used when the host does not tune the opponent.
var defaultAIPersonality = game.Personality{
	Aggression:    0.6,
	Patience:      0.5,
	Creativity:    0.4,
	Adaptability:  0.7,
	RiskTolerance: 0.5,
}

// CreateBattleParams carries the host's choices.
type CreateBattleParams struct {
	Name        string
	Private     bool
	JoinCode    string
	HostID      string
	HostName    string
	VsAI        bool
	Personality *game.Personality
	Seed        int64
}

// CreateBattle stores a new battle. A vs-AI battle starts immediately; a
// PvP battle waits for an opponent to join by code.
func CreateBattle(repo BattleRepo, cfg *config.LoadedConfig, p CreateBattleParams) (*storage.BattleRecord, error) {
	rec := &storage.BattleRecord{
		BattleUUID: uuid.NewString(),
		JoinCode:   p.JoinCode,
		Name:       p.Name,
		Private:    p.Private,
		Status:     storage.StatusWaiting,
		HostID:     p.HostID,
		HostName:   p.HostName,
		VsAI:       p.VsAI,
		Seed:       p.Seed,
	}
	if p.VsAI {
		pers := defaultAIPersonality
		if p.Personality != nil {
			pers = *p.Personality
		}
		guestID := uuid.NewString()
		rec.GuestID = guestID
		rec.GuestName = AIOpponentName
		if err := startBattle(rec, cfg, game.Player{
			ID:          guestID,
			Name:        AIOpponentName,
			Type:        game.PlayerAI,
			Personality: &pers,
		}); err != nil {
			return nil, err
		}
		rec.ActionDeadline = time.Now().Add(cfg.ActionTimeout)
	}
	if err := repo.CreateBattle(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// JoinBattle seats a second human player and starts the battle.
func JoinBattle(repo BattleRepo, cfg *config.LoadedConfig, joinCode, guestID, guestName string) (*storage.BattleRecord, error) {
	rec, err := repo.FindBattleByJoinCode(joinCode)
	if err != nil || rec == nil {
		return nil, ErrBattleNotFound
	}
	if rec.Status != storage.StatusWaiting || rec.GuestID != "" {
		return nil, ErrBattleFull
	}
	rec.GuestID = guestID
	rec.GuestName = guestName
	if err := startBattle(rec, cfg, game.Player{
		ID:   guestID,
		Name: guestName,
		Type: game.PlayerHuman,
	}); err != nil {
		return nil, err
	}
	rec.ActionDeadline = time.Now().Add(cfg.ActionTimeout)
	if err := repo.UpdateBattle(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// startBattle builds both decks, initializes the engine state and flips the
// record to in-progress.
func startBattle(rec *storage.BattleRecord, cfg *config.LoadedConfig, guest game.Player) error {
	src := rng.New(rec.Seed)
	host := game.Player{
		ID:   rec.HostID,
		Name: rec.HostName,
		Type: game.PlayerHuman,
		Deck: BuildDeck(cfg.Cards, cfg.DeckSize, src),
	}
	guest.Deck = BuildDeck(cfg.Cards, cfg.DeckSize, src)

	state, err := engine.InitializeBattle(host, guest, engine.Config{
		Grid:             game.GridConfig{Rows: cfg.GridRows, Cols: cfg.GridCols},
		BlockedTiles:     cfg.BlockedTiles,
		StartingHandSize: cfg.StartingHandSize,
		StartingMana:     cfg.StartingMana,
		ManaCap:          cfg.ManaCap,
		CastleHP:         cfg.CastleHP,
	}, src)
	if err != nil {
		return err
	}
	rec.Status = storage.StatusInProgress
	return rec.SetState(state)
}
