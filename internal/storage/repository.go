package storage

import (
	"time"

	"github.com/idl3o/tasern-3-sub001/internal/game"
)

type Repository interface {
	// GetCards returns the card catalog (config stats applied).
	GetCards() ([]game.Card, error)

	CreateBattle(r *BattleRecord) error
	GetBattleByID(id uint) (*BattleRecord, error)
	FindBattleByJoinCode(code string) (*BattleRecord, error)
	// GetOpenBattles lists recent public battles still waiting for an
	// opponent.
	GetOpenBattles() ([]BattleRecord, error)
	UpdateBattle(r *BattleRecord) error

	UpsertProfile(playerUUID, name string) error
	GetStatsByUUID(playerUUID string) (*PlayerProfile, error)
	// UpdateStatsOnBattleEnd counts a finished battle once per participant
	// and credits the winner; resignedID marks a surrender.
	UpdateStatsOnBattleEnd(r *BattleRecord, resignedID string) error
	// GetTopPlayers orders profiles by wins, then games played.
	GetTopPlayers(limit int) ([]PlayerProfile, error)

	// ClaimTimedOutBattleIDs atomically claims up to limit in-progress
	// battles whose action deadline passed, so exactly one scanner worker
	// handles each. Claims expire after claimTTL.
	ClaimTimedOutBattleIDs(now time.Time, limit int, claimTTL time.Duration, workerID string) ([]uint, error)
}
