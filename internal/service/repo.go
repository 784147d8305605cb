package service

import (
	"errors"

	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

// BattleRepo is the slice of the storage repository the battle use-cases
// need.
type BattleRepo interface {
	CreateBattle(r *storage.BattleRecord) error
	GetBattleByID(id uint) (*storage.BattleRecord, error)
	FindBattleByJoinCode(code string) (*storage.BattleRecord, error)
	UpdateBattle(r *storage.BattleRecord) error
	UpdateStatsOnBattleEnd(r *storage.BattleRecord, resignedID string) error
}

var (
	ErrBattleNotFound      = errors.New("battle not found")
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrBattleFull          = errors.New("battle already has two players")
	ErrBattleCorrupt       = errors.New("battle snapshot is corrupt")
	ErrPlayerNotInBattle   = errors.New("player not in battle")
)
