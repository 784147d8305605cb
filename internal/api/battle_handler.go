package api

import (
	"github.com/idl3o/tasern-3-sub001/internal/config"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

// BattleHandler serves the battle lifecycle endpoints.
type BattleHandler struct {
	repo storage.Repository
	cfg  *config.LoadedConfig
}

func NewBattleHandler(repo storage.Repository, cfg *config.LoadedConfig) *BattleHandler {
	return &BattleHandler{repo: repo, cfg: cfg}
}
