package storage

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/idl3o/tasern-3-sub001/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
	// configByName maps lowercase card name -> config definition (stats).
	configByName map[string]game.Card
}

func NewSQLiteRepository(db *gorm.DB, configCards []game.Card) Repository {
	m := make(map[string]game.Card, len(configCards))
	for _, c := range configCards {
		m[strings.ToLower(c.Name)] = c
	}
	return &sqliteRepository{db: db, configByName: m}
}

func (r *sqliteRepository) GetCards() ([]game.Card, error) {
	var templates []CardTemplate
	if err := r.db.Order("name asc").Find(&templates).Error; err != nil {
		return nil, err
	}
	// Config is the source of truth for stats; the table only pins names.
	out := make([]game.Card, 0, len(templates))
	for _, t := range templates {
		if conf, ok := r.configByName[strings.ToLower(t.Name)]; ok {
			out = append(out, conf)
		}
	}
	return out, nil
}

func (r *sqliteRepository) CreateBattle(rec *BattleRecord) error {
	return r.db.Create(rec).Error
}

func (r *sqliteRepository) GetBattleByID(id uint) (*BattleRecord, error) {
	var rec BattleRecord
	if err := r.db.First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) FindBattleByJoinCode(code string) (*BattleRecord, error) {
	var rec BattleRecord
	if err := r.db.Where("join_code = ?", code).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *sqliteRepository) GetOpenBattles() ([]BattleRecord, error) {
	var recs []BattleRecord
	fiveMinutesAgo := time.Now().Add(-5 * time.Minute)
	err := r.db.
		Where("private = ? AND status = ? AND created_at > ?", false, StatusWaiting, fiveMinutesAgo).
		Order("created_at desc").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *sqliteRepository) UpdateBattle(rec *BattleRecord) error {
	return r.db.Save(rec).Error
}

func (r *sqliteRepository) UpsertProfile(playerUUID, name string) error {
	var p PlayerProfile
	if err := r.db.Where("player_uuid = ?", playerUUID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			p = PlayerProfile{PlayerUUID: playerUUID}
		} else {
			return err
		}
	}
	p.PlayerName = name
	return r.db.Save(&p).Error
}

func (r *sqliteRepository) GetStatsByUUID(playerUUID string) (*PlayerProfile, error) {
	var p PlayerProfile
	if err := r.db.Where("player_uuid = ?", playerUUID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &PlayerProfile{PlayerUUID: playerUUID}, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *sqliteRepository) UpdateStatsOnBattleEnd(rec *BattleRecord, resignedID string) error {
	upsert := func(uuid, name string, played, wins, resigns int) error {
		if uuid == "" {
			return nil
		}
		var p PlayerProfile
		if err := r.db.Where("player_uuid = ?", uuid).First(&p).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				p = PlayerProfile{PlayerUUID: uuid}
			} else {
				return err
			}
		}
		p.PlayerName = name
		p.GamesPlayed += played
		p.Wins += wins
		p.Resignations += resigns
		return r.db.Save(&p).Error
	}

	if err := upsert(rec.HostID, rec.HostName, 1, 0, 0); err != nil {
		return err
	}
	if !rec.VsAI {
		if err := upsert(rec.GuestID, rec.GuestName, 1, 0, 0); err != nil {
			return err
		}
	}
	switch rec.WinnerID {
	case rec.HostID:
		if err := upsert(rec.HostID, rec.HostName, 0, 1, 0); err != nil {
			return err
		}
	case rec.GuestID:
		if !rec.VsAI {
			if err := upsert(rec.GuestID, rec.GuestName, 0, 1, 0); err != nil {
				return err
			}
		}
	}
	if resignedID != "" {
		switch resignedID {
		case rec.HostID:
			return upsert(rec.HostID, rec.HostName, 0, 0, 1)
		case rec.GuestID:
			if !rec.VsAI {
				return upsert(rec.GuestID, rec.GuestName, 0, 0, 1)
			}
		}
	}
	return nil
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]PlayerProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	var profiles []PlayerProfile
	err := r.db.Model(&PlayerProfile{}).
		Order("wins DESC").
		Order("games_played DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// ClaimTimedOutBattleIDs marks expired in-progress battles with this
// worker's id inside a transaction, then returns the claimed ids. Stale
// claims (older than claimTTL) are stolen so a crashed worker cannot wedge
// a battle.
func (r *sqliteRepository) ClaimTimedOutBattleIDs(now time.Time, limit int, claimTTL time.Duration, workerID string) ([]uint, error) {
	if limit <= 0 {
		limit = 20
	}
	staleBefore := now.Add(-claimTTL)
	var ids []uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var recs []BattleRecord
		if err := tx.Select("id").
			Where("status = ? AND action_deadline <= ?", StatusInProgress, now).
			Where("claimed_by = ? OR claimed_at <= ?", "", staleBefore).
			Limit(limit).
			Find(&recs).Error; err != nil {
			return err
		}
		for _, rec := range recs {
			res := tx.Model(&BattleRecord{}).
				Where("id = ?", rec.ID).
				Where("claimed_by = ? OR claimed_at <= ?", "", staleBefore).
				Updates(map[string]interface{}{"claimed_by": workerID, "claimed_at": now})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				ids = append(ids, rec.ID)
			}
		}
		return nil
	})
	return ids, err
}
