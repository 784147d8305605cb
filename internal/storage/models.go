package storage

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/idl3o/tasern-3-sub001/internal/game"
)

// Battle statuses persisted on BattleRecord.
const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// BattleRecord is the persisted envelope around a battle. The engine's
// BattleState is stored as a serialized snapshot; the metadata columns exist
// so listings and the timeout scanner can query without decoding snapshots.
type BattleRecord struct {
	gorm.Model
	BattleUUID string `json:"battle_uuid" gorm:"uniqueIndex"`
	JoinCode   string `json:"join_code" gorm:"uniqueIndex"`
	Name       string `json:"name" gorm:"size:32"`
	Private    bool   `json:"private"`
	Status     string `json:"status"`
	WinnerID   string `json:"winner_id"`

	HostID    string `json:"host_id"`
	HostName  string `json:"host_name"`
	GuestID   string `json:"guest_id"`
	GuestName string `json:"guest_name"`
	VsAI      bool   `json:"vs_ai"`
	Seed      int64  `json:"-"`

	// StateJSON holds the serialized game.BattleState snapshot.
	StateJSON []byte `json:"-" gorm:"column:state_json;type:blob"`

	ActionDeadline time.Time `json:"action_deadline"`
	// MissedTurns counts consecutive timeouts; it resets whenever a player
	// acts on their own.
	MissedTurns  int       `json:"-"`
	ClaimedBy    string    `json:"-"`
	ClaimedAt    time.Time `json:"-"`
	StatsCounted bool      `json:"-"`
}

func (BattleRecord) TableName() string { return "battles" }

// State decodes the stored snapshot. A record still waiting for an opponent
// has no snapshot yet and yields nil.
func (r *BattleRecord) State() (*game.BattleState, error) {
	if len(r.StateJSON) == 0 {
		return nil, nil
	}
	var s game.BattleState
	if err := json.Unmarshal(r.StateJSON, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetState serializes the snapshot and mirrors the derived metadata columns.
func (r *BattleRecord) SetState(s *game.BattleState) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	r.StateJSON = b
	r.WinnerID = s.WinnerID
	if s.Phase == game.PhaseVictory {
		r.Status = StatusFinished
	}
	return nil
}

// CardTemplate pins the card catalog rows. Stats are configured via the
// server config and are NOT persisted; only the name anchors the row so
// references stay stable across config edits (mirroring how entity templates
// work: config is the single source of truth for numbers).
type CardTemplate struct {
	gorm.Model
	Name string `json:"name" gorm:"uniqueIndex"`
}

func (CardTemplate) TableName() string { return "card_templates" }

// PlayerProfile stores identity and aggregate stats per player.
type PlayerProfile struct {
	gorm.Model
	PlayerUUID   string `json:"player_uuid" gorm:"uniqueIndex"`
	PlayerName   string `json:"player_name"`
	GamesPlayed  int    `json:"games_played"`
	Wins         int    `json:"wins"`
	Resignations int    `json:"resignations"`
}

func (PlayerProfile) TableName() string { return "player_profiles" }
