package api

import (
	"time"

	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

// battleView is the response envelope for a single battle. Hidden
// information (the opponent's hand and both decks) is stripped before a
// snapshot leaves the server; card counts are reported instead.
type battleView struct {
	BattleUUID     string    `json:"battle_uuid"`
	JoinCode       string    `json:"join_code"`
	Name           string    `json:"name"`
	Private        bool      `json:"private"`
	Status         string    `json:"status"`
	WinnerID       string    `json:"winner_id,omitempty"`
	HostID         string    `json:"host_id"`
	HostName       string    `json:"host_name"`
	GuestID        string    `json:"guest_id,omitempty"`
	GuestName      string    `json:"guest_name,omitempty"`
	VsAI           bool      `json:"vs_ai"`
	ActionDeadline time.Time `json:"action_deadline,omitempty"`

	State      *game.BattleState `json:"state,omitempty"`
	HandCounts map[string]int    `json:"hand_counts,omitempty"`
	DeckCounts map[string]int    `json:"deck_counts,omitempty"`
}

// viewFor builds the response for viewerID. Spectators (empty viewerID or a
// player not seated in the battle) see no hands at all.
func viewFor(rec *storage.BattleRecord, state *game.BattleState, viewerID string) battleView {
	v := battleView{
		BattleUUID:     rec.BattleUUID,
		JoinCode:       rec.JoinCode,
		Name:           rec.Name,
		Private:        rec.Private,
		Status:         rec.Status,
		WinnerID:       rec.WinnerID,
		HostID:         rec.HostID,
		HostName:       rec.HostName,
		GuestID:        rec.GuestID,
		GuestName:      rec.GuestName,
		VsAI:           rec.VsAI,
		ActionDeadline: rec.ActionDeadline,
	}
	if state == nil {
		return v
	}
	redacted := state.Clone()
	v.HandCounts = make(map[string]int, len(redacted.Players))
	v.DeckCounts = make(map[string]int, len(redacted.Players))
	for id, p := range redacted.Players {
		v.HandCounts[id] = len(p.Hand)
		v.DeckCounts[id] = len(p.Deck)
		p.Deck = nil
		if id != viewerID {
			p.Hand = nil
		}
	}
	v.State = redacted
	return v
}
