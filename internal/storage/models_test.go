package storage

import (
	"testing"

	"github.com/idl3o/tasern-3-sub001/internal/game"
)

func TestBattleRecord_SetStateMirrorsMetadata(t *testing.T) {
	rec := &BattleRecord{Status: StatusInProgress}
	s := &game.BattleState{
		Phase:    game.PhaseVictory,
		WinnerID: "p1",
		Players:  map[string]*game.Player{},
	}
	if err := rec.SetState(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.WinnerID != "p1" || rec.Status != StatusFinished {
		t.Fatalf("victory metadata not mirrored: winner=%q status=%q", rec.WinnerID, rec.Status)
	}

	got, err := rec.State()
	if err != nil || got == nil {
		t.Fatalf("stored snapshot should decode: %v", err)
	}
	if got.WinnerID != "p1" || got.Phase != game.PhaseVictory {
		t.Fatalf("snapshot changed across storage: %+v", got)
	}
}

func TestBattleRecord_StateNilWhenWaiting(t *testing.T) {
	rec := &BattleRecord{Status: StatusWaiting}
	s, err := rec.State()
	if err != nil || s != nil {
		t.Fatalf("a waiting record has no snapshot, got %v / %v", s, err)
	}
}
