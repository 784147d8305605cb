package service

import (
	"testing"
	"time"

	"github.com/idl3o/tasern-3-sub001/internal/config"
	"github.com/idl3o/tasern-3-sub001/internal/engine"
	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
	"github.com/idl3o/tasern-3-sub001/internal/storage"
)

type mockRepo struct {
	battles     map[uint]*storage.BattleRecord
	nextID      uint
	statsCalled bool
	resignedID  string
}

func newMockRepo() *mockRepo {
	return &mockRepo{battles: map[uint]*storage.BattleRecord{}, nextID: 1}
}

func (m *mockRepo) CreateBattle(r *storage.BattleRecord) error {
	r.ID = m.nextID
	m.nextID++
	m.battles[r.ID] = r
	return nil
}

func (m *mockRepo) GetBattleByID(id uint) (*storage.BattleRecord, error) {
	if r, ok := m.battles[id]; ok {
		return r, nil
	}
	return nil, ErrBattleNotFound
}

func (m *mockRepo) FindBattleByJoinCode(code string) (*storage.BattleRecord, error) {
	for _, r := range m.battles {
		if r.JoinCode == code {
			return r, nil
		}
	}
	return nil, ErrBattleNotFound
}

func (m *mockRepo) UpdateBattle(r *storage.BattleRecord) error {
	m.battles[r.ID] = r
	return nil
}

func (m *mockRepo) UpdateStatsOnBattleEnd(r *storage.BattleRecord, resignedID string) error {
	m.statsCalled = true
	m.resignedID = resignedID
	return nil
}

func testConfig() *config.LoadedConfig {
	return &config.LoadedConfig{
		Cards: []game.Card{
			{Name: "Squire", Attack: 3, Defense: 2, HitPoints: 8, MaxHitPoints: 8, Speed: 3, ManaCost: 1, CombatType: game.CombatMelee},
			{Name: "Knight", Attack: 6, Defense: 4, HitPoints: 12, MaxHitPoints: 12, Speed: 3, ManaCost: 3, CombatType: game.CombatMelee},
			{Name: "Archer", Attack: 4, Defense: 1, HitPoints: 6, MaxHitPoints: 6, Speed: 4, ManaCost: 2, CombatType: game.CombatRanged},
		},
		GridRows:         4,
		GridCols:         5,
		StartingHandSize: 5,
		StartingMana:     3,
		ManaCap:          10,
		CastleHP:         50,
		DeckSize:         15,
		ActionTimeout:    time.Minute,
	}
}

func TestBuildDeck_SizeAndInstanceIDs(t *testing.T) {
	cfg := testConfig()
	deck := BuildDeck(cfg.Cards, 15, rng.New(1))
	if len(deck) != 15 {
		t.Fatalf("expected 15 cards, got %d", len(deck))
	}
	ids := map[string]bool{}
	for _, c := range deck {
		if c.ID == "" {
			t.Fatalf("deck card %s has no instance id", c.Name)
		}
		if ids[c.ID] {
			t.Fatalf("instance id %s repeated", c.ID)
		}
		ids[c.ID] = true
	}
}

func TestCreateBattle_VsAIStartsImmediately(t *testing.T) {
	repo := newMockRepo()
	rec, err := CreateBattle(repo, testConfig(), CreateBattleParams{
		Name: "proving grounds", JoinCode: "AAAA1111",
		HostID: "host-1", HostName: "Tester", VsAI: true, Seed: 42,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != storage.StatusInProgress {
		t.Fatalf("vs-AI battle should start immediately, got %s", rec.Status)
	}
	if rec.GuestID == "" || rec.GuestName != AIOpponentName {
		t.Fatalf("AI seat not filled: %q %q", rec.GuestID, rec.GuestName)
	}
	state, err := rec.State()
	if err != nil || state == nil {
		t.Fatalf("expected a stored snapshot: %v", err)
	}
	if state.ActivePlayer != "host-1" {
		t.Fatalf("host should open the battle, got %s", state.ActivePlayer)
	}
	if state.Players[rec.GuestID].Type != game.PlayerAI {
		t.Fatalf("guest seat should be an AI player")
	}
	if len(state.Players["host-1"].Hand) != 5 || len(state.Players["host-1"].Deck) != 10 {
		t.Fatalf("host should hold 5 cards with 10 in the deck, got %d/%d",
			len(state.Players["host-1"].Hand), len(state.Players["host-1"].Deck))
	}
	if rec.ActionDeadline.IsZero() {
		t.Fatalf("in-progress battle needs an action deadline")
	}
}

func TestCreateAndJoinBattle_PvP(t *testing.T) {
	repo := newMockRepo()
	rec, err := CreateBattle(repo, testConfig(), CreateBattleParams{
		Name: "open duel", JoinCode: "BBBB2222", HostID: "host-1", HostName: "Host", Seed: 7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != storage.StatusWaiting {
		t.Fatalf("PvP battle should wait for an opponent, got %s", rec.Status)
	}

	joined, err := JoinBattle(repo, testConfig(), "BBBB2222", "guest-1", "Guest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if joined.Status != storage.StatusInProgress || joined.GuestID != "guest-1" {
		t.Fatalf("join should seat the guest and start: %+v", joined)
	}

	// A third player cannot join.
	if _, err := JoinBattle(repo, testConfig(), "BBBB2222", "guest-2", "Late"); err != ErrBattleFull {
		t.Fatalf("expected ErrBattleFull, got %v", err)
	}
	if _, err := JoinBattle(repo, testConfig(), "ZZZZ9999", "guest-2", "Lost"); err != ErrBattleNotFound {
		t.Fatalf("expected ErrBattleNotFound, got %v", err)
	}
}

func TestSubmitAction_RunsAITurn(t *testing.T) {
	repo := newMockRepo()
	rec, err := CreateBattle(repo, testConfig(), CreateBattleParams{
		Name: "vs mind", JoinCode: "CCCC3333", HostID: "host-1", HostName: "Host", VsAI: true, Seed: 99,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, state, err := SubmitAction(repo, rec.ID, "host-1", game.Action{Type: game.ActionEndTurn}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The AI acts synchronously and hands the initiative back.
	if state.Phase == game.PhaseInProgress && state.ActivePlayer != "host-1" {
		t.Fatalf("initiative should return to the host, active=%s", state.ActivePlayer)
	}
	if state.CurrentTurn != 2 {
		t.Fatalf("a full cycle should advance to turn 2, got %d", state.CurrentTurn)
	}
}

func TestSubmitAction_RejectionsLeaveRecordAlone(t *testing.T) {
	repo := newMockRepo()
	rec, err := CreateBattle(repo, testConfig(), CreateBattleParams{
		Name: "vs mind", JoinCode: "DDDD4444", HostID: "host-1", HostName: "Host", VsAI: true, Seed: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	storedBefore := append([]byte(nil), rec.StateJSON...)

	// Acting for the AI seat is not the host's turn.
	_, _, err = SubmitAction(repo, rec.ID, rec.GuestID, game.Action{Type: game.ActionEndTurn}, time.Minute)
	if !engine.IsIllegalAction(err) {
		t.Fatalf("expected an illegal-action rejection, got %v", err)
	}
	if string(rec.StateJSON) != string(storedBefore) {
		t.Fatalf("a rejected action must not rewrite the stored snapshot")
	}

	if _, _, err := SubmitAction(repo, rec.ID, "stranger", game.Action{Type: game.ActionEndTurn}, time.Minute); err != ErrPlayerNotInBattle {
		t.Fatalf("expected ErrPlayerNotInBattle, got %v", err)
	}
	if _, _, err := SubmitAction(repo, 9999, "host-1", game.Action{Type: game.ActionEndTurn}, time.Minute); err != ErrBattleNotFound {
		t.Fatalf("expected ErrBattleNotFound, got %v", err)
	}
}

func TestSubmitAction_SurrenderFinishesAndCountsStats(t *testing.T) {
	repo := newMockRepo()
	rec, err := CreateBattle(repo, testConfig(), CreateBattleParams{
		Name: "white flag", JoinCode: "EEEE5555", HostID: "host-1", HostName: "Host", VsAI: true, Seed: 8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, state, err := SubmitAction(repo, rec.ID, "host-1", game.Action{Type: game.ActionSurrender}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Phase != game.PhaseVictory || state.WinnerID != rec.GuestID {
		t.Fatalf("surrender should hand the AI the win, got phase=%s winner=%q", state.Phase, state.WinnerID)
	}
	if updated.Status != storage.StatusFinished {
		t.Fatalf("record should be finished, got %s", updated.Status)
	}
	if !repo.statsCalled || repo.resignedID != "host-1" {
		t.Fatalf("stats should count once with the resigner marked, called=%v resigned=%q", repo.statsCalled, repo.resignedID)
	}

	// Any further action is rejected at the record level.
	if _, _, err := SubmitAction(repo, rec.ID, "host-1", game.Action{Type: game.ActionEndTurn}, time.Minute); err != ErrBattleNotInProgress {
		t.Fatalf("expected ErrBattleNotInProgress, got %v", err)
	}
}

func TestHandleTimedOutBattle_ClosesWaiting(t *testing.T) {
	repo := newMockRepo()
	rec := &storage.BattleRecord{
		BattleUUID: "b-1", JoinCode: "FFFF6666", Status: storage.StatusWaiting,
		HostID: "host-1", ActionDeadline: time.Now().Add(-time.Minute),
	}
	_ = repo.CreateBattle(rec)

	if err := HandleTimedOutBattle(repo, rec, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != storage.StatusFinished {
		t.Fatalf("an unmatched battle should close on timeout, got %s", rec.Status)
	}
}

func TestHandleTimedOutBattle_AutoEndsTurn(t *testing.T) {
	repo := newMockRepo()
	rec, err := CreateBattle(repo, testConfig(), CreateBattleParams{
		Name: "asleep", JoinCode: "GGGG7777", HostID: "host-1", HostName: "Host", VsAI: true, Seed: 13,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec.ActionDeadline = time.Now().Add(-time.Minute)
	rec.ClaimedBy = "worker-1"
	rec.ClaimedAt = time.Now()

	if err := HandleTimedOutBattle(repo, rec, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, err := rec.State()
	if err != nil || state == nil {
		t.Fatalf("snapshot missing after timeout handling: %v", err)
	}
	// Host's turn was passed for them, then the AI played and passed back.
	if state.Phase == game.PhaseInProgress && state.ActivePlayer != "host-1" {
		t.Fatalf("expected the host active again, got %s", state.ActivePlayer)
	}
	if rec.ClaimedBy != "" {
		t.Fatalf("claim should be released after handling")
	}
	if rec.Status == storage.StatusInProgress && rec.ActionDeadline.Before(time.Now()) {
		t.Fatalf("deadline should be pushed forward for the next action")
	}
	if rec.MissedTurns != 1 {
		t.Fatalf("expected 1 missed turn recorded, got %d", rec.MissedTurns)
	}
}

func TestHandleTimedOutBattle_ForfeitsAfterRepeatedMisses(t *testing.T) {
	repo := newMockRepo()
	rec, err := CreateBattle(repo, testConfig(), CreateBattleParams{
		Name: "gone", JoinCode: "HHHH8888", HostID: "host-1", HostName: "Host", VsAI: true, Seed: 17,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec.MissedTurns = maxMissedTurns - 1
	rec.ActionDeadline = time.Now().Add(-time.Minute)

	if err := HandleTimedOutBattle(repo, rec, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Status != storage.StatusFinished {
		t.Fatalf("expected forfeit to finish the battle, got %s", rec.Status)
	}
	if rec.WinnerID != rec.GuestID {
		t.Fatalf("expected the opponent to win the forfeit, got %q", rec.WinnerID)
	}
	if repo.resignedID != "host-1" {
		t.Fatalf("expected the stalled host recorded as resigned, got %q", repo.resignedID)
	}
}

func TestSubmitAction_ResetsMissedTurns(t *testing.T) {
	repo := newMockRepo()
	rec, err := CreateBattle(repo, testConfig(), CreateBattleParams{
		Name: "back", JoinCode: "JJJJ9999", HostID: "host-1", HostName: "Host", VsAI: true, Seed: 19,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec.MissedTurns = 2

	if _, _, err := SubmitAction(repo, rec.ID, "host-1", game.Action{Type: game.ActionEndTurn}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.MissedTurns != 0 {
		t.Fatalf("acting on your own turn should clear missed turns, got %d", rec.MissedTurns)
	}
}
