package engine

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
)

func testDeck(prefix string, n int) []game.Card {
	deck := make([]game.Card, 0, n)
	for i := 0; i < n; i++ {
		deck = append(deck, game.Card{
			ID:           fmt.Sprintf("%s-%d", prefix, i),
			Name:         fmt.Sprintf("Soldier %d", i),
			Attack:       5,
			Defense:      3,
			HitPoints:    10,
			MaxHitPoints: 10,
			Speed:        4,
			ManaCost:     2,
			Rarity:       game.RarityCommon,
			CombatType:   game.CombatMelee,
		})
	}
	return deck
}

func TestInitializeBattle_DealsHandsAndCastles(t *testing.T) {
	src := rng.New(1)
	a := game.Player{ID: "p1", Name: "P1", Type: game.PlayerHuman, Deck: testDeck("a", 15)}
	b := game.Player{ID: "p2", Name: "P2", Type: game.PlayerHuman, Deck: testDeck("b", 15)}

	s, err := InitializeBattle(a, b, DefaultConfig(), src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Phase != game.PhaseInProgress {
		t.Fatalf("expected in_progress phase, got %s", s.Phase)
	}
	if s.ActivePlayer != "p1" || s.CurrentTurn != 1 {
		t.Fatalf("expected p1 active on turn 1, got %s on turn %d", s.ActivePlayer, s.CurrentTurn)
	}
	for _, id := range []string{"p1", "p2"} {
		p := s.Players[id]
		if len(p.Hand) != 5 || len(p.Deck) != 10 {
			t.Fatalf("player %s: expected 5 hand / 10 deck, got %d/%d", id, len(p.Hand), len(p.Deck))
		}
		if p.CastleHP != 50 || p.MaxCastleHP != 50 {
			t.Fatalf("player %s: expected castle 50/50, got %d/%d", id, p.CastleHP, p.MaxCastleHP)
		}
		if p.Mana != 3 || p.MaxMana != 3 {
			t.Fatalf("player %s: expected mana 3/3, got %d/%d", id, p.Mana, p.MaxMana)
		}
	}
	if len(s.BattleLog) != 1 || s.BattleLog[0].Action != "battle_start" {
		t.Fatalf("expected a single battle_start log entry, got %+v", s.BattleLog)
	}
}

func TestInitializeBattle_RejectsBadSetups(t *testing.T) {
	src := rng.New(1)
	a := game.Player{ID: "p1", Deck: testDeck("a", 5)}
	if _, err := InitializeBattle(a, a, DefaultConfig(), src); !errors.Is(err, ErrInvalidPlayerCount) {
		t.Fatalf("expected ErrInvalidPlayerCount for duplicate player ids, got %v", err)
	}
	b := game.Player{ID: "p2", Deck: testDeck("b", 5)}
	cfg := DefaultConfig()
	cfg.Grid.Rows = 3
	if _, err := InitializeBattle(a, b, cfg, src); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for odd row count, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.Grid.Cols = 0
	if _, err := InitializeBattle(a, b, cfg, src); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero columns, got %v", err)
	}
}

// testState builds a bare 4x5 in-progress battle with empty hands. p1 owns
// the top half (rows 0-1, front row 1), p2 the bottom (rows 2-3, front row
// 2).
func testState() *game.BattleState {
	s := &game.BattleState{
		Grid:  game.GridConfig{Rows: 4, Cols: 5},
		Rules: game.Rules{StartingHandSize: 5, StartingMana: 3, ManaCap: 10},
		Players: map[string]*game.Player{
			"p1": {ID: "p1", Name: "P1", CastleHP: 50, MaxCastleHP: 50, Mana: 5, MaxMana: 5, LPBonus: 1.0},
			"p2": {ID: "p2", Name: "P2", CastleHP: 50, MaxCastleHP: 50, Mana: 5, MaxMana: 5, LPBonus: 1.0},
		},
		TurnOrder:    []string{"p1", "p2"},
		CurrentTurn:  1,
		ActivePlayer: "p1",
		Phase:        game.PhaseInProgress,
		DiscardPiles: map[string][]game.Card{"p1": {}, "p2": {}},
	}
	s.Battlefield = make([][]*game.BattleCard, s.Grid.Rows)
	for r := range s.Battlefield {
		s.Battlefield[r] = make([]*game.BattleCard, s.Grid.Cols)
	}
	return s
}

func place(s *game.BattleState, owner, id string, pos game.Position, atk, def, hp int, ct game.CombatType) *game.BattleCard {
	bc := &game.BattleCard{
		Card: game.Card{
			ID: id, Name: id, Attack: atk, Defense: def,
			HitPoints: hp, MaxHitPoints: hp, Speed: 4, ManaCost: 2, CombatType: ct,
		},
		Position: pos,
		OwnerID:  owner,
	}
	s.Battlefield[pos.Row][pos.Col] = bc
	return bc
}

func TestExecuteAction_DeployCard(t *testing.T) {
	s := testState()
	s.Players["p1"].Hand = testDeck("h", 2)
	src := rng.New(1)

	next, err := ExecuteAction(s, game.Action{
		Type:     game.ActionDeployCard,
		PlayerID: "p1",
		CardID:   "h-0",
		Position: &game.Position{Row: 1, Col: 2},
	}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bc := next.At(game.Position{Row: 1, Col: 2})
	if bc == nil || bc.ID != "h-0" || bc.OwnerID != "p1" {
		t.Fatalf("expected h-0 deployed at (1,2), got %+v", bc)
	}
	if got := next.Players["p1"].Mana; got != 3 {
		t.Fatalf("expected 3 mana left after a 2-cost deploy, got %d", got)
	}
	if len(next.Players["p1"].Hand) != 1 {
		t.Fatalf("expected hand to shrink to 1, got %d", len(next.Players["p1"].Hand))
	}
	// Original snapshot is untouched.
	if s.At(game.Position{Row: 1, Col: 2}) != nil {
		t.Fatalf("input state was mutated by deploy")
	}
}

func TestExecuteAction_DeployRejections(t *testing.T) {
	s := testState()
	s.Players["p1"].Hand = testDeck("h", 2)
	s.Players["p1"].Mana = 1
	s.BlockedTiles = []game.Position{{Row: 0, Col: 0}}
	place(s, "p1", "blocker", game.Position{Row: 1, Col: 1}, 5, 3, 10, game.CombatMelee)
	src := rng.New(1)

	cases := []struct {
		name string
		a    game.Action
		code string
	}{
		{"enemy half", game.Action{Type: game.ActionDeployCard, PlayerID: "p1", CardID: "h-0", Position: &game.Position{Row: 2, Col: 0}}, CodeOutsideOwnHalf},
		{"occupied", game.Action{Type: game.ActionDeployCard, PlayerID: "p1", CardID: "h-0", Position: &game.Position{Row: 1, Col: 1}}, CodeCellOccupied},
		{"blocked", game.Action{Type: game.ActionDeployCard, PlayerID: "p1", CardID: "h-0", Position: &game.Position{Row: 0, Col: 0}}, CodeCellBlocked},
		{"off grid", game.Action{Type: game.ActionDeployCard, PlayerID: "p1", CardID: "h-0", Position: &game.Position{Row: -1, Col: 0}}, CodeOutOfGrid},
		{"unknown card", game.Action{Type: game.ActionDeployCard, PlayerID: "p1", CardID: "nope", Position: &game.Position{Row: 0, Col: 2}}, CodeUnknownCard},
	}
	for _, tc := range cases {
		before := s.Clone()
		next, err := ExecuteAction(s, tc.a, src)
		if err == nil {
			t.Fatalf("%s: expected rejection", tc.name)
		}
		ia, ok := err.(*IllegalActionError)
		if !ok || ia.Code != tc.code {
			t.Fatalf("%s: expected code %s, got %v", tc.name, tc.code, err)
		}
		if !reflect.DeepEqual(next, s) || !reflect.DeepEqual(s, before) {
			t.Fatalf("%s: state changed on rejected action", tc.name)
		}
	}

	// Mana check fires once position validation passes.
	before := s.Clone()
	_, err := ExecuteAction(s, game.Action{Type: game.ActionDeployCard, PlayerID: "p1", CardID: "h-0", Position: &game.Position{Row: 0, Col: 2}}, src)
	ia, ok := err.(*IllegalActionError)
	if !ok || ia.Code != CodeInsufficientMana {
		t.Fatalf("expected insufficient mana, got %v", err)
	}
	if !reflect.DeepEqual(s, before) {
		t.Fatalf("state changed on rejected deploy")
	}
}

func TestExecuteAction_AttackCard(t *testing.T) {
	s := testState()
	place(s, "p1", "atk", game.Position{Row: 1, Col: 2}, 10, 3, 10, game.CombatMelee)
	place(s, "p2", "def", game.Position{Row: 2, Col: 2}, 2, 3, 20, game.CombatMelee)
	src := rng.New(1)

	next, err := ExecuteAction(s, game.Action{
		Type: game.ActionAttackCard, PlayerID: "p1", CardID: "atk", TargetCardID: "def",
	}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// No weather, no formation bonus on either side: 10 - 3 = 7 damage.
	target := next.FindCard("def")
	if target == nil || target.HitPoints != 13 {
		t.Fatalf("expected defender at 13 HP, got %+v", target)
	}
	if !next.FindCard("atk").HasAttacked {
		t.Fatalf("attacker should be marked as having attacked")
	}

	// Second attack with the same card is rejected.
	_, err = ExecuteAction(next, game.Action{
		Type: game.ActionAttackCard, PlayerID: "p1", CardID: "atk", TargetCardID: "def",
	}, src)
	ia, ok := err.(*IllegalActionError)
	if !ok || ia.Code != CodeAlreadyAttacked {
		t.Fatalf("expected already_attacked, got %v", err)
	}
}

func TestExecuteAction_AttackCardRange(t *testing.T) {
	s := testState()
	place(s, "p1", "melee", game.Position{Row: 1, Col: 0}, 10, 3, 10, game.CombatMelee)
	place(s, "p1", "ranged", game.Position{Row: 0, Col: 4}, 6, 2, 8, game.CombatRanged)
	place(s, "p2", "far", game.Position{Row: 3, Col: 4}, 2, 1, 10, game.CombatMelee)
	src := rng.New(1)

	_, err := ExecuteAction(s, game.Action{
		Type: game.ActionAttackCard, PlayerID: "p1", CardID: "melee", TargetCardID: "far",
	}, src)
	ia, ok := err.(*IllegalActionError)
	if !ok || ia.Code != CodeOutOfRange {
		t.Fatalf("melee across the board should be out of range, got %v", err)
	}

	// Ranged reach is 3 cells (Chebyshev): (0,4) -> (3,4) connects.
	if _, err := ExecuteAction(s, game.Action{
		Type: game.ActionAttackCard, PlayerID: "p1", CardID: "ranged", TargetCardID: "far",
	}, src); err != nil {
		t.Fatalf("ranged attack should reach 3 rows: %v", err)
	}
}

func TestExecuteAction_DestroyedCardGoesToDiscard(t *testing.T) {
	s := testState()
	place(s, "p1", "atk", game.Position{Row: 1, Col: 2}, 10, 3, 10, game.CombatMelee)
	place(s, "p2", "weak", game.Position{Row: 2, Col: 2}, 2, 1, 5, game.CombatMelee)
	src := rng.New(1)

	next, err := ExecuteAction(s, game.Action{
		Type: game.ActionAttackCard, PlayerID: "p1", CardID: "atk", TargetCardID: "weak",
	}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.FindCard("weak") != nil {
		t.Fatalf("destroyed card should leave the battlefield")
	}
	if len(next.DiscardPiles["p2"]) != 1 || next.DiscardPiles["p2"][0].ID != "weak" {
		t.Fatalf("destroyed card should land in the owner's discard pile, got %+v", next.DiscardPiles["p2"])
	}
}

func TestExecuteAction_AttackCastle(t *testing.T) {
	s := testState()
	place(s, "p1", "front", game.Position{Row: 1, Col: 2}, 10, 3, 10, game.CombatMelee)
	place(s, "p1", "back", game.Position{Row: 0, Col: 0}, 10, 3, 10, game.CombatMelee)
	src := rng.New(1)

	next, err := ExecuteAction(s, game.Action{
		Type: game.ActionAttackCastle, PlayerID: "p1", CardID: "front",
	}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := next.Players["p2"].CastleHP; got != 40 {
		t.Fatalf("expected castle at 40, got %d", got)
	}
	if next.LastDamagedPlayer != "p2" {
		t.Fatalf("expected last damaged player p2, got %q", next.LastDamagedPlayer)
	}

	// A card outside its front row cannot strike the castle.
	_, err = ExecuteAction(s, game.Action{
		Type: game.ActionAttackCastle, PlayerID: "p1", CardID: "back",
	}, src)
	ia, ok := err.(*IllegalActionError)
	if !ok || ia.Code != CodeOutOfRange {
		t.Fatalf("expected out_of_range for back-row castle strike, got %v", err)
	}
}

func TestExecuteAction_CastleVictory(t *testing.T) {
	s := testState()
	s.Players["p2"].CastleHP = 8
	place(s, "p1", "front", game.Position{Row: 1, Col: 2}, 10, 3, 10, game.CombatMelee)
	src := rng.New(1)

	next, err := ExecuteAction(s, game.Action{
		Type: game.ActionAttackCastle, PlayerID: "p1", CardID: "front",
	}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Phase != game.PhaseVictory || next.WinnerID != "p1" {
		t.Fatalf("expected p1 victory, got phase=%s winner=%q", next.Phase, next.WinnerID)
	}
	if got := next.Players["p2"].CastleHP; got != 0 {
		t.Fatalf("castle HP should clamp at 0, got %d", got)
	}

	// The battle is terminal: every further action is rejected.
	_, err = ExecuteAction(next, game.Action{Type: game.ActionEndTurn, PlayerID: next.ActivePlayer}, src)
	ia, ok := err.(*IllegalActionError)
	if !ok || ia.Code != CodeBattleOver {
		t.Fatalf("expected battle_over, got %v", err)
	}
}

func TestExecuteAction_EndTurnCycle(t *testing.T) {
	s := testState()
	s.Players["p2"].Deck = testDeck("d2", 3)
	s.Players["p1"].Deck = testDeck("d1", 3)
	src := rng.New(1)

	half, err := ExecuteAction(s, game.Action{Type: game.ActionEndTurn, PlayerID: "p1"}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if half.ActivePlayer != "p2" || half.CurrentTurn != 1 {
		t.Fatalf("after p1 passes: expected p2 active on turn 1, got %s on turn %d", half.ActivePlayer, half.CurrentTurn)
	}
	if got := half.Players["p2"].MaxMana; got != 6 {
		t.Fatalf("p2 max mana should grow to 6, got %d", got)
	}
	if got := len(half.Players["p2"].Hand); got != 1 {
		t.Fatalf("p2 should draw a card, got hand size %d", got)
	}

	full, err := ExecuteAction(half, game.Action{Type: game.ActionEndTurn, PlayerID: "p2"}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if full.ActivePlayer != "p1" || full.CurrentTurn != 2 {
		t.Fatalf("after the full cycle: expected p1 active on turn 2, got %s on turn %d", full.ActivePlayer, full.CurrentTurn)
	}
}

func TestExecuteAction_EndTurnRefreshesCards(t *testing.T) {
	s := testState()
	bc := place(s, "p2", "guard", game.Position{Row: 2, Col: 1}, 4, 4, 10, game.CombatMelee)
	bc.HasAttacked = true
	bc.Abilities = []game.Ability{{Key: "war_cry", Name: "War Cry", Cooldown: 3, CurrentCooldown: 2}}
	bc.StatusEffects = []game.StatusEffect{
		{Type: game.StatusAttackBuff, Magnitude: 50, Duration: 1},
		{Type: game.StatusDefenseBuff, Magnitude: 20, Duration: 2},
	}
	src := rng.New(1)

	next, err := ExecuteAction(s, game.Action{Type: game.ActionEndTurn, PlayerID: "p1"}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := next.FindCard("guard")
	if got.HasAttacked {
		t.Fatalf("attack flag should reset when the owner's turn starts")
	}
	if got.Abilities[0].CurrentCooldown != 1 {
		t.Fatalf("cooldown should tick to 1, got %d", got.Abilities[0].CurrentCooldown)
	}
	if len(got.StatusEffects) != 1 || got.StatusEffects[0].Type != game.StatusDefenseBuff {
		t.Fatalf("expired status effect should drop, got %+v", got.StatusEffects)
	}
}

func TestExecuteAction_NotYourTurn(t *testing.T) {
	s := testState()
	src := rng.New(1)
	_, err := ExecuteAction(s, game.Action{Type: game.ActionEndTurn, PlayerID: "p2"}, src)
	ia, ok := err.(*IllegalActionError)
	if !ok || ia.Code != CodeNotYourTurn {
		t.Fatalf("expected not_your_turn, got %v", err)
	}
}

func TestExecuteAction_Surrender(t *testing.T) {
	s := testState()
	src := rng.New(1)
	next, err := ExecuteAction(s, game.Action{Type: game.ActionSurrender, PlayerID: "p1"}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.Phase != game.PhaseVictory || next.WinnerID != "p2" {
		t.Fatalf("expected p2 to win by surrender, got phase=%s winner=%q", next.Phase, next.WinnerID)
	}
}

func TestExecuteAction_UseAbility(t *testing.T) {
	s := testState()
	actor := place(s, "p1", "mage", game.Position{Row: 1, Col: 2}, 4, 2, 8, game.CombatArcane)
	actor.Abilities = []game.Ability{{
		Key: "fire_bolt", Name: "Fire Bolt", ManaCost: 3, Cooldown: 2,
		Effect: game.AbilityEffect{Damage: 6},
	}}
	place(s, "p2", "victim", game.Position{Row: 2, Col: 2}, 2, 1, 10, game.CombatMelee)
	src := rng.New(1)

	next, err := ExecuteAction(s, game.Action{
		Type: game.ActionUseAbility, PlayerID: "p1", CardID: "mage",
		AbilityKey: "fire_bolt", TargetCardID: "victim",
	}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := next.FindCard("victim").HitPoints; got != 4 {
		t.Fatalf("expected victim at 4 HP, got %d", got)
	}
	if got := next.Players["p1"].Mana; got != 2 {
		t.Fatalf("expected 2 mana left, got %d", got)
	}
	mage := next.FindCard("mage")
	if mage.Abilities[0].CurrentCooldown != 2 {
		t.Fatalf("expected cooldown 2, got %d", mage.Abilities[0].CurrentCooldown)
	}

	// On cooldown now.
	_, err = ExecuteAction(next, game.Action{
		Type: game.ActionUseAbility, PlayerID: "p1", CardID: "mage",
		AbilityKey: "fire_bolt", TargetCardID: "victim",
	}, src)
	ia, ok := err.(*IllegalActionError)
	if !ok || ia.Code != CodeAbilityOnCooldown {
		t.Fatalf("expected ability_on_cooldown, got %v", err)
	}
}

func TestExecuteAction_HealAbilityCapsAtMax(t *testing.T) {
	s := testState()
	healer := place(s, "p1", "cleric", game.Position{Row: 0, Col: 1}, 2, 2, 8, game.CombatArcane)
	healer.Abilities = []game.Ability{{
		Key: "mend", Name: "Mend", ManaCost: 2,
		Effect: game.AbilityEffect{Heal: 10},
	}}
	wounded := place(s, "p1", "tank", game.Position{Row: 1, Col: 1}, 3, 5, 20, game.CombatMelee)
	wounded.HitPoints = 14
	src := rng.New(1)

	next, err := ExecuteAction(s, game.Action{
		Type: game.ActionUseAbility, PlayerID: "p1", CardID: "cleric",
		AbilityKey: "mend", TargetCardID: "tank",
	}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := next.FindCard("tank").HitPoints; got != 20 {
		t.Fatalf("heal should cap at max HP 20, got %d", got)
	}
}

func TestExecuteAction_BuffAbilityAddsStatus(t *testing.T) {
	s := testState()
	actor := place(s, "p1", "captain", game.Position{Row: 1, Col: 0}, 5, 3, 12, game.CombatMelee)
	actor.Abilities = []game.Ability{{
		Key: "rally", Name: "Rally", ManaCost: 2,
		Effect: game.AbilityEffect{AttackBuffPercent: 50, BuffDuration: 2},
	}}
	src := rng.New(1)

	next, err := ExecuteAction(s, game.Action{
		Type: game.ActionUseAbility, PlayerID: "p1", CardID: "captain", AbilityKey: "rally",
	}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	buffed := next.FindCard("captain")
	if len(buffed.StatusEffects) != 1 || buffed.StatusEffects[0].Magnitude != 50 {
		t.Fatalf("expected one +50%% attack status, got %+v", buffed.StatusEffects)
	}
	// Buffed attack flows into damage: (5 * 1.5) - 0 castle defense = 8.
	if got := PredictCastleDamage(buffed, next); got != 8 {
		t.Fatalf("expected buffed castle damage 8, got %d", got)
	}
}

func TestCheckVictoryConditions_MutualDestruction(t *testing.T) {
	s := testState()
	s.Players["p1"].CastleHP = 0
	s.Players["p2"].CastleHP = 0
	s.LastDamagedPlayer = "p2"
	winner, over := CheckVictoryConditions(s)
	if !over || winner != "p1" {
		t.Fatalf("the side striking the final blow should win, got %q", winner)
	}
}

func TestCheckVictoryConditions_NoWinnerYet(t *testing.T) {
	s := testState()
	if winner, over := CheckVictoryConditions(s); over {
		t.Fatalf("no castle fell, expected no winner, got %q", winner)
	}
}

func TestExecuteAction_AppendsOneLogEntry(t *testing.T) {
	s := testState()
	src := rng.New(1)
	next, err := ExecuteAction(s, game.Action{Type: game.ActionEndTurn, PlayerID: "p1"}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next.BattleLog) != len(s.BattleLog)+1 {
		t.Fatalf("expected exactly one new log entry, got %d -> %d", len(s.BattleLog), len(next.BattleLog))
	}
}
