// Package strategy defines the pluggable action-selection capability that
// distinguishes human seats (which suspend until the UI supplies an action)
// from AI seats (which decide synchronously).
package strategy

import (
	"context"

	"github.com/idl3o/tasern-3-sub001/internal/ai"
	"github.com/idl3o/tasern-3-sub001/internal/game"
)

// Strategy selects the next action for a player given the current snapshot.
type Strategy interface {
	// SelectAction blocks until an action is available or ctx is done.
	SelectAction(ctx context.Context, state *game.BattleState) (game.Action, error)
	// AvailableCards returns the hand cards the player can afford right now.
	AvailableCards(state *game.BattleState) []game.Card
}

// Human is the suspending variant: SelectAction parks on a channel until an
// external event (UI, API request) submits an action. This is the single
// suspension point in the battle core; a host implements turn timeouts by
// cancelling ctx and substituting END_TURN itself.
type Human struct {
	playerID string
	pending  chan game.Action
}

func NewHuman(playerID string) *Human {
	return &Human{playerID: playerID, pending: make(chan game.Action, 1)}
}

// Submit hands an externally chosen action to a waiting SelectAction call.
// It never blocks; an action already queued is replaced.
func (h *Human) Submit(a game.Action) {
	select {
	case <-h.pending:
	default:
	}
	h.pending <- a
}

func (h *Human) SelectAction(ctx context.Context, state *game.BattleState) (game.Action, error) {
	select {
	case a := <-h.pending:
		a.PlayerID = h.playerID
		return a, nil
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}
}

func (h *Human) AvailableCards(state *game.BattleState) []game.Card {
	return affordableHand(state.Players[h.playerID])
}

// AI is the computational variant: it never suspends.
type AI struct {
	Mind *ai.Consciousness
}

func NewAI(mind *ai.Consciousness) *AI { return &AI{Mind: mind} }

func (s *AI) SelectAction(ctx context.Context, state *game.BattleState) (game.Action, error) {
	return s.Mind.SelectAction(state), nil
}

func (s *AI) AvailableCards(state *game.BattleState) []game.Card {
	return s.Mind.AvailableCards(state)
}

func affordableHand(p *game.Player) []game.Card {
	if p == nil {
		return nil
	}
	out := make([]game.Card, 0, len(p.Hand))
	for _, card := range p.Hand {
		if card.ManaCost <= p.Mana {
			out = append(out, card)
		}
	}
	return out
}

// ForPlayer builds the strategy variant matching the player's type.
func ForPlayer(p *game.Player, mind *ai.Consciousness) Strategy {
	if p.Type == game.PlayerAI && mind != nil {
		return NewAI(mind)
	}
	return NewHuman(p.ID)
}
