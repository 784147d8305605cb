package service

import (
	"github.com/google/uuid"

	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
)

// BuildDeck draws size cards from the catalog (with repetition once the
// catalog is exhausted) and stamps each copy with its own instance id so two
// copies of the same card are distinguishable on the battlefield.
func BuildDeck(catalog []game.Card, size int, src *rng.Source) []game.Card {
	if len(catalog) == 0 || size <= 0 {
		return nil
	}
	order := make([]int, len(catalog))
	for i := range order {
		order[i] = i
	}
	src.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	deck := make([]game.Card, 0, size)
	for len(deck) < size {
		for _, idx := range order {
			if len(deck) == size {
				break
			}
			c := catalog[idx]
			c.ID = uuid.NewString()
			c.Abilities = append([]game.Ability(nil), c.Abilities...)
			deck = append(deck, c)
		}
	}
	return deck
}
