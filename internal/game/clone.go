package game

// Clone returns a deep copy of the state. Engine transitions operate on a
// clone so a failed validation leaves the caller's snapshot untouched.
func (s *BattleState) Clone() *BattleState {
	out := &BattleState{
		Grid:              s.Grid,
		Rules:             s.Rules,
		CurrentTurn:       s.CurrentTurn,
		ActivePlayer:      s.ActivePlayer,
		Phase:             s.Phase,
		WinnerID:          s.WinnerID,
		LastDamagedPlayer: s.LastDamagedPlayer,
	}
	out.TurnOrder = append([]string(nil), s.TurnOrder...)
	out.BlockedTiles = append([]Position(nil), s.BlockedTiles...)
	out.BattleLog = append([]LogEntry(nil), s.BattleLog...)

	out.Battlefield = make([][]*BattleCard, len(s.Battlefield))
	for r := range s.Battlefield {
		out.Battlefield[r] = make([]*BattleCard, len(s.Battlefield[r]))
		for c := range s.Battlefield[r] {
			if s.Battlefield[r][c] != nil {
				out.Battlefield[r][c] = s.Battlefield[r][c].clone()
			}
		}
	}

	out.Players = make(map[string]*Player, len(s.Players))
	for id, p := range s.Players {
		out.Players[id] = p.clone()
	}

	out.DiscardPiles = make(map[string][]Card, len(s.DiscardPiles))
	for id, pile := range s.DiscardPiles {
		out.DiscardPiles[id] = cloneCards(pile)
	}

	if s.Weather != nil {
		w := *s.Weather
		out.Weather = &w
	}
	return out
}

func (p *Player) clone() *Player {
	out := *p
	out.Hand = cloneCards(p.Hand)
	out.Deck = cloneCards(p.Deck)
	if p.Personality != nil {
		pers := *p.Personality
		out.Personality = &pers
	}
	return &out
}

func (bc *BattleCard) clone() *BattleCard {
	out := *bc
	out.Card = cloneCard(bc.Card)
	out.StatusEffects = append([]StatusEffect(nil), bc.StatusEffects...)
	return &out
}

func cloneCard(c Card) Card {
	out := c
	out.Abilities = append([]Ability(nil), c.Abilities...)
	return out
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i := range cards {
		out[i] = cloneCard(cards[i])
	}
	return out
}
