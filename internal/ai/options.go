package ai

import (
	"github.com/idl3o/tasern-3-sub001/internal/engine"
	"github.com/idl3o/tasern-3-sub001/internal/game"
)

type optionKind int

const (
	optDeploy optionKind = iota
	optAttackCard
	optAttackCastle
	optAbility
)

// option pairs a candidate action with the facts the scorer needs.
type option struct {
	kind   optionKind
	action game.Action
	score  float64

	card     *game.Card       // deploy
	attacker *game.BattleCard // attacks / abilities
	target   *game.BattleCard // card attacks, targeted abilities
	damage   int
	kills    bool
}

// enumerateOptions lists every legal deploy, attack and ability use. Options
// are built to the same legality rules ExecuteAction enforces, so any choice
// the scorer makes will be accepted by the engine.
func (c *Consciousness) enumerateOptions(s *game.BattleState, self *game.Player, enemyID string) []option {
	opts := make([]option, 0, 32)

	opts = append(opts, c.deployOptions(s, self)...)

	enemyCards := s.Cards(enemyID)
	for _, bc := range s.Cards(c.PlayerID) {
		if bc.HasAttacked {
			continue
		}
		reach := engine.AttackRange(bc.CombatType)
		for _, target := range enemyCards {
			if chebyshev(bc.Position, target.Position) > reach {
				continue
			}
			dmg := engine.PredictCardDamage(bc, target, s)
			opts = append(opts, option{
				kind: optAttackCard,
				action: game.Action{
					Type:         game.ActionAttackCard,
					PlayerID:     c.PlayerID,
					CardID:       bc.ID,
					TargetCardID: target.ID,
				},
				attacker: bc,
				target:   target,
				damage:   dmg,
				kills:    dmg >= target.HitPoints,
			})
		}
		if bc.Position.Row == s.FrontRow(c.PlayerID) {
			dmg := engine.PredictCastleDamage(bc, s)
			opts = append(opts, option{
				kind: optAttackCastle,
				action: game.Action{
					Type:           game.ActionAttackCastle,
					PlayerID:       c.PlayerID,
					CardID:         bc.ID,
					TargetPlayerID: enemyID,
				},
				attacker: bc,
				damage:   dmg,
				kills:    dmg >= s.Players[enemyID].CastleHP,
			})
		}
		opts = append(opts, c.abilityOptions(s, self, bc, enemyCards)...)
	}
	return opts
}

func (c *Consciousness) deployOptions(s *game.BattleState, self *game.Player) []option {
	opts := make([]option, 0, 8)
	half := s.Grid.Rows / 2
	rowStart, rowEnd := 0, half
	if !s.OwnsTopHalf(c.PlayerID) {
		rowStart, rowEnd = half, s.Grid.Rows
	}
	for i := range self.Hand {
		card := &self.Hand[i]
		if card.ManaCost > self.Mana {
			continue
		}
		for r := rowStart; r < rowEnd; r++ {
			for col := 0; col < s.Grid.Cols; col++ {
				pos := game.Position{Row: r, Col: col}
				if s.At(pos) != nil || s.IsBlocked(pos) {
					continue
				}
				p := pos
				opts = append(opts, option{
					kind: optDeploy,
					action: game.Action{
						Type:     game.ActionDeployCard,
						PlayerID: c.PlayerID,
						CardID:   card.ID,
						Position: &p,
					},
					card: card,
				})
			}
		}
	}
	return opts
}

func (c *Consciousness) abilityOptions(s *game.BattleState, self *game.Player, bc *game.BattleCard, enemyCards []*game.BattleCard) []option {
	opts := make([]option, 0, 2)
	reach := engine.AttackRange(bc.CombatType)
	for i := range bc.Abilities {
		ab := &bc.Abilities[i]
		if ab.CurrentCooldown > 0 || ab.ManaCost > self.Mana {
			continue
		}
		base := game.Action{
			Type:       game.ActionUseAbility,
			PlayerID:   c.PlayerID,
			CardID:     bc.ID,
			AbilityKey: ab.Key,
		}
		switch {
		case ab.Effect.Damage > 0:
			for _, target := range enemyCards {
				if chebyshev(bc.Position, target.Position) > reach {
					continue
				}
				a := base
				a.TargetCardID = target.ID
				opts = append(opts, option{
					kind:     optAbility,
					action:   a,
					attacker: bc,
					target:   target,
					damage:   ab.Effect.Damage,
					kills:    ab.Effect.Damage >= target.HitPoints,
				})
			}
		case ab.Effect.Heal > 0:
			target := mostWounded(s.Cards(c.PlayerID))
			if target == nil {
				continue
			}
			a := base
			a.TargetCardID = target.ID
			healed := ab.Effect.Heal
			if missing := target.MaxHitPoints - target.HitPoints; healed > missing {
				healed = missing
			}
			opts = append(opts, option{kind: optAbility, action: a, attacker: bc, target: target, damage: healed})
		default:
			opts = append(opts, option{kind: optAbility, action: base, attacker: bc})
		}
	}
	return opts
}

func mostWounded(cards []*game.BattleCard) *game.BattleCard {
	var out *game.BattleCard
	worst := 0
	for _, bc := range cards {
		if missing := bc.MaxHitPoints - bc.HitPoints; missing > worst {
			worst = missing
			out = bc
		}
	}
	return out
}

func chebyshev(a, b game.Position) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}
