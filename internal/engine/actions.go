package engine

import (
	"fmt"

	"github.com/idl3o/tasern-3-sub001/internal/game"
	"github.com/idl3o/tasern-3-sub001/internal/rng"
)

// ExecuteAction is the single action ingress. On success it returns a new
// state with exactly one battle log entry appended; on rejection it returns
// the input state unchanged together with an IllegalActionError.
func ExecuteAction(state *game.BattleState, action game.Action, src *rng.Source) (*game.BattleState, error) {
	if state.Phase == game.PhaseVictory {
		return state, illegal(CodeBattleOver, "battle already has a winner (%s)", state.WinnerID)
	}
	if action.PlayerID != state.ActivePlayer {
		return state, illegal(CodeNotYourTurn, "player %s is not the active player", action.PlayerID)
	}

	next := state.Clone()
	var result string
	var err error
	switch action.Type {
	case game.ActionDeployCard:
		result, err = applyDeploy(next, action)
	case game.ActionAttackCard:
		result, err = applyAttackCard(next, action)
	case game.ActionAttackCastle:
		result, err = applyAttackCastle(next, action)
	case game.ActionUseAbility:
		result, err = applyUseAbility(next, action)
	case game.ActionSurrender:
		result, err = applySurrender(next, action)
	case game.ActionEndTurn:
		endTurn(next, src)
		result = fmt.Sprintf("turn passes to %s", next.ActivePlayer)
	default:
		return state, illegal(CodeUnknownAction, "unknown action type %q", action.Type)
	}
	if err != nil {
		return state, err
	}

	next.BattleLog = append(next.BattleLog, game.LogEntry{
		Turn:     state.CurrentTurn,
		PlayerID: action.PlayerID,
		Action:   string(action.Type),
		Result:   result,
	})
	return next, nil
}

// EndTurn advances the battle to the other player. It is equivalent to
// executing an END_TURN action for the active player.
func EndTurn(state *game.BattleState, src *rng.Source) (*game.BattleState, error) {
	return ExecuteAction(state, game.Action{Type: game.ActionEndTurn, PlayerID: state.ActivePlayer}, src)
}

func applyDeploy(s *game.BattleState, a game.Action) (string, error) {
	player := s.Players[a.PlayerID]
	idx := -1
	for i := range player.Hand {
		if player.Hand[i].ID == a.CardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", illegal(CodeUnknownCard, "card %s is not in hand", a.CardID)
	}
	card := player.Hand[idx]
	if a.Position == nil || !s.Grid.Contains(*a.Position) {
		return "", illegal(CodeOutOfGrid, "deploy position is off the battlefield")
	}
	pos := *a.Position
	if !s.InOwnHalf(a.PlayerID, pos) {
		return "", illegal(CodeOutsideOwnHalf, "cell (%d,%d) is outside your half", pos.Row, pos.Col)
	}
	if s.IsBlocked(pos) {
		return "", illegal(CodeCellBlocked, "cell (%d,%d) is blocked", pos.Row, pos.Col)
	}
	if s.At(pos) != nil {
		return "", illegal(CodeCellOccupied, "cell (%d,%d) is occupied", pos.Row, pos.Col)
	}
	if player.Mana < card.ManaCost {
		return "", illegal(CodeInsufficientMana, "%s costs %d mana, %d available", card.Name, card.ManaCost, player.Mana)
	}

	player.Mana -= card.ManaCost
	player.Hand = append(player.Hand[:idx], player.Hand[idx+1:]...)
	s.Battlefield[pos.Row][pos.Col] = &game.BattleCard{
		Card:     card,
		Position: pos,
		OwnerID:  a.PlayerID,
	}
	return fmt.Sprintf("%s deployed at (%d,%d) for %d mana", card.Name, pos.Row, pos.Col, card.ManaCost), nil
}

func resolveAttacker(s *game.BattleState, a game.Action) (*game.BattleCard, error) {
	attacker := s.FindCard(a.CardID)
	if attacker == nil {
		return nil, illegal(CodeUnknownCard, "card %s is not on the battlefield", a.CardID)
	}
	if attacker.OwnerID != a.PlayerID {
		return nil, illegal(CodeNotOwner, "card %s does not belong to player %s", a.CardID, a.PlayerID)
	}
	if attacker.HasAttacked {
		return nil, illegal(CodeAlreadyAttacked, "%s has already attacked this turn", attacker.Name)
	}
	return attacker, nil
}

func applyAttackCard(s *game.BattleState, a game.Action) (string, error) {
	attacker, err := resolveAttacker(s, a)
	if err != nil {
		return "", err
	}
	target := s.FindCard(a.TargetCardID)
	if target == nil {
		return "", illegal(CodeInvalidTarget, "target card %s is not on the battlefield", a.TargetCardID)
	}
	if target.OwnerID == a.PlayerID {
		return "", illegal(CodeInvalidTarget, "cannot attack an allied card")
	}
	if !inRange(attacker, target.Position) {
		return "", illegal(CodeOutOfRange, "%s cannot reach (%d,%d)", attacker.Name, target.Position.Row, target.Position.Col)
	}

	dmg := PredictCardDamage(attacker, target, s)
	target.HitPoints -= dmg
	attacker.HasAttacked = true
	if target.HitPoints <= 0 {
		removeCard(s, target)
		return fmt.Sprintf("%s hits %s for %d, destroying it", attacker.Name, target.Name, dmg), nil
	}
	return fmt.Sprintf("%s hits %s for %d (%d HP left)", attacker.Name, target.Name, dmg, target.HitPoints), nil
}

func applyAttackCastle(s *game.BattleState, a game.Action) (string, error) {
	attacker, err := resolveAttacker(s, a)
	if err != nil {
		return "", err
	}
	targetID := a.TargetPlayerID
	if targetID == "" {
		targetID = s.Opponent(a.PlayerID)
	}
	if targetID != s.Opponent(a.PlayerID) {
		return "", illegal(CodeInvalidTarget, "cannot attack your own castle")
	}
	if !canReachCastle(attacker, s) {
		return "", illegal(CodeOutOfRange, "%s must hold the front row to strike the castle", attacker.Name)
	}

	dmg := PredictCastleDamage(attacker, s)
	defender := s.Players[targetID]
	defender.CastleHP -= dmg
	if defender.CastleHP < 0 {
		defender.CastleHP = 0
	}
	attacker.HasAttacked = true
	s.LastDamagedPlayer = targetID
	evaluateVictory(s)
	return fmt.Sprintf("%s strikes %s's castle for %d (%d HP left)", attacker.Name, defender.Name, dmg, defender.CastleHP), nil
}

func applyUseAbility(s *game.BattleState, a game.Action) (string, error) {
	actor := s.FindCard(a.CardID)
	if actor == nil {
		return "", illegal(CodeUnknownCard, "card %s is not on the battlefield", a.CardID)
	}
	if actor.OwnerID != a.PlayerID {
		return "", illegal(CodeNotOwner, "card %s does not belong to player %s", a.CardID, a.PlayerID)
	}
	var ability *game.Ability
	for i := range actor.Abilities {
		if actor.Abilities[i].Key == a.AbilityKey {
			ability = &actor.Abilities[i]
			break
		}
	}
	if ability == nil {
		return "", illegal(CodeUnknownAbility, "%s has no ability %q", actor.Name, a.AbilityKey)
	}
	if ability.CurrentCooldown > 0 {
		return "", illegal(CodeAbilityOnCooldown, "%s is on cooldown for %d more turns", ability.Name, ability.CurrentCooldown)
	}
	player := s.Players[a.PlayerID]
	if player.Mana < ability.ManaCost {
		return "", illegal(CodeInsufficientMana, "%s costs %d mana, %d available", ability.Name, ability.ManaCost, player.Mana)
	}

	result, err := applyAbilityEffect(s, actor, ability, a)
	if err != nil {
		return "", err
	}
	player.Mana -= ability.ManaCost
	ability.CurrentCooldown = ability.Cooldown
	return result, nil
}

func applyAbilityEffect(s *game.BattleState, actor *game.BattleCard, ab *game.Ability, a game.Action) (string, error) {
	eff := ab.Effect
	switch {
	case eff.Damage > 0:
		target := s.FindCard(a.TargetCardID)
		if target == nil {
			return "", illegal(CodeInvalidTarget, "%s needs an enemy target", ab.Name)
		}
		if target.OwnerID == actor.OwnerID {
			return "", illegal(CodeInvalidTarget, "%s cannot target an ally", ab.Name)
		}
		if !inRange(actor, target.Position) {
			return "", illegal(CodeOutOfRange, "%s cannot reach (%d,%d)", actor.Name, target.Position.Row, target.Position.Col)
		}
		target.HitPoints -= eff.Damage
		if target.HitPoints <= 0 {
			removeCard(s, target)
			return fmt.Sprintf("%s uses %s on %s for %d, destroying it", actor.Name, ab.Name, target.Name, eff.Damage), nil
		}
		return fmt.Sprintf("%s uses %s on %s for %d", actor.Name, ab.Name, target.Name, eff.Damage), nil
	case eff.Heal > 0:
		target := actor
		if a.TargetCardID != "" {
			target = s.FindCard(a.TargetCardID)
		}
		if target == nil || target.OwnerID != actor.OwnerID {
			return "", illegal(CodeInvalidTarget, "%s needs an allied target", ab.Name)
		}
		target.HitPoints += eff.Heal
		if target.HitPoints > target.MaxHitPoints {
			target.HitPoints = target.MaxHitPoints
		}
		return fmt.Sprintf("%s uses %s, healing %s to %d HP", actor.Name, ab.Name, target.Name, target.HitPoints), nil
	default:
		applyBuffs(actor, eff)
		return fmt.Sprintf("%s uses %s", actor.Name, ab.Name), nil
	}
}

func applyBuffs(actor *game.BattleCard, eff game.AbilityEffect) {
	dur := eff.BuffDuration
	if dur <= 0 {
		dur = 1
	}
	if eff.AttackBuffPercent != 0 {
		actor.StatusEffects = append(actor.StatusEffects, game.StatusEffect{Type: game.StatusAttackBuff, Magnitude: eff.AttackBuffPercent, Duration: dur})
	}
	if eff.DefenseBuffPercent != 0 {
		actor.StatusEffects = append(actor.StatusEffects, game.StatusEffect{Type: game.StatusDefenseBuff, Magnitude: eff.DefenseBuffPercent, Duration: dur})
	}
	if eff.SpeedBuffPercent != 0 {
		actor.StatusEffects = append(actor.StatusEffects, game.StatusEffect{Type: game.StatusSpeedBuff, Magnitude: eff.SpeedBuffPercent, Duration: dur})
	}
}

func applySurrender(s *game.BattleState, a game.Action) (string, error) {
	winner := s.Opponent(a.PlayerID)
	s.WinnerID = winner
	s.Phase = game.PhaseVictory
	return fmt.Sprintf("%s surrenders; %s wins", s.Players[a.PlayerID].Name, s.Players[winner].Name), nil
}

// removeCard takes a defeated card off the battlefield and moves its card
// face to the owner's discard pile so total card count stays conserved.
func removeCard(s *game.BattleState, bc *game.BattleCard) {
	s.Battlefield[bc.Position.Row][bc.Position.Col] = nil
	s.DiscardPiles[bc.OwnerID] = append(s.DiscardPiles[bc.OwnerID], bc.Card)
}
