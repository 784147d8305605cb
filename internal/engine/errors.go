package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidPlayerCount is returned by InitializeBattle when the battle is
// not set up with exactly two distinct players.
var ErrInvalidPlayerCount = errors.New("exactly two distinct players are required")

// ErrInvalidConfig is returned by InitializeBattle when the battlefield
// rules are unusable (rows must be a positive even number, cols positive).
var ErrInvalidConfig = errors.New("invalid battle configuration")

// Rejection codes carried by IllegalActionError.
const (
	CodeBattleOver        = "battle_over"
	CodeNotYourTurn       = "not_your_turn"
	CodeUnknownAction     = "unknown_action"
	CodeUnknownCard       = "unknown_card"
	CodeNotOwner          = "not_owner"
	CodeCellOccupied      = "cell_occupied"
	CodeCellBlocked       = "cell_blocked"
	CodeOutOfGrid         = "out_of_grid"
	CodeOutsideOwnHalf    = "outside_own_half"
	CodeInsufficientMana  = "insufficient_mana"
	CodeAlreadyAttacked   = "already_attacked"
	CodeOutOfRange        = "out_of_range"
	CodeInvalidTarget     = "invalid_target"
	CodeAbilityOnCooldown = "ability_on_cooldown"
	CodeUnknownAbility    = "unknown_ability"
)

// IllegalActionError is the recoverable rejection returned when an action
// violates a game rule. The input state is always left unchanged.
type IllegalActionError struct {
	Code   string
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action (%s): %s", e.Code, e.Reason)
}

func illegal(code, format string, args ...interface{}) error {
	return &IllegalActionError{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// IsIllegalAction reports whether err is a rule-violation rejection, as
// opposed to a host-level failure.
func IsIllegalAction(err error) bool {
	var ia *IllegalActionError
	return errors.As(err, &ia)
}
