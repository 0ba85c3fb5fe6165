package game

import "errors"

var (
	// ErrInvalidAction is returned when the requested action type is not legal now.
	ErrInvalidAction = errors.New("invalid action")
	// ErrInvalidAmount is returned when an amount is below a minimum or above the stack.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrDeadChips signals folded chips left over after the side pot partition.
	ErrDeadChips = errors.New("dead chips remaining")

	ErrNoActions       = errors.New("no actions to remove")
	ErrBlindsPosted    = errors.New("blinds and antes already posted")
	ErrPlayerCount     = errors.New("player count must be between 2 and 10")
	ErrInvalidConfig   = errors.New("invalid hand configuration")
	ErrInvalidDocument = errors.New("invalid hand document")
)
