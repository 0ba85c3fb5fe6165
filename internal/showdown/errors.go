package showdown

import "errors"

var (
	ErrInvalidCard    = errors.New("invalid card")
	ErrDuplicateCard  = errors.New("duplicate card")
	ErrNotEnoughCards = errors.New("not enough cards")
	ErrMissingHand    = errors.New("missing hole cards")
	ErrHandInProgress = errors.New("hand is still in progress")
	ErrUncontested    = errors.New("pot has no live player")
)
