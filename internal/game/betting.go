package game

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Street represents the betting round
type Street int

const (
	Ante Street = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	if s < Ante || s > Showdown {
		return fmt.Sprintf("street(%d)", int(s))
	}
	return [...]string{"ante", "preflop", "flop", "turn", "river", "showdown"}[s]
}

// Next returns the following street. Showdown is terminal.
func (s Street) Next() Street {
	if s >= Showdown {
		return Showdown
	}
	return s + 1
}

// Prev returns the preceding street. Ante is the first street.
func (s Street) Prev() Street {
	if s <= Ante {
		return Ante
	}
	return s - 1
}

// ActionType is the kind of a recorded action
type ActionType int

const (
	PostAnte ActionType = iota
	PostSmallBlind
	PostBigBlind
	Straddle
	Bet
	Raise
	Call
	Check
	Fold
)

// actionLabels are the persisted names of each action type.
var actionLabels = [...]string{
	"post ante",
	"post SB",
	"post BB",
	"straddle",
	"bet",
	"raise",
	"call",
	"check",
	"fold",
}

var actionAliases = map[string]ActionType{
	"ante":        PostAnte,
	"sb":          PostSmallBlind,
	"small blind": PostSmallBlind,
	"bb":          PostBigBlind,
	"big blind":   PostBigBlind,
	"bets":        Bet,
	"raises":      Raise,
	"calls":       Call,
	"checks":      Check,
	"folds":       Fold,
	"folded":      Fold,
}

func (t ActionType) String() string {
	if t < PostAnte || t > Fold {
		return fmt.Sprintf("action(%d)", int(t))
	}
	return actionLabels[t]
}

// IsForced reports whether the action is posted without a legality check.
func (t ActionType) IsForced() bool {
	return t == PostAnte || t.IsBlind()
}

// IsBlind reports whether the action is a blind or a straddle.
func (t ActionType) IsBlind() bool {
	return t == PostSmallBlind || t == PostBigBlind || t == Straddle
}

// ParseActionType parses a persisted action label or one of its aliases.
func ParseActionType(s string) (ActionType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, label := range actionLabels {
		if strings.ToLower(label) == key {
			return ActionType(i), nil
		}
	}
	if t, ok := actionAliases[key]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: unknown action type %q", ErrInvalidAction, s)
}

// ParseAmount parses a non-negative chip amount such as "2.5".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, s)
	}
	return d, nil
}
