package main

import (
	"fmt"
	"strings"

	"github.com/lox/hhcreator/internal/game"
	"github.com/shopspring/decimal"
)

// step is one scripted action, such as "raise 3" or "fold".
type step struct {
	Type   game.ActionType
	Amount decimal.Decimal
}

func (s step) String() string {
	if s.Amount.IsZero() {
		return s.Type.String()
	}
	return s.Type.String() + " " + s.Amount.String()
}

// parseScript reads actions from command line words. Words may hold several
// tokens ("bet 2,call"). An amount follows the action it belongs to and is
// required for bets and raises.
func parseScript(words []string) ([]step, error) {
	var tokens []string
	for _, w := range words {
		tokens = append(tokens, strings.FieldsFunc(w, func(r rune) bool {
			return r == ' ' || r == ',' || r == '\t'
		})...)
	}

	var steps []step
	for i := 0; i < len(tokens); i++ {
		t, err := game.ParseActionType(tokens[i])
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i+1, err)
		}
		if t.IsForced() {
			return nil, fmt.Errorf("token %d: %w: %s is posted automatically", i+1, game.ErrInvalidAction, t)
		}
		s := step{Type: t}
		if i+1 < len(tokens) {
			if amount, err := game.ParseAmount(tokens[i+1]); err == nil {
				s.Amount = amount
				i++
			}
		}
		if (t == game.Bet || t == game.Raise) && !s.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: %s needs a positive amount", game.ErrInvalidAmount, t)
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func applyScript(h *game.HandHistory, steps []step) error {
	for i, s := range steps {
		if err := h.AddAction(s.Type, s.Amount); err != nil {
			return fmt.Errorf("action %d (%s): %w", i+1, s, err)
		}
	}
	return nil
}
