// Package game implements the betting engine for a single no-limit hold'em hand.
//
// The main type is HandHistory, which records every action of a hand, enforces
// turn order across streets, validates actions and amounts, keeps pot accounting
// exact with decimal arithmetic and can rewind to any earlier decision point.
//
// # Basic Usage
//
// Create a hand, post the forced bets and feed it actions:
//
//	stacks := []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(100), decimal.NewFromInt(100)}
//	h, err := game.NewHandHistory(stacks, game.WithBlinds(decimal.RequireFromString("0.5"), decimal.NewFromInt(1)))
//	if err != nil {
//	    return err
//	}
//	if err := h.PostBlindsAndAntes(); err != nil {
//	    return err
//	}
//	// BTN raises 2 on top of the big blind, SB folds, BB calls
//	_ = h.AddAction(game.Raise, decimal.NewFromInt(2))
//	_ = h.AddAction(game.Fold, decimal.Zero)
//	_ = h.AddAction(game.Call, decimal.Zero)
//
// A UI polls PossibleActionTypes, MinimumRaise, CurrentPlayerAmountToCall and
// SidePots after every change to render its prompts.
//
// # Rewinding
//
// RemoveLastAction is the exact inverse of AddAction. AtAction returns an
// independent hand truncated after N non-forced actions by replaying them
// against a freshly constructed hand, so inspecting the past never touches the
// live instance.
//
// # Persistence
//
// ToMap and FromMap convert a hand to plain nested maps; MarshalJSON and
// FromJSON wrap them with decimals tagged as {"decimal": "1.5"} so stakes are
// never re-parsed as binary floats.
package game
