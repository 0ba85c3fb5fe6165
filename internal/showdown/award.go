package showdown

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/hhcreator/internal/game"
	"github.com/shopspring/decimal"
)

// Payout is the share of one pot won by one seat.
type Payout struct {
	Pot      int
	Position game.Position
	Amount   decimal.Decimal
}

// AwardOption configures how pots are split.
type AwardOption func(*awardConfig)

type awardConfig struct {
	precision int32
}

// WithPrecision sets the number of decimal places a split share is rounded
// down to. The default is 2.
func WithPrecision(places int32) AwardOption {
	return func(c *awardConfig) {
		c.precision = places
	}
}

// Winners returns the candidates holding the best hand, in candidate order.
func Winners(ev Evaluator, hands map[game.Position][]Card, board []Card, candidates []game.Position) ([]game.Position, error) {
	if err := distinctHands(hands, board); err != nil {
		return nil, err
	}
	var winners []game.Position
	best := 0
	for _, pos := range candidates {
		hole, ok := hands[pos]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingHand, pos)
		}
		score, err := ev.Score(hole, board)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pos, err)
		}
		switch {
		case len(winners) == 0 || score < best:
			best = score
			winners = []game.Position{pos}
		case score == best:
			winners = append(winners, pos)
		}
	}
	return winners, nil
}

// Award splits every pot between the live players holding the best hand. A
// pot with a single live player is paid without looking at the cards. The
// part of a pot that cannot be split evenly goes to the first winner in seat
// order.
func Award(ev Evaluator, pots []game.SidePot, hands map[game.Position][]Card, board []Card, opts ...AwardOption) ([]Payout, error) {
	cfg := awardConfig{precision: 2}
	for _, opt := range opts {
		opt(&cfg)
	}

	var payouts []Payout
	for i, pot := range pots {
		if !pot.Amount.IsPositive() {
			continue
		}
		live := make([]game.Position, len(pot.Players))
		for j, p := range pot.Players {
			live[j] = p.Position
		}
		slices.Sort(live)

		switch len(live) {
		case 0:
			return nil, fmt.Errorf("%w: pot %d of %s", ErrUncontested, i+1, pot.Amount)
		case 1:
			payouts = append(payouts, Payout{Pot: i, Position: live[0], Amount: pot.Amount})
			continue
		}

		winners, err := Winners(ev, hands, board, live)
		if err != nil {
			return nil, fmt.Errorf("pot %d: %w", i+1, err)
		}
		payouts = append(payouts, split(i, pot.Amount, winners, cfg.precision)...)
	}
	return payouts, nil
}

func split(pot int, amount decimal.Decimal, winners []game.Position, places int32) []Payout {
	n := decimal.NewFromInt(int64(len(winners)))
	share := amount.Div(n).RoundFloor(places)
	remainder := amount.Sub(share.Mul(n))

	out := make([]Payout, len(winners))
	for i, pos := range winners {
		out[i] = Payout{Pot: pot, Position: pos, Amount: share}
	}
	out[0].Amount = out[0].Amount.Add(remainder)
	return out
}

// ResolveHand pays out a finished hand: the whole pot to the last player
// standing, or every side pot by showdown.
func ResolveHand(hh *game.HandHistory, ev Evaluator, hands map[game.Position][]Card, board []Card, opts ...AwardOption) ([]Payout, error) {
	if !hh.IsComplete() {
		return nil, ErrHandInProgress
	}
	if w := hh.Winner(); w != nil {
		return []Payout{{Pot: 0, Position: w.Position, Amount: hh.TotalPot()}}, nil
	}
	pots, err := hh.SidePots(false)
	if err != nil && !errors.Is(err, game.ErrDeadChips) {
		return nil, err
	}
	return Award(ev, pots, hands, board, opts...)
}

// Totals sums the payouts per seat.
func Totals(payouts []Payout) map[game.Position]decimal.Decimal {
	totals := make(map[game.Position]decimal.Decimal)
	for _, p := range payouts {
		totals[p.Position] = totals[p.Position].Add(p.Amount)
	}
	return totals
}

func distinctHands(hands map[game.Position][]Card, board []Card) error {
	positions := make([]game.Position, 0, len(hands))
	for pos := range hands {
		positions = append(positions, pos)
	}
	slices.Sort(positions)
	groups := [][]Card{board}
	for _, pos := range positions {
		groups = append(groups, hands[pos])
	}
	return distinct(groups...)
}
