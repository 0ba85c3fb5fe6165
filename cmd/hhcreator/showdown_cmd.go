package main

import (
	"fmt"
	"strings"

	"github.com/lox/hhcreator/internal/game"
	"github.com/lox/hhcreator/internal/phh"
	"github.com/lox/hhcreator/internal/showdown"
)

// ShowdownCmd awards a finished hand.
type ShowdownCmd struct {
	ID        string   `arg:"" help:"Hand id"`
	Hand      []string `short:"H" help:"Hole cards of a seat, e.g. SB=AhKd (repeatable)"`
	Board     string   `short:"b" help:"Board cards, e.g. 'Ah Kd 7c 2s 9h'"`
	Precision int32    `default:"2" help:"Decimal places split pots are rounded down to"`
	Export    bool     `help:"Also write the hand as PHH with the cards and winnings"`
}

func (c *ShowdownCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	hands, err := parseHoleCards(c.Hand)
	if err != nil {
		return err
	}
	board, err := showdown.ParseCards(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}

	h, err := a.load(c.ID)
	if err != nil {
		return err
	}
	payouts, err := showdown.ResolveHand(h, showdown.NewEvaluator(), hands, board, showdown.WithPrecision(c.Precision))
	if err != nil {
		return err
	}
	a.logger.Info("Hand resolved", "id", c.ID, "pot", h.TotalPot(), "payouts", len(payouts))
	if err := renderPayouts(a.out, payouts, hands, board); err != nil {
		return err
	}

	if !c.Export {
		return nil
	}
	path, err := a.store.ExportPHH(c.ID,
		phh.WithCards(hands, board),
		phh.WithWinnings(showdown.Totals(payouts)),
	)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, path)
	return err
}

// parseHoleCards reads SEAT=CARDS pairs.
func parseHoleCards(pairs []string) (map[game.Position][]showdown.Card, error) {
	hands := make(map[game.Position][]showdown.Card, len(pairs))
	for _, pair := range pairs {
		seat, cards, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("hand %q: expected SEAT=CARDS", pair)
		}
		pos, err := game.ParsePosition(seat)
		if err != nil {
			return nil, fmt.Errorf("hand %q: %w", pair, err)
		}
		if _, dup := hands[pos]; dup {
			return nil, fmt.Errorf("hand %q: %s given twice", pair, pos)
		}
		hole, err := showdown.ParseCards(cards)
		if err != nil {
			return nil, fmt.Errorf("hand %q: %w", pair, err)
		}
		if len(hole) < 2 {
			return nil, fmt.Errorf("hand %q: %w", pair, showdown.ErrNotEnoughCards)
		}
		hands[pos] = hole
	}
	return hands, nil
}
