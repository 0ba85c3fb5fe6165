package game

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SidePotPlayer is one contributor's share of a pot.
type SidePotPlayer struct {
	Position   Position
	Investment decimal.Decimal
	Live       bool
}

// SidePot is a pot capped at the investment level of its shortest live
// contributor. Players can win it; Folded only paid into it.
type SidePot struct {
	Players []SidePotPlayer
	Amount  decimal.Decimal
	Folded  []SidePotPlayer
}

// PlayerByPosition returns the live share of a seat.
func (sp SidePot) PlayerByPosition(position Position) (SidePotPlayer, bool) {
	for _, p := range sp.Players {
		if p.Position == position {
			return p, true
		}
	}
	return SidePotPlayer{}, false
}

// Contributors returns every share of the pot, live ones first.
func (sp SidePot) Contributors() []SidePotPlayer {
	out := make([]SidePotPlayer, 0, len(sp.Players)+len(sp.Folded))
	out = append(out, sp.Players...)
	return append(out, sp.Folded...)
}

type contribution struct {
	position  Position
	remaining decimal.Decimal
}

// SidePots partitions every chip in the pot into a main pot and side pots.
// With atStreetBegin the partition is computed for the state at the start of
// the current street. A non-nil error wrapping ErrDeadChips means folded
// chips were left once every live contributor was covered; they are added to
// the last pot so the pots still sum to the total.
func (h *HandHistory) SidePots(atStreetBegin bool) ([]SidePot, error) {
	src := h
	if atStreetBegin {
		begin, err := h.streetBegin()
		if err != nil {
			return nil, err
		}
		src = begin
	}
	return src.sidePots()
}

// streetBegin replays the hand up to the first decision of the current street.
func (h *HandHistory) streetBegin() (*HandHistory, error) {
	if !h.blindsPosted {
		return h, nil
	}
	n := len(h.EditableActions())
	for cursor := 0; cursor <= n; cursor++ {
		state, err := h.AtAction(cursor)
		if err != nil {
			return nil, err
		}
		if state.street == h.street {
			return state, nil
		}
	}
	return h, nil
}

func (h *HandHistory) sidePots() ([]SidePot, error) {
	var live, dead []*contribution
	for _, p := range h.players {
		invested := p.Invested()
		if !invested.IsPositive() {
			continue
		}
		c := &contribution{position: p.Position, remaining: invested}
		if p.HasFolded() {
			dead = append(dead, c)
		} else {
			live = append(live, c)
		}
	}

	// The big blind ante is never returned uncalled, so it is carved out of
	// the big blind's investment into the first pot.
	carved := decimal.Zero
	if h.cfg.bbAnte.IsPositive() {
		for _, c := range live {
			if c.position == BB {
				carved = decimal.Min(h.cfg.bbAnte, c.remaining)
				c.remaining = c.remaining.Sub(carved)
			}
		}
	}

	var pots []SidePot
	for len(live) > 0 {
		level := live[0].remaining
		for _, c := range live[1:] {
			level = decimal.Min(level, c.remaining)
		}

		pot := SidePot{Amount: decimal.Zero}
		for _, c := range live {
			share := level
			if len(pots) == 0 && c.position == BB {
				share = share.Add(carved)
			}
			c.remaining = c.remaining.Sub(level)
			pot.Amount = pot.Amount.Add(share)
			pot.Players = append(pot.Players, SidePotPlayer{Position: c.position, Investment: share, Live: true})
		}
		for _, c := range dead {
			taken := decimal.Min(level, c.remaining)
			c.remaining = c.remaining.Sub(taken)
			pot.Amount = pot.Amount.Add(taken)
			pot.Folded = append(pot.Folded, SidePotPlayer{Position: c.position, Investment: taken, Live: false})
		}
		pots = append(pots, pot)

		live = withRemaining(live)
		dead = withRemaining(dead)
	}

	if len(dead) == 0 {
		return pots, nil
	}

	leftover := decimal.Zero
	if len(pots) == 0 {
		pots = append(pots, SidePot{Amount: decimal.Zero})
	}
	last := &pots[len(pots)-1]
	for _, c := range dead {
		leftover = leftover.Add(c.remaining)
		last.Amount = last.Amount.Add(c.remaining)
		last.Folded = append(last.Folded, SidePotPlayer{Position: c.position, Investment: c.remaining, Live: false})
	}
	h.logger.Error("Dead chips remaining after side pots", "chips", leftover, "pots", len(pots))
	return pots, fmt.Errorf("%w: %s after %d pots", ErrDeadChips, leftover, len(pots))
}

func withRemaining(cs []*contribution) []*contribution {
	out := cs[:0]
	for _, c := range cs {
		if c.remaining.IsPositive() {
			out = append(out, c)
		}
	}
	return out
}
