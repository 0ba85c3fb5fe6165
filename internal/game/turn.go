package game

import (
	"slices"

	"github.com/shopspring/decimal"
)

// seating returns the players in the order they act on the current street.
func (h *HandHistory) seating() []*Player {
	if !h.headsUpFlipped {
		return h.players
	}
	seats := slices.Clone(h.players)
	slices.Reverse(seats)
	return seats
}

// nonFoldedAfterCurrent lists the players still in the hand, starting with the
// one seated after the current player and wrapping around to them.
func (h *HandHistory) nonFoldedAfterCurrent() []*Player {
	seats := h.seating()
	start := slices.Index(seats, h.current) + 1
	players := make([]*Player, 0, len(seats))
	for i := range seats {
		p := seats[(start+i)%len(seats)]
		if !p.HasFolded() {
			players = append(players, p)
		}
	}
	return players
}

// nextPlayer moves the turn to the next player owed an action, finishing the
// street when nobody is.
func (h *HandHistory) nextPlayer() {
	players := h.nonFoldedAfterCurrent()
	if len(players) == 1 {
		h.winner = players[0]
		h.current = nil
		h.logger.Info("Everybody else folded", "winner", h.winner.Position, "pot", h.totalPot)
		return
	}

	toCall := h.TotalAmountToCall()
	last, _ := h.LastAction()
	for _, p := range players {
		if !p.Stack.IsPositive() {
			continue
		}
		if h.owesBlindOption(p, last, toCall) ||
			p.HasNotPlayed(h.street) ||
			p.StreetBet(h.street).LessThan(toCall) {
			h.current = p
			return
		}
	}
	h.nextStreet()
}

// owesBlindOption is true pre-flop for a player whose last action was a blind
// or straddle nobody has raised over, unless they just acted.
func (h *HandHistory) owesBlindOption(p *Player, last Action, toCall decimal.Decimal) bool {
	if h.street != PreFlop || last.Player == p.Position {
		return false
	}
	previous, ok := p.LastAction()
	return ok && previous.Type.IsBlind() && toCall.Equal(h.largestBlind)
}

func (h *HandHistory) nextStreet() {
	if len(h.players) == 2 && h.street == PreFlop {
		h.headsUpFlipped = !h.headsUpFlipped
	}
	h.street = h.street.Next()
	if h.street == Showdown {
		h.current = nil
		h.logger.Info("No more action possible, showdown", "pot", h.totalPot)
		return
	}

	seats := h.seating()
	h.current = seats[len(seats)-1]
	withChips := 0
	for _, p := range h.nonFoldedAfterCurrent() {
		if p.Stack.IsPositive() {
			withChips++
		}
	}
	if withChips == 1 {
		h.current = nil
		h.street = Showdown
		h.logger.Info("One player left with chips, showdown", "pot", h.totalPot)
		return
	}
	h.logger.Debug("Street started", "street", h.street, "central_pot", h.CentralPot())
	h.nextPlayer()
}
