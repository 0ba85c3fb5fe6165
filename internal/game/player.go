package game

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Action is one recorded event of a hand. Amount is what the actor declared
// (the raise on top of the call for a raise), AddedToPot is what actually left
// the stack.
type Action struct {
	Street     Street
	Player     Position
	Type       ActionType
	Amount     decimal.Decimal
	AddedToPot decimal.Decimal
}

func (a Action) String() string {
	return fmt.Sprintf("%s %s %s (%s to pot, %s)", a.Player, a.Type, a.Amount, a.AddedToPot, a.Street)
}

// Player represents one seat of a hand
type Player struct {
	Position     Position
	Stack        decimal.Decimal
	InitialStack decimal.Decimal
	actions      []Action
}

func newPlayer(position Position, stack decimal.Decimal) *Player {
	return &Player{Position: position, Stack: stack, InitialStack: stack}
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (%s)", p.Position, p.Stack)
}

// Actions returns the player's actions in order.
func (p *Player) Actions() []Action {
	return slices.Clone(p.actions)
}

// LastAction returns the most recent action of the player.
func (p *Player) LastAction() (Action, bool) {
	if len(p.actions) == 0 {
		return Action{}, false
	}
	return p.actions[len(p.actions)-1], true
}

// HasFolded returns true once the player's last action is a fold
func (p *Player) HasFolded() bool {
	last, ok := p.LastAction()
	return ok && last.Type == Fold
}

// HasNotPlayed returns true if the player has no action on the street.
func (p *Player) HasNotPlayed(street Street) bool {
	for _, a := range p.actions {
		if a.Street == street {
			return false
		}
	}
	return true
}

// StreetBet is what the player put in on a street, antes excluded.
func (p *Player) StreetBet(street Street) decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.actions {
		if a.Street == street && a.Type != PostAnte {
			total = total.Add(a.AddedToPot)
		}
	}
	return total
}

// Invested is everything the player put in the pot this hand.
func (p *Player) Invested() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.actions {
		total = total.Add(a.AddedToPot)
	}
	return total
}
