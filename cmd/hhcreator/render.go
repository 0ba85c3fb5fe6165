package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/hhcreator/internal/game"
	"github.com/lox/hhcreator/internal/showdown"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	streetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	actionsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	foldedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Strikethrough(true)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	seatStyle = lipgloss.NewStyle().Width(6)
)

// renderHand prints the hand: seats, action log, pots and what happens next.
func renderHand(w io.Writer, id string, h *game.HandHistory) error {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Hand "+id) + "\n")
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s\n",
		labelStyle.Render("street"), streetStyle.Render(h.CurrentStreet().String()),
		labelStyle.Render("pot"), h.TotalPot(),
		labelStyle.Render("central"), h.CentralPot(),
	)

	b.WriteString("\n")
	for _, p := range h.Players() {
		line := fmt.Sprintf("%s stack %s invested %s", seatStyle.Render(p.Position.String()), p.Stack, p.Invested())
		switch {
		case p.HasFolded():
			line = foldedStyle.Render(line)
		case h.Winner() != nil && h.Winner().Position == p.Position:
			line = winnerStyle.Render(line + " wins")
		case p == h.CurrentPlayer():
			line = actionsStyle.Render(line + " to act")
		case p.Stack.IsZero():
			line += " all-in"
		}
		b.WriteString(line + "\n")
	}

	if actions := h.Actions(); len(actions) > 0 {
		b.WriteString("\n")
		street := actions[0].Street
		var row []string
		flush := func() {
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(street.String()+":"), strings.Join(row, ", "))
			row = nil
		}
		for _, a := range actions {
			if a.Street != street {
				flush()
				street = a.Street
			}
			row = append(row, describeAction(a))
		}
		flush()
	}

	pots, err := h.SidePots(false)
	if err != nil && !errors.Is(err, game.ErrDeadChips) {
		return err
	}
	if len(pots) > 1 {
		b.WriteString("\n")
		for i, pot := range pots {
			names := make([]string, len(pot.Players))
			for j, p := range pot.Players {
				names[j] = p.Position.String()
			}
			fmt.Fprintf(&b, "%s %s (%s)\n", labelStyle.Render(fmt.Sprintf("pot %d", i+1)), pot.Amount, strings.Join(names, " "))
		}
	}
	if errors.Is(err, game.ErrDeadChips) {
		b.WriteString(warningStyle.Render("dead chips left after the side pots") + "\n")
	}

	b.WriteString("\n")
	switch {
	case !h.BlindsPosted():
		b.WriteString("blinds not posted\n")
	case h.Winner() != nil:
		fmt.Fprintf(&b, "%s wins %s uncontested\n", h.Winner().Position, h.TotalPot())
	case h.IsComplete():
		b.WriteString("showdown\n")
	default:
		types := h.PossibleActionTypes()
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		fmt.Fprintf(&b, "%s %s  %s %s  %s %s\n",
			labelStyle.Render("to act"), h.CurrentPlayer().Position,
			labelStyle.Render("to call"), h.CurrentPlayerAmountToCall(),
			labelStyle.Render("min raise"), h.MinimumRaise(),
		)
		b.WriteString(actionsStyle.Render(strings.Join(names, " | ")) + "\n")
	}

	_, err = io.WriteString(w, b.String())
	return err
}

func describeAction(a game.Action) string {
	switch a.Type {
	case game.Check, game.Fold:
		return fmt.Sprintf("%s %s", a.Player, a.Type)
	default:
		return fmt.Sprintf("%s %s %s", a.Player, a.Type, a.AddedToPot)
	}
}

// renderPayouts prints who won what, naming each winning hand when the cards
// are known.
func renderPayouts(w io.Writer, payouts []showdown.Payout, hands map[game.Position][]showdown.Card, board []showdown.Card) error {
	ev := showdown.NewEvaluator()
	var b strings.Builder
	for _, p := range payouts {
		line := fmt.Sprintf("%s %s wins %s", labelStyle.Render(fmt.Sprintf("pot %d", p.Pot+1)), p.Position, p.Amount)
		if hole, ok := hands[p.Position]; ok {
			if desc, err := ev.Describe(hole, board); err == nil {
				line += " with " + desc
			}
		}
		b.WriteString(winnerStyle.Render(line) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
