package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func stacksOf(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = amt(v)
	}
	return out
}

func uniformStacks(n int, value string) []decimal.Decimal {
	out := make([]decimal.Decimal, n)
	for i := range out {
		out[i] = amt(value)
	}
	return out
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// postedHand builds a hand with 0.5/1 blinds unless overridden and posts the
// forced bets.
func postedHand(t *testing.T, stacks []decimal.Decimal, opts ...Option) *HandHistory {
	t.Helper()
	base := []Option{WithBlinds(amt("0.5"), amt("1")), WithLogger(quietLogger())}
	h, err := NewHandHistory(stacks, append(base, opts...)...)
	require.NoError(t, err)
	require.NoError(t, h.PostBlindsAndAntes())
	return h
}

func act(t *testing.T, h *HandHistory, at ActionType, amount string) {
	t.Helper()
	require.NoError(t, h.AddAction(at, amt(amount)), "%s %s by %s", at, amount, h.CurrentPlayer())
}

func requireAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, amt(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func requireToAct(t *testing.T, h *HandHistory, want Position) {
	t.Helper()
	require.NotNil(t, h.CurrentPlayer(), "expected %s to act, hand is over", want)
	require.Equal(t, want, h.CurrentPlayer().Position)
}

// handState captures everything an undo must restore.
type handState struct {
	Current string
	Street  Street
	Pot     string
	Stacks  []string
	Winner  string
	Actions int
}

func stateOf(h *HandHistory) handState {
	s := handState{
		Current: "-",
		Winner:  "-",
		Street:  h.CurrentStreet(),
		Pot:     h.TotalPot().String(),
		Actions: len(h.Actions()),
	}
	if p := h.CurrentPlayer(); p != nil {
		s.Current = p.Position.String()
	}
	if w := h.Winner(); w != nil {
		s.Winner = w.Position.String()
	}
	for _, p := range h.Players() {
		s.Stacks = append(s.Stacks, p.Stack.String())
	}
	return s
}

func actionStrings(h *HandHistory) []string {
	var out []string
	for _, a := range h.Actions() {
		out = append(out, a.String())
	}
	return out
}

func sumPots(pots []SidePot) decimal.Decimal {
	total := decimal.Zero
	for _, p := range pots {
		total = total.Add(p.Amount)
	}
	return total
}
