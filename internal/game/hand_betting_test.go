package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// limpedFlop returns a three-handed hand on the flop after everyone limped.
func limpedFlop(t *testing.T) *HandHistory {
	t.Helper()
	h := postedHand(t, uniformStacks(3, "100"))
	act(t, h, Call, "0")
	act(t, h, Call, "0")
	act(t, h, Check, "0")
	require.Equal(t, Flop, h.CurrentStreet())
	return h
}

func TestBetBelowBigBlind(t *testing.T) {
	t.Parallel()

	h := limpedFlop(t)
	requireToAct(t, h, SB)
	before := stateOf(h)

	err := h.AddAction(Bet, amt("0.99"))
	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, before, stateOf(h))

	act(t, h, Bet, "1")
	requireAmount(t, "4", h.TotalPot())
	requireToAct(t, h, BB)
	requireAmount(t, "1", h.CurrentPlayerAmountToCall())
}

func TestRaiseBelowMinimum(t *testing.T) {
	t.Parallel()

	h := limpedFlop(t)
	act(t, h, Bet, "3")

	requireToAct(t, h, BB)
	requireAmount(t, "3", h.MinimumRaise())
	require.ErrorIs(t, h.AddAction(Raise, amt("2.5")), ErrInvalidAmount)

	act(t, h, Raise, "3")
	bb, _ := h.PlayerByPosition(BB)
	requireAmount(t, "6", bb.StreetBet(Flop))
	last, ok := h.LastAction()
	require.True(t, ok)
	requireAmount(t, "3", last.Amount)
	requireAmount(t, "6", last.AddedToPot)
}

func TestAmountAboveStack(t *testing.T) {
	t.Parallel()

	h := limpedFlop(t)
	require.ErrorIs(t, h.AddAction(Bet, amt("99.5")), ErrInvalidAmount)
	act(t, h, Bet, "99")

	sb, _ := h.PlayerByPosition(SB)
	requireAmount(t, "0", sb.Stack)

	requireToAct(t, h, BB)
	require.ErrorIs(t, h.AddAction(Raise, amt("99")), ErrInvalidAction)
	assert.Equal(t, []ActionType{Fold, Call}, h.PossibleActionTypes())
}

func TestRaiseCoversCallFirst(t *testing.T) {
	t.Parallel()

	h := postedHand(t, stacksOf("100", "100", "5"))
	require.ErrorIs(t, h.AddAction(Raise, amt("4.5")), ErrInvalidAmount)
	act(t, h, Raise, "4")

	btn, _ := h.PlayerByPosition(BTN)
	requireAmount(t, "0", btn.Stack)
}

func TestIllegalActionTypes(t *testing.T) {
	t.Parallel()

	h := limpedFlop(t)
	require.ErrorIs(t, h.AddAction(Call, amt("0")), ErrInvalidAction)
	require.ErrorIs(t, h.AddAction(PostBigBlind, amt("1")), ErrInvalidAction)

	act(t, h, Bet, "2")
	require.ErrorIs(t, h.AddAction(Check, amt("0")), ErrInvalidAction)
	require.ErrorIs(t, h.AddAction(Bet, amt("4")), ErrInvalidAction)
}

func TestAddActionBeforeBlinds(t *testing.T) {
	t.Parallel()

	h, err := NewHandHistory(uniformStacks(3, "100"))
	require.NoError(t, err)
	require.ErrorIs(t, h.AddAction(Fold, amt("0")), ErrInvalidAction)
	assert.Empty(t, h.Actions())
}

func TestAddActionAfterHandOver(t *testing.T) {
	t.Parallel()

	h := postedHand(t, uniformStacks(2, "100"))
	act(t, h, Fold, "0")
	require.True(t, h.IsComplete())
	require.ErrorIs(t, h.AddAction(Check, amt("0")), ErrInvalidAction)
}

func TestCheckAndFoldIgnoreAmount(t *testing.T) {
	t.Parallel()

	h := limpedFlop(t)
	act(t, h, Check, "5")
	act(t, h, Fold, "7")

	actions := h.Actions()
	for _, a := range actions[len(actions)-2:] {
		requireAmount(t, "0", a.Amount)
		requireAmount(t, "0", a.AddedToPot)
	}
	requireAmount(t, "3", h.TotalPot())
}

func TestCallRecordsAmountPaid(t *testing.T) {
	t.Parallel()

	h := postedHand(t, uniformStacks(3, "100"))
	act(t, h, Call, "42")

	last, _ := h.LastAction()
	requireAmount(t, "1", last.Amount)
	requireAmount(t, "1", last.AddedToPot)
}

func TestRemoveLastActionOnEmptyHand(t *testing.T) {
	t.Parallel()

	h, err := NewHandHistory(uniformStacks(2, "100"))
	require.NoError(t, err)
	require.ErrorIs(t, h.RemoveLastAction(), ErrNoActions)
}

func TestCentralPotOnLaterStreet(t *testing.T) {
	t.Parallel()

	h := limpedFlop(t)
	act(t, h, Bet, "2")
	act(t, h, Call, "0")

	requireAmount(t, "7", h.TotalPot())
	requireAmount(t, "3", h.CentralPot())
	requireToAct(t, h, BTN)
	requireAmount(t, "2", h.CurrentPlayerStreetBet().Add(h.CurrentPlayerAmountToCall()))
}
