package game

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsApplyInOrder(t *testing.T) {
	t.Parallel()

	h, err := NewHandHistory(uniformStacks(4, "100"),
		WithSmallBlind(amt("1")),
		WithAnte(amt("0.2")),
		WithAnte(amt("0.3")),
		WithStraddles(2),
		WithStraddles(1),
	)
	require.NoError(t, err)
	requireAmount(t, "1", h.SmallBlind())
	requireAmount(t, "2", h.BigBlind())
	requireAmount(t, "0.3", h.Ante())
	assert.Equal(t, 1, h.Straddles())
}

func TestWithBlindsOverridesDerivedBigBlind(t *testing.T) {
	t.Parallel()

	h, err := NewHandHistory(uniformStacks(2, "100"),
		WithBlinds(amt("1"), amt("3")),
		WithSmallBlind(amt("1.5")),
	)
	require.NoError(t, err)
	requireAmount(t, "1.5", h.SmallBlind())
	requireAmount(t, "3", h.BigBlind())
}

func TestStacksAreCopied(t *testing.T) {
	t.Parallel()

	stacks := uniformStacks(3, "100")
	h, err := NewHandHistory(stacks)
	require.NoError(t, err)
	stacks[0] = amt("1")

	requireAmount(t, "100", h.Players()[0].InitialStack)
	clone, err := h.Clone()
	require.NoError(t, err)
	requireAmount(t, "100", clone.Players()[0].InitialStack)
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	h, err := NewHandHistory(uniformStacks(2, "100"), WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, h.PostBlindsAndAntes())
	require.NoError(t, h.AddAction(Fold, amt("0")))

	out := buf.String()
	assert.Contains(t, out, "Forced bets posted")
	assert.Contains(t, out, "Action applied")
	assert.Contains(t, out, "Everybody else folded")
	assert.Contains(t, out, "winner=BB")
}
