package game

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trialAmount is a legal-looking amount for each action type.
func trialAmount(h *HandHistory, t ActionType) decimal.Decimal {
	switch t {
	case Bet:
		return h.BigBlind()
	case Raise:
		return h.MinimumRaise()
	default:
		return decimal.Zero
	}
}

// playRandom drives the hand to completion with seeded random choices,
// calling visit before every action.
func playRandom(t *testing.T, h *HandHistory, rng *rand.Rand, visit func()) {
	t.Helper()
	for step := 0; h.CurrentPlayer() != nil; step++ {
		require.Less(t, step, 500, "hand did not terminate")
		visit()

		possible := h.PossibleActionTypes()
		choice := possible[rng.IntN(len(possible))]
		amount := trialAmount(h, choice)
		if choice == Bet || choice == Raise {
			amount = amount.Mul(decimal.NewFromInt(int64(1 + rng.IntN(3))))
		}
		if err := h.AddAction(choice, amount); err != nil {
			require.ErrorIs(t, err, ErrInvalidAmount)
			if h.CurrentPlayerAmountToCall().IsZero() {
				act(t, h, Check, "0")
			} else {
				act(t, h, Call, "0")
			}
		}
	}
}

var randomTables = []struct {
	name   string
	stacks []string
	opts   []Option
}{
	{"heads-up", []string{"100", "40"}, nil},
	{"three-handed", []string{"100", "25.5", "60"}, nil},
	{"short stacks", []string{"3", "7.5", "12", "2"}, nil},
	{"antes", []string{"30", "45", "20", "80", "15"}, []Option{WithAnte(amt("0.25"))}},
	{"big blind ante", []string{"50", "50", "50", "50", "50", "50"}, []Option{WithBBAnte(amt("1"))}},
	{"straddles", []string{"90", "12", "44", "71", "8", "150", "33"}, []Option{WithStraddles(2)}},
	{"full ring", []string{"100", "100", "100", "100", "100", "100", "100", "100", "100", "100"}, nil},
}

func TestAddRemoveIsIdentity(t *testing.T) {
	t.Parallel()

	for _, tt := range randomTables {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for seed := uint64(1); seed <= 10; seed++ {
				rng := rand.New(rand.NewPCG(seed, 7))
				h := postedHand(t, stacksOf(tt.stacks...), tt.opts...)

				playRandom(t, h, rng, func() {
					before := stateOf(h)
					for _, at := range h.PossibleActionTypes() {
						err := h.AddAction(at, trialAmount(h, at))
						if err != nil {
							require.ErrorIs(t, err, ErrInvalidAmount)
							require.Equal(t, before, stateOf(h), "failed %s changed the hand", at)
							continue
						}
						require.NoError(t, h.RemoveLastAction())
						require.Equal(t, before, stateOf(h), "%s was not undone", at)
					}
				})
			}
		})
	}
}

func TestChipsAreConserved(t *testing.T) {
	t.Parallel()

	for _, tt := range randomTables {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for seed := uint64(1); seed <= 10; seed++ {
				rng := rand.New(rand.NewPCG(seed, 11))
				stacks := stacksOf(tt.stacks...)
				h := postedHand(t, stacks, tt.opts...)
				total := decimal.Sum(decimal.Zero, stacks...)

				check := func() {
					onTable := h.TotalPot()
					for _, p := range h.Players() {
						require.False(t, p.Stack.IsNegative())
						onTable = onTable.Add(p.Stack)
					}
					requireAmount(t, total.String(), onTable)

					pots, err := h.SidePots(false)
					if err != nil {
						require.True(t, errors.Is(err, ErrDeadChips), err)
					}
					requireAmount(t, h.TotalPot().String(), sumPots(pots))

					for _, pot := range pots {
						shares := decimal.Zero
						for _, s := range pot.Contributors() {
							shares = shares.Add(s.Investment)
						}
						requireAmount(t, pot.Amount.String(), shares)
					}
				}
				playRandom(t, h, rng, check)
				check()
				assert.True(t, h.IsComplete())
			}
		})
	}
}

func TestAtAction(t *testing.T) {
	t.Parallel()

	h := limpedFlop(t)
	act(t, h, Bet, "2")
	live := stateOf(h)

	fresh, err := h.AtAction(-1)
	require.NoError(t, err)
	assert.Empty(t, fresh.Actions())
	assert.False(t, fresh.BlindsPosted())
	assert.Equal(t, Ante, fresh.CurrentStreet())

	forced, err := h.AtAction(0)
	require.NoError(t, err)
	assert.Len(t, forced.Actions(), 2)
	assert.Empty(t, forced.EditableActions())
	requireToAct(t, forced, BTN)

	two, err := h.AtAction(2)
	require.NoError(t, err)
	assert.Len(t, two.EditableActions(), 2)
	requireToAct(t, two, BB)
	assert.Equal(t, PreFlop, two.CurrentStreet())

	past, err := h.AtAction(100)
	require.NoError(t, err)
	assert.Equal(t, live, stateOf(past))

	assert.Equal(t, live, stateOf(h))
}

func TestAtActionKeepsExtras(t *testing.T) {
	t.Parallel()

	h := postedHand(t, uniformStacks(3, "100"))
	h.SetExtra("name", "hero call")
	act(t, h, Call, "0")

	replay, err := h.AtAction(0)
	require.NoError(t, err)
	assert.Equal(t, "hero call", replay.Extra()["name"])

	replay.SetExtra("name", "changed")
	assert.Equal(t, "hero call", h.Extra()["name"])
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	h := limpedFlop(t)
	clone, err := h.Clone()
	require.NoError(t, err)
	assert.Equal(t, stateOf(h), stateOf(clone))

	act(t, clone, Bet, "5")
	assert.NotEqual(t, stateOf(h), stateOf(clone))
	requireAmount(t, "3", h.TotalPot())
	requireToAct(t, h, SB)

	require.NoError(t, h.RemoveLastAction())
	requireAmount(t, "8", clone.TotalPot())
}

func TestCloneBeforeBlinds(t *testing.T) {
	t.Parallel()

	h, err := NewHandHistory(uniformStacks(4, "100"), WithAnte(amt("0.1")))
	require.NoError(t, err)
	clone, err := h.Clone()
	require.NoError(t, err)
	assert.False(t, clone.BlindsPosted())
	requireAmount(t, "0.1", clone.Ante())
}
