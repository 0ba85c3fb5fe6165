package showdown

import (
	"testing"

	"github.com/lox/hhcreator/internal/game"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cards(t *testing.T, s string) []Card {
	t.Helper()
	c, err := ParseCards(s)
	require.NoError(t, err)
	return c
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, amt(want).Equal(got), "want %s, got %s", want, got)
}

func TestScoreOrdersHands(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator()
	board := cards(t, "2c 7d 9h Js Kd")

	aces, err := ev.Score(cards(t, "AhAs"), board)
	require.NoError(t, err)
	queens, err := ev.Score(cards(t, "QhQs"), board)
	require.NoError(t, err)
	air, err := ev.Score(cards(t, "3h4s"), board)
	require.NoError(t, err)

	assert.Less(t, aces, queens)
	assert.Less(t, queens, air)
}

func TestScoreCardCounts(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator()
	hole := cards(t, "AhAs")

	five, err := ev.Score(hole, cards(t, "Ad 7c 2s"))
	require.NoError(t, err)
	six, err := ev.Score(hole, cards(t, "Ad 7c 2s 7h"))
	require.NoError(t, err)
	seven, err := ev.Score(hole, cards(t, "Ad 7c 2s 7h 3d"))
	require.NoError(t, err)
	assert.Less(t, six, five, "full house beats trips")
	assert.LessOrEqual(t, seven, six)

	_, err = ev.Score(hole, cards(t, "Ad 7c"))
	require.ErrorIs(t, err, ErrNotEnoughCards)
	_, err = ev.Score(hole, cards(t, "As 7c 2d"))
	require.ErrorIs(t, err, ErrDuplicateCard)
	_, err = ev.Score(hole, cards(t, "2c 3c 4c 5c 6c 7c"))
	require.ErrorIs(t, err, ErrInvalidCard)
	_, err = ev.Score([]Card{0, NewCard(Two, Clubs)}, cards(t, "Ad 7c 2s"))
	require.ErrorIs(t, err, ErrInvalidCard)
}

func TestOmahaUsesExactlyTwoHoleCards(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator()
	board := cards(t, "2h 5h 9h Jh Ks")

	oneHeart, err := ev.Score(cards(t, "Ah3c4d7s"), board)
	require.NoError(t, err)
	twoHearts, err := ev.Score(cards(t, "QhTh3s4s"), board)
	require.NoError(t, err)
	assert.Less(t, twoHearts, oneHeart)

	holdem, err := ev.Score(cards(t, "Ah3c"), board)
	require.NoError(t, err)
	assert.Less(t, holdem, oneHeart, "the ace-high flush needs only one hole card in hold'em")

	_, err = ev.Score(cards(t, "Ah3c4d7s"), cards(t, "2h 5h"))
	require.ErrorIs(t, err, ErrNotEnoughCards)
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	desc, err := NewEvaluator().Describe(cards(t, "AhAs"), cards(t, "Ad 7c 2s 7h 3d"))
	require.NoError(t, err)
	assert.NotEmpty(t, desc)
}

func TestWinners(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator()
	hands := map[game.Position][]Card{
		game.SB:  cards(t, "AhAs"),
		game.BB:  cards(t, "QhQs"),
		game.BTN: cards(t, "AdAc"),
	}
	board := cards(t, "2c 7d 9h Js Kd")

	winners, err := Winners(ev, hands, board, []game.Position{game.SB, game.BB, game.BTN})
	require.NoError(t, err)
	assert.Equal(t, []game.Position{game.SB, game.BTN}, winners)

	winners, err = Winners(ev, hands, board, []game.Position{game.BB})
	require.NoError(t, err)
	assert.Equal(t, []game.Position{game.BB}, winners)

	_, err = Winners(ev, hands, board, []game.Position{game.CO})
	require.ErrorIs(t, err, ErrMissingHand)

	hands[game.CO] = cards(t, "Ah2d")
	_, err = Winners(ev, hands, board, []game.Position{game.SB})
	require.ErrorIs(t, err, ErrDuplicateCard)
}

func TestAwardSplitsWithRemainder(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator()
	board := cards(t, "Ah Kh Qh Jh Th")
	hands := map[game.Position][]Card{
		game.SB:  cards(t, "2c3c"),
		game.BB:  cards(t, "2d3d"),
		game.BTN: cards(t, "2s3s"),
	}
	pot := game.SidePot{
		Amount: amt("10"),
		Players: []game.SidePotPlayer{
			{Position: game.BTN, Investment: amt("3.5"), Live: true},
			{Position: game.SB, Investment: amt("3.5"), Live: true},
			{Position: game.BB, Investment: amt("3"), Live: true},
		},
	}

	payouts, err := Award(ev, []game.SidePot{pot}, hands, board)
	require.NoError(t, err)
	require.Len(t, payouts, 3)
	assert.Equal(t, game.SB, payouts[0].Position)
	requireAmount(t, "3.34", payouts[0].Amount)
	requireAmount(t, "3.33", payouts[1].Amount)
	requireAmount(t, "3.33", payouts[2].Amount)

	whole, err := Award(ev, []game.SidePot{pot}, hands, board, WithPrecision(0))
	require.NoError(t, err)
	requireAmount(t, "4", whole[0].Amount)
	requireAmount(t, "3", whole[1].Amount)
}

func TestAwardSinglePlayerPot(t *testing.T) {
	t.Parallel()

	pots := []game.SidePot{
		{Amount: amt("0"), Players: []game.SidePotPlayer{{Position: game.SB, Live: true}}},
		{Amount: amt("20"), Players: []game.SidePotPlayer{{Position: game.BB, Investment: amt("20"), Live: true}}},
	}
	payouts, err := Award(NewEvaluator(), pots, nil, nil)
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, Payout{Pot: 1, Position: game.BB, Amount: pots[1].Amount}, payouts[0])

	_, err = Award(NewEvaluator(), []game.SidePot{{Amount: amt("1")}}, nil, nil)
	require.ErrorIs(t, err, ErrUncontested)
}

func newHand(t *testing.T, stacks ...string) *game.HandHistory {
	t.Helper()
	values := make([]decimal.Decimal, len(stacks))
	for i, s := range stacks {
		values[i] = amt(s)
	}
	h, err := game.NewHandHistory(values, game.WithBlinds(amt("0.5"), amt("1")))
	require.NoError(t, err)
	require.NoError(t, h.PostBlindsAndAntes())
	return h
}

func play(t *testing.T, h *game.HandHistory, steps ...any) {
	t.Helper()
	for i := 0; i < len(steps); i += 2 {
		require.NoError(t, h.AddAction(steps[i].(game.ActionType), amt(steps[i+1].(string))))
	}
}

func TestResolveHandWithSidePots(t *testing.T) {
	t.Parallel()

	h := newHand(t, "100", "100", "10")
	play(t, h,
		game.Raise, "9",
		game.Call, "0",
		game.Call, "0",
		game.Bet, "5",
		game.Fold, "0",
	)
	require.True(t, h.IsComplete())

	hands := map[game.Position][]Card{
		game.SB:  cards(t, "KhKs"),
		game.BTN: cards(t, "AhAs"),
	}
	payouts, err := ResolveHand(h, NewEvaluator(), hands, cards(t, "2c 7d 9h Js 3d"))
	require.NoError(t, err)

	totals := Totals(payouts)
	requireAmount(t, "30", totals[game.BTN])
	requireAmount(t, "5", totals[game.SB])
	requireAmount(t, h.TotalPot().String(), totals[game.BTN].Add(totals[game.SB]))
}

func TestResolveHandFoldedOut(t *testing.T) {
	t.Parallel()

	h := newHand(t, "100", "100", "100")
	play(t, h, game.Raise, "2", game.Fold, "0", game.Fold, "0")

	payouts, err := ResolveHand(h, NewEvaluator(), nil, nil)
	require.NoError(t, err)
	require.Len(t, payouts, 1)
	assert.Equal(t, game.BTN, payouts[0].Position)
	requireAmount(t, "4.5", payouts[0].Amount)
}

func TestResolveHandInProgress(t *testing.T) {
	t.Parallel()

	h := newHand(t, "100", "100")
	_, err := ResolveHand(h, NewEvaluator(), nil, nil)
	require.ErrorIs(t, err, ErrHandInProgress)
}
