package showdown

import (
	"fmt"
	"math"

	"github.com/paulhankin/poker"
)

// Evaluator scores the best hand a player can make. Lower scores win.
type Evaluator interface {
	Score(hole, board []Card) (int, error)
}

// HandEvaluator scores hold'em and omaha hands with the paulhankin/poker
// lookup tables. Hands with more than two hole cards must use exactly two of
// them with three board cards.
type HandEvaluator struct{}

// NewEvaluator returns the default evaluator.
func NewEvaluator() *HandEvaluator {
	return &HandEvaluator{}
}

// Score returns the rank of the best five card hand, lower is better.
func (e *HandEvaluator) Score(hole, board []Card) (int, error) {
	best, _, err := e.best(hole, board)
	if err != nil {
		return 0, err
	}
	return -int(best), nil
}

// Describe names the best hand, e.g. "two pair, kings and fives".
func (e *HandEvaluator) Describe(hole, board []Card) (string, error) {
	_, five, err := e.best(hole, board)
	if err != nil {
		return "", err
	}
	return poker.Describe(five[:])
}

func (e *HandEvaluator) best(hole, board []Card) (int16, [5]poker.Card, error) {
	var five [5]poker.Card
	if len(board) > 5 {
		return 0, five, fmt.Errorf("%w: board has %d cards", ErrInvalidCard, len(board))
	}
	h, err := toLibrary(hole)
	if err != nil {
		return 0, five, err
	}
	b, err := toLibrary(board)
	if err != nil {
		return 0, five, err
	}
	if err := distinct(hole, board); err != nil {
		return 0, five, err
	}

	if len(h) > 2 {
		if len(b) < 3 {
			return 0, five, fmt.Errorf("%w: %d board cards for an omaha hand", ErrNotEnoughCards, len(b))
		}
		return bestOmaha(h, b)
	}
	all := append(h, b...)
	if len(all) < 5 {
		return 0, five, fmt.Errorf("%w: %d cards", ErrNotEnoughCards, len(all))
	}
	if len(all) == 7 {
		var seven [7]poker.Card
		copy(seven[:], all)
		_, chosen := bestOfFive(all)
		return poker.Eval7(&seven), chosen, nil
	}
	best, chosen := bestOfFive(all)
	return best, chosen, nil
}

// bestOfFive tries every five card subset.
func bestOfFive(cards []poker.Card) (int16, [5]poker.Card) {
	best := int16(math.MinInt16)
	var chosen, five [5]poker.Card
	var pick func(start, k int)
	pick = func(start, k int) {
		if k == 5 {
			if score := poker.Eval5(&five); score > best {
				best, chosen = score, five
			}
			return
		}
		for i := start; i <= len(cards)-(5-k); i++ {
			five[k] = cards[i]
			pick(i+1, k+1)
		}
	}
	pick(0, 0)
	return best, chosen
}

func bestOmaha(hole, board []poker.Card) (int16, [5]poker.Card, error) {
	best := int16(math.MinInt16)
	var chosen, five [5]poker.Card
	for i := 0; i < len(hole); i++ {
		for j := i + 1; j < len(hole); j++ {
			for a := 0; a < len(board); a++ {
				for b := a + 1; b < len(board); b++ {
					for c := b + 1; c < len(board); c++ {
						five = [5]poker.Card{hole[i], hole[j], board[a], board[b], board[c]}
						if score := poker.Eval5(&five); score > best {
							best, chosen = score, five
						}
					}
				}
			}
		}
	}
	return best, chosen, nil
}

func toLibrary(cards []Card) ([]poker.Card, error) {
	out := make([]poker.Card, len(cards))
	for i, c := range cards {
		if !c.Valid() {
			return nil, fmt.Errorf("%w: %#x", ErrInvalidCard, uint64(c))
		}
		// The library counts ranks from ace (1) to king (13).
		rank := poker.Rank(c.Rank() + 2)
		if c.Rank() == Ace {
			rank = 1
		}
		var suit poker.Suit
		switch c.Suit() {
		case Clubs:
			suit = poker.Club
		case Diamonds:
			suit = poker.Diamond
		case Hearts:
			suit = poker.Heart
		default:
			suit = poker.Spade
		}
		pc, err := poker.MakeCard(suit, rank)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCard, c, err)
		}
		out[i] = pc
	}
	return out, nil
}

func distinct(groups ...[]Card) error {
	var seen CardSet
	for _, g := range groups {
		for _, c := range g {
			if seen.Has(c) {
				return fmt.Errorf("%w: %s", ErrDuplicateCard, c)
			}
			seen |= NewCardSet(c)
		}
	}
	return nil
}
