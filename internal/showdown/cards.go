package showdown

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single card stored as one bit of a 52-bit set.
// Layout: [13 spades][13 hearts][13 diamonds][13 clubs]
type Card uint64

// Suit constants
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard creates a card from rank and suit.
func NewCard(rank, suit uint8) Card {
	return Card(1) << (suit*13 + rank)
}

func (c Card) position() uint8 {
	if c == 0 || bits.OnesCount64(uint64(c)) != 1 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Valid reports whether c is exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c.position() < 52
}

// Rank returns the rank of the card (0-12)
func (c Card) Rank() uint8 {
	if !c.Valid() {
		return 255
	}
	return c.position() % 13
}

// Suit returns the suit of the card (0-3)
func (c Card) Suit() uint8 {
	if !c.Valid() {
		return 255
	}
	return c.position() / 13
}

// String returns the two character form, e.g. "As" or "Th".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// ParseCard parses "As", "td" or "10h" into a Card.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	rank := strings.IndexByte(rankChars, upper(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("%w: rank %q", ErrInvalidCard, s[0])
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("%w: suit %q", ErrInvalidCard, s[1])
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a run of cards such as "AhKd" or "Ah Kd 10c".
func ParseCards(s string) ([]Card, error) {
	var cards []Card
	for _, field := range strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' }) {
		for len(field) > 0 {
			n := 2
			if strings.HasPrefix(field, "10") {
				n = 3
			}
			if len(field) < n {
				return nil, fmt.Errorf("%w: %q", ErrInvalidCard, field)
			}
			c, err := ParseCard(field[:n])
			if err != nil {
				return nil, err
			}
			cards = append(cards, c)
			field = field[n:]
		}
	}
	return cards, nil
}

// CardSet holds any number of distinct cards.
type CardSet uint64

// NewCardSet creates a set from cards.
func NewCardSet(cards ...Card) CardSet {
	var s CardSet
	for _, c := range cards {
		s |= CardSet(c)
	}
	return s
}

// Has checks if the set contains a specific card
func (s CardSet) Has(c Card) bool {
	return s&CardSet(c) != 0
}

// Len returns the number of cards in the set
func (s CardSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
