package phh

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/lox/hhcreator/internal/game"
	"github.com/shopspring/decimal"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	// Use tabs for arrays to match human expectations
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a PHH TOML document.
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("phh: %w", err)
	}
	return &hand, nil
}

// FormatAction converts an engine action to its PHH action string. streetTotal
// is the player's investment on the street once the action is applied, which
// is what PHH records for bets and raises. It returns false for forced bets,
// which PHH captures in the antes and blinds fields.
func FormatAction(seat int, a game.Action, streetTotal decimal.Decimal) (string, bool) {
	player := playerRef(seat)
	switch a.Type {
	case game.Fold:
		return player + " f", true
	case game.Check, game.Call:
		return player + " cc", true
	case game.Bet, game.Raise:
		return fmt.Sprintf("%s cbr %s", player, streetTotal), true
	default:
		return "", false
	}
}
