package game

import (
	"fmt"
	"slices"
	"strings"
)

// Position is a seat's role relative to the button
type Position int

const (
	SB Position = iota
	BB
	UTG
	UTG1
	UTG2
	UTG3
	UTG4
	HJ
	CO
	BTN
)

var positionNames = [...]string{"SB", "BB", "UTG", "UTG1", "UTG2", "UTG3", "UTG4", "HJ", "CO", "BTN"}

var positionAliases = map[string]Position{
	"small blind":   SB,
	"big blind":     BB,
	"under the gun": UTG,
	"utg+1":         UTG1,
	"utg + 1":       UTG1,
	"utg+2":         UTG2,
	"utg + 2":       UTG2,
	"utg+3":         UTG3,
	"utg + 3":       UTG3,
	"utg+4":         UTG4,
	"utg + 4":       UTG4,
	"hijack":        HJ,
	"utg+5":         HJ,
	"utg + 5":       HJ,
	"cutoff":        CO,
	"cut off":       CO,
	"bu":            BTN,
	"button":        BTN,
}

// positionTable lists the seats in action order for each table size.
var positionTable = map[int][]Position{
	2:  {SB, BB},
	3:  {SB, BB, BTN},
	4:  {SB, BB, UTG, BTN},
	5:  {SB, BB, UTG, CO, BTN},
	6:  {SB, BB, UTG, HJ, CO, BTN},
	7:  {SB, BB, UTG, UTG1, HJ, CO, BTN},
	8:  {SB, BB, UTG, UTG1, UTG2, HJ, CO, BTN},
	9:  {SB, BB, UTG, UTG1, UTG2, UTG3, HJ, CO, BTN},
	10: {SB, BB, UTG, UTG1, UTG2, UTG3, UTG4, HJ, CO, BTN},
}

func (p Position) String() string {
	if p < SB || p > BTN {
		return fmt.Sprintf("position(%d)", int(p))
	}
	return positionNames[p]
}

// Positions returns the seats of an n-handed table in action order.
func Positions(n int) ([]Position, error) {
	positions, ok := positionTable[n]
	if !ok {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, n)
	}
	return slices.Clone(positions), nil
}

// ParsePosition parses a position name such as "BTN", "utg+1" or "cutoff".
func ParsePosition(s string) (Position, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, name := range positionNames {
		if strings.ToLower(name) == key {
			return Position(i), nil
		}
	}
	if p, ok := positionAliases[key]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown position %q", s)
}
