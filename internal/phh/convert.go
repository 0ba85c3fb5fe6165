package phh

import (
	"strconv"
	"strings"

	"github.com/coder/quartz"
	"github.com/lox/hhcreator/internal/game"
	"github.com/lox/hhcreator/internal/showdown"
	"github.com/shopspring/decimal"
)

// Variant is the PHH code for no-limit Texas hold'em.
const Variant = "NT"

// Option configures FromGame.
type Option func(*converter)

type converter struct {
	clock    quartz.Clock
	table    string
	handID   string
	hole     map[game.Position][]showdown.Card
	board    []showdown.Card
	winnings map[game.Position]decimal.Decimal
}

// WithClock sets the clock the export timestamp is read from.
func WithClock(clock quartz.Clock) Option {
	return func(c *converter) { c.clock = clock }
}

// WithTable names the table, which defaults to the "table" extra field.
func WithTable(name string) Option {
	return func(c *converter) { c.table = name }
}

// WithHandID overrides the hand id, which defaults to the "id" extra field.
func WithHandID(id string) Option {
	return func(c *converter) { c.handID = id }
}

// WithCards fills in the dealt cards. Unknown cards are written as "??".
func WithCards(hole map[game.Position][]showdown.Card, board []showdown.Card) Option {
	return func(c *converter) {
		c.hole = hole
		c.board = board
	}
}

// WithWinnings records what each seat collected at showdown.
func WithWinnings(winnings map[game.Position]decimal.Decimal) Option {
	return func(c *converter) { c.winnings = winnings }
}

// FromGame converts an engine hand to a PHH hand history.
func FromGame(hh *game.HandHistory, opts ...Option) *HandHistory {
	c := converter{clock: quartz.NewReal()}
	for _, opt := range opts {
		opt(&c)
	}

	players := hh.Players()
	n := len(players)
	seat := make(map[game.Position]int, n)
	out := &HandHistory{
		Variant:           Variant,
		Table:             c.table,
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]float64, n),
		BlindsOrStraddles: make([]float64, n),
		MinBet:            hh.BigBlind().InexactFloat64(),
		StartingStacks:    make([]float64, n),
		FinishingStacks:   make([]float64, n),
		Players:           make([]string, n),
		HandID:            c.handID,
		Metadata:          metadata(hh.Extra()),
	}
	if out.HandID == "" {
		out.HandID, _ = hh.Extra()["id"].(string)
	}
	if out.Table == "" {
		out.Table, _ = hh.Extra()["table"].(string)
	}

	for i, p := range players {
		seat[p.Position] = i
		out.Seats[i] = i + 1
		out.Players[i] = p.Position.String()
		out.StartingStacks[i] = p.InitialStack.InexactFloat64()
		out.FinishingStacks[i] = p.Stack.Add(c.winnings[p.Position]).InexactFloat64()
		out.Actions = append(out.Actions, "d dh "+playerRef(i)+" "+cardText(c.hole[p.Position], 2))
	}
	if c.winnings != nil {
		out.Winnings = make([]float64, n)
		for pos, amount := range c.winnings {
			out.Winnings[seat[pos]] = amount.InexactFloat64()
		}
	}

	dealt := game.PreFlop
	deal := func(to game.Street) {
		for dealt < to && dealt < game.River {
			dealt++
			out.Actions = append(out.Actions, "d db "+c.boardFor(dealt))
		}
	}

	street := game.Ante
	bets := make(map[game.Position]decimal.Decimal)
	for _, a := range hh.Actions() {
		if a.Street != street {
			street = a.Street
			bets = make(map[game.Position]decimal.Decimal)
		}
		switch a.Type {
		case game.PostAnte:
			out.Antes[seat[a.Player]] = a.Amount.InexactFloat64()
			continue
		case game.PostSmallBlind, game.PostBigBlind, game.Straddle:
			out.BlindsOrStraddles[seat[a.Player]] = a.Amount.InexactFloat64()
		}
		bets[a.Player] = bets[a.Player].Add(a.AddedToPot)

		if a.Type.IsForced() {
			continue
		}
		deal(a.Street)
		if line, ok := FormatAction(seat[a.Player], a, bets[a.Player]); ok {
			out.Actions = append(out.Actions, line)
		}
	}
	if hh.IsComplete() && hh.Winner() == nil {
		deal(game.River)
	}

	now := c.clock.Now().UTC()
	out.Timestamp = now
	out.Time = now.Format("15:04:05")
	out.TimeZone = "UTC"
	out.Day = now.Day()
	out.Month = int(now.Month())
	out.Year = now.Year()
	return out
}

func (c *converter) boardFor(street game.Street) string {
	switch street {
	case game.Flop:
		return cardText(window(c.board, 0, 3), 3)
	case game.Turn:
		return cardText(window(c.board, 3, 4), 1)
	default:
		return cardText(window(c.board, 4, 5), 1)
	}
}

func window(cards []showdown.Card, from, to int) []showdown.Card {
	if len(cards) < to {
		return nil
	}
	return cards[from:to]
}

// cardText joins known cards or writes n unknown ones.
func cardText(cards []showdown.Card, n int) string {
	if len(cards) == 0 {
		return strings.Repeat("??", n)
	}
	var b strings.Builder
	for _, card := range cards {
		b.WriteString(card.String())
	}
	return b.String()
}

func playerRef(seat int) string {
	return "p" + strconv.Itoa(seat+1)
}

// metadata copies the caller fields TOML can encode.
func metadata(extra map[string]any) map[string]any {
	delete(extra, "id")
	out := make(map[string]any, len(extra))
	for k, v := range extra {
		if v = tomlValue(v); v != nil {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func tomlValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			if e = tomlValue(e); e != nil {
				out[k] = e
			}
		}
		return out
	case []any:
		out := make([]any, 0, len(x))
		for _, e := range x {
			if e = tomlValue(e); e != nil {
				out = append(out, e)
			}
		}
		return out
	default:
		return v
	}
}
