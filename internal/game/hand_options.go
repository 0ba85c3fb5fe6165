package game

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

// Option configures a HandHistory during creation.
type Option func(*handConfig)

// handConfig holds everything needed to rebuild a hand from scratch.
type handConfig struct {
	stacks      []decimal.Decimal
	smallBlind  decimal.Decimal
	bigBlind    decimal.Decimal
	bigBlindSet bool
	ante        decimal.Decimal
	bbAnte      decimal.Decimal
	straddles   int
	logger      *log.Logger
}

// WithBlinds sets both blinds.
func WithBlinds(smallBlind, bigBlind decimal.Decimal) Option {
	return func(c *handConfig) {
		c.smallBlind = smallBlind
		c.bigBlind = bigBlind
		c.bigBlindSet = true
	}
}

// WithSmallBlind sets the small blind. Unless WithBlinds is also given the big
// blind is twice the small blind.
func WithSmallBlind(smallBlind decimal.Decimal) Option {
	return func(c *handConfig) {
		c.smallBlind = smallBlind
	}
}

// WithAnte makes every seat post a flat ante.
func WithAnte(ante decimal.Decimal) Option {
	return func(c *handConfig) {
		c.ante = ante
	}
}

// WithBBAnte makes the big blind post the ante for the whole table.
func WithBBAnte(ante decimal.Decimal) Option {
	return func(c *handConfig) {
		c.bbAnte = ante
	}
}

// WithStraddles sets the number of straddles posted after the big blind.
func WithStraddles(n int) Option {
	return func(c *handConfig) {
		c.straddles = n
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *handConfig) {
		c.logger = logger
	}
}

func defaultConfig(stacks []decimal.Decimal) handConfig {
	return handConfig{
		stacks:     slices.Clone(stacks),
		smallBlind: decimal.New(5, -1),
		ante:       decimal.Zero,
		bbAnte:     decimal.Zero,
	}
}

func (c *handConfig) validate() error {
	if _, err := Positions(len(c.stacks)); err != nil {
		return err
	}
	for i, s := range c.stacks {
		if !s.IsPositive() {
			return fmt.Errorf("%w: stack %d is %s, must be positive", ErrInvalidConfig, i+1, s)
		}
	}
	if !c.smallBlind.IsPositive() {
		return fmt.Errorf("%w: small blind must be positive", ErrInvalidConfig)
	}
	if c.bigBlind.LessThan(c.smallBlind) {
		return fmt.Errorf("%w: big blind %s is less than small blind %s", ErrInvalidConfig, c.bigBlind, c.smallBlind)
	}
	if c.ante.IsNegative() || c.bbAnte.IsNegative() {
		return fmt.Errorf("%w: antes cannot be negative", ErrInvalidConfig)
	}
	if c.ante.IsPositive() && c.bbAnte.IsPositive() {
		return fmt.Errorf("%w: ante and big blind ante are mutually exclusive", ErrInvalidConfig)
	}
	if c.straddles < 0 || c.straddles > len(c.stacks)-2 {
		return fmt.Errorf("%w: %d straddles with %d players", ErrInvalidConfig, c.straddles, len(c.stacks))
	}
	return nil
}

// NewHandHistory creates a hand for the given stacks, listed in the action
// order of the position table (SB first, BTN last).
//
// Example usage:
//
//	h, err := NewHandHistory(stacks,
//	    WithBlinds(decimal.RequireFromString("0.5"), decimal.NewFromInt(1)),
//	    WithAnte(decimal.RequireFromString("0.1")))
func NewHandHistory(stacks []decimal.Decimal, opts ...Option) (*HandHistory, error) {
	cfg := defaultConfig(stacks)
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.bigBlindSet {
		cfg.bigBlind = cfg.smallBlind.Mul(decimal.NewFromInt(2))
	}
	if cfg.logger == nil {
		cfg.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return newHandHistory(cfg), nil
}
