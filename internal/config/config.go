package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/hhcreator/internal/game"
	"github.com/shopspring/decimal"
)

// Environment variables that override the file.
const (
	EnvLogLevel = "HHCREATOR_LOG_LEVEL"
	EnvStoreDir = "HHCREATOR_STORE_DIR"
)

// Config represents the complete configuration
type Config struct {
	LogLevel string        `hcl:"log_level,optional"`
	StoreDir string        `hcl:"store_dir,optional"`
	Tables   []TableConfig `hcl:"table,block"`
}

// TableConfig defines the stakes and stacks new hands start from. Amounts are
// strings so they are read as exact decimals.
type TableConfig struct {
	Name       string   `hcl:"name,label"`
	SmallBlind string   `hcl:"small_blind"`
	BigBlind   string   `hcl:"big_blind,optional"`
	Ante       string   `hcl:"ante,optional"`
	BBAnte     string   `hcl:"bb_ante,optional"`
	Straddles  int      `hcl:"straddles,optional"`
	Stacks     []string `hcl:"stacks"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		StoreDir: "hands",
		Tables:   []TableConfig{defaultTable()},
	}
}

func defaultTable() TableConfig {
	return TableConfig{
		Name:       "default",
		SmallBlind: "0.5",
		BigBlind:   "1",
		Stacks:     []string{"100", "100", "100", "100", "100", "100"},
	}
}

// Load loads the configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.StoreDir == "" {
		config.StoreDir = "hands"
	}
	if len(config.Tables) == 0 {
		config.Tables = []TableConfig{defaultTable()}
	}
	return &config, nil
}

// ApplyEnv lets the environment override the file.
func (c *Config) ApplyEnv() {
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvStoreDir); ok && v != "" {
		c.StoreDir = v
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.StoreDir == "" {
		return fmt.Errorf("store directory must be set")
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	seen := make(map[string]bool)
	for _, table := range c.Tables {
		if seen[table.Name] {
			return fmt.Errorf("table %s: defined more than once", table.Name)
		}
		seen[table.Name] = true
		if _, err := table.NewHand(); err != nil {
			return fmt.Errorf("table %s: %w", table.Name, err)
		}
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// TableByName returns a table configuration by name
func (c *Config) TableByName(name string) (*TableConfig, bool) {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i], true
		}
	}
	return nil, false
}

// StackAmounts parses the starting stacks.
func (t *TableConfig) StackAmounts() ([]decimal.Decimal, error) {
	stacks := make([]decimal.Decimal, len(t.Stacks))
	for i, s := range t.Stacks {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("stack %d: %w", i+1, err)
		}
		stacks[i] = d
	}
	return stacks, nil
}

// Options converts the table stakes to engine options.
func (t *TableConfig) Options() ([]game.Option, error) {
	smallBlind, err := amount("small_blind", t.SmallBlind)
	if err != nil {
		return nil, err
	}
	ante, err := amount("ante", t.Ante)
	if err != nil {
		return nil, err
	}
	bbAnte, err := amount("bb_ante", t.BBAnte)
	if err != nil {
		return nil, err
	}

	opts := []game.Option{
		game.WithSmallBlind(smallBlind),
		game.WithAnte(ante),
		game.WithBBAnte(bbAnte),
		game.WithStraddles(t.Straddles),
	}
	if t.BigBlind != "" {
		bigBlind, err := amount("big_blind", t.BigBlind)
		if err != nil {
			return nil, err
		}
		opts = append(opts, game.WithBlinds(smallBlind, bigBlind))
	}
	return opts, nil
}

// NewHand creates an unposted hand with the table's stakes and stacks. Extra
// options are applied after the table's.
func (t *TableConfig) NewHand(extra ...game.Option) (*game.HandHistory, error) {
	stacks, err := t.StackAmounts()
	if err != nil {
		return nil, err
	}
	opts, err := t.Options()
	if err != nil {
		return nil, err
	}
	return game.NewHandHistory(stacks, append(opts, extra...)...)
}

func amount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}
