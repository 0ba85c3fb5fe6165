package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/hhcreator/internal/config"
	"github.com/lox/hhcreator/internal/game"
	"github.com/lox/hhcreator/internal/store"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config   string `short:"c" default:"hhcreator.hcl" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	StoreDir string `short:"d" help:"Directory hands are stored in (overrides config)"`

	Out    io.Writer `kong:"-"`
	ErrOut io.Writer `kong:"-"`
}

// app is what a command works with once the configuration is resolved.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	store  *store.FileStore
	out    io.Writer
}

// open resolves the configuration: file, then environment, then flags.
func (g *Globals) open() (*app, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	// Apply command line overrides
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if g.StoreDir != "" {
		cfg.StoreDir = g.StoreDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	errOut := g.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}
	logger := log.NewWithOptions(errOut, log.Options{Level: cfg.Level()})
	out := g.Out
	if out == nil {
		out = os.Stdout
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store.New(cfg.StoreDir, store.WithLogger(logger)),
		out:    out,
	}, nil
}

func (a *app) load(id string) (*game.HandHistory, error) {
	return a.store.Load(id, game.WithLogger(a.logger.With("hand", id)))
}

func (a *app) save(id string, h *game.HandHistory) error {
	if _, err := a.store.Save(h); err != nil {
		return err
	}
	return renderHand(a.out, id, h)
}
