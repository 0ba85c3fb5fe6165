package main

import (
	"encoding/json"
	"fmt"

	"github.com/lox/hhcreator/internal/game"
	"github.com/lox/hhcreator/internal/store"
)

// NewCmd starts a hand from a configured table.
type NewCmd struct {
	Table  string   `short:"t" default:"default" help:"Table from the configuration file"`
	Stacks []string `help:"Starting stacks, overriding the table's (comma separated)"`
	ID     string   `help:"Hand id (generated when empty)"`
	Script []string `arg:"" optional:"" name:"actions" help:"Actions to apply, e.g. raise 3 call fold"`
}

func (c *NewCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	steps, err := parseScript(c.Script)
	if err != nil {
		return err
	}

	table, ok := a.cfg.TableByName(c.Table)
	if !ok {
		return fmt.Errorf("unknown table %q", c.Table)
	}
	t := *table
	if len(c.Stacks) > 0 {
		t.Stacks = c.Stacks
	}

	h, err := t.NewHand(game.WithLogger(a.logger))
	if err != nil {
		return err
	}
	if err := h.PostBlindsAndAntes(); err != nil {
		return err
	}
	if err := applyScript(h, steps); err != nil {
		return err
	}
	h.SetExtra("table", t.Name)
	if c.ID != "" {
		h.SetExtra(store.FieldID, c.ID)
	}

	id, err := a.store.Save(h)
	if err != nil {
		return err
	}
	a.logger.Info("Hand created", "id", id, "table", t.Name, "players", len(h.Players()))
	return renderHand(a.out, id, h)
}

// ShowCmd prints a stored hand.
type ShowCmd struct {
	ID   string `arg:"" help:"Hand id"`
	At   *int   `help:"Show the hand after this many actions (forced bets excluded)"`
	JSON bool   `help:"Print the stored document instead"`
}

func (c *ShowCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	h, err := a.load(c.ID)
	if err != nil {
		return err
	}
	if c.At != nil {
		if h, err = h.AtAction(*c.At); err != nil {
			return err
		}
	}
	if c.JSON {
		data, err := json.MarshalIndent(h, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.out, string(data))
		return err
	}
	return renderHand(a.out, c.ID, h)
}

// ActCmd applies actions to a stored hand.
type ActCmd struct {
	ID     string   `arg:"" help:"Hand id"`
	Script []string `arg:"" name:"actions" help:"Actions to apply, e.g. call or bet 2"`
}

func (c *ActCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	steps, err := parseScript(c.Script)
	if err != nil {
		return err
	}
	h, err := a.load(c.ID)
	if err != nil {
		return err
	}
	if err := applyScript(h, steps); err != nil {
		return err
	}
	return a.save(c.ID, h)
}

// UndoCmd removes actions from the end of a stored hand.
type UndoCmd struct {
	ID    string `arg:"" help:"Hand id"`
	Count int    `short:"n" default:"1" help:"Number of actions to remove"`
}

func (c *UndoCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	h, err := a.load(c.ID)
	if err != nil {
		return err
	}
	for i := 0; i < c.Count; i++ {
		if !h.HasEditableActions() {
			return fmt.Errorf("undo %d: %w", i+1, game.ErrNoActions)
		}
		if err := h.RemoveLastAction(); err != nil {
			return err
		}
	}
	return a.save(c.ID, h)
}

// ListCmd prints the ids of the stored hands.
type ListCmd struct{}

func (c *ListCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	ids, err := a.store.List()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(a.out, id); err != nil {
			return err
		}
	}
	return nil
}
