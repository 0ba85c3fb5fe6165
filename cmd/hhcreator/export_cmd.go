package main

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ExportCmd writes stored hands as PHH files next to their documents.
type ExportCmd struct {
	IDs      []string `arg:"" optional:"" name:"ids" help:"Hand ids (all stored hands when empty)"`
	Parallel int      `short:"p" default:"4" help:"Number of hands exported at once"`
}

func (c *ExportCmd) Run(g *Globals) error {
	a, err := g.open()
	if err != nil {
		return err
	}
	ids := c.IDs
	if len(ids) == 0 {
		if ids, err = a.store.List(); err != nil {
			return err
		}
	}
	if len(ids) == 0 {
		return errors.New("no hands to export")
	}

	paths, err := exportAll(context.Background(), a, ids, c.Parallel)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if _, err := fmt.Fprintln(a.out, path); err != nil {
			return err
		}
	}
	a.logger.Info("Hands exported", "count", len(paths), "dir", a.store.Dir())
	return nil
}

// exportAll exports hands concurrently and returns their paths in id order.
// The first failure cancels the hands not yet started.
func exportAll(ctx context.Context, a *app, ids []string, parallel int) ([]string, error) {
	if parallel < 1 {
		parallel = 1
	}
	paths := make([]string, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, id := range ids {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := a.store.ExportPHH(id)
			if err != nil {
				return fmt.Errorf("export %s: %w", id, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
