package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/pkm/internal/storage"
)

type BootstrapCmd struct{}

func (cmd *BootstrapCmd) Run(c *Context) error {
	ctx := context.Background()

	target, err := c.Target()
	if err != nil {
		return err
	}
	store, err := storage.Open(ctx, target)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Bootstrap(ctx); err != nil {
		return err
	}
	fmt.Fprintf(c.out(), "✓ Schema is up to date: %s\n", target)
	return nil
}
