package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/pkm/internal/constants"
)

type CheckCmd struct {
	Samples int      `help:"Number of sample rows to show per table." default:"3"`
	Tables  []string `arg:"" optional:"" help:"Tables to inspect. Defaults to every data table."`
}

func (cmd *CheckCmd) Run(c *Context) error {
	ctx := context.Background()

	store, err := c.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	tables := cmd.Tables
	if len(tables) == 0 {
		tables = constants.CheckedTables
	}
	reports, err := store.Check(ctx, tables, cmd.Samples)
	if err != nil {
		return err
	}

	w := c.out()
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", titleStyle.Render(r.Table), labelStyle.UnsetWidth().Render(fmt.Sprintf("(%d rows)", r.Count)))
		if len(r.Samples) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(r.Columns, " | "))
		for _, row := range r.Samples {
			fmt.Fprintf(w, "  %s\n", strings.Join(row, " | "))
		}
	}
	return nil
}
