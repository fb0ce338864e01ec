package cli

import (
	"fmt"

	"github.com/julianstephens/pkm/internal/generator"
	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/snapshot"
	"github.com/julianstephens/pkm/internal/trait"
)

// GenerateFlags are shared by the commands that synthesize a dataset
type GenerateFlags struct {
	Months float64 `help:"Months of history to simulate, 30 days each. Fractions are allowed." default:"3"`
	Seed   uint64  `help:"Seed for a reproducible dataset. 0 picks a random seed."`
	Latch  bool    `help:"Keep the trait active once it has activated."`
}

func (f GenerateFlags) generate(c *Context) (models.Dataset, error) {
	mode := trait.ModeBernoulli
	if f.Latch {
		mode = trait.ModeLatch
	}

	g := generator.New(generator.Options{Seed: f.Seed, Mode: mode, Now: c.now})
	ds, err := g.GenerateMonths(f.Months)
	if err != nil {
		return models.Dataset{}, fmt.Errorf("failed to generate dataset: %w", err)
	}
	return ds, nil
}

type GenerateCmd struct {
	GenerateFlags `embed:""`
	Out           string `help:"Snapshot file to write." type:"path" default:"demo_data.json"`
}

func (cmd *GenerateCmd) Run(c *Context) error {
	ds, err := cmd.generate(c)
	if err != nil {
		return err
	}
	if err := snapshot.Write(cmd.Out, ds); err != nil {
		return err
	}

	fmt.Fprintf(c.out(), "✓ Generated %d days (%s to %s, seed %d)\n", ds.Meta.Days, ds.Meta.StartDate, ds.Meta.EndDate, ds.Meta.Seed)
	writeCounts(c.out(), "Records", ds.Counts())
	fmt.Fprintf(c.out(), "\nSnapshot written to %s\n", cmd.Out)
	return nil
}
