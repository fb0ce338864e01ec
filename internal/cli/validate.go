package cli

import (
	"fmt"

	"github.com/julianstephens/pkm/internal/snapshot"
	"github.com/julianstephens/pkm/internal/validation"
)

type ValidateCmd struct {
	File string `arg:"" help:"Snapshot file to validate." type:"existingfile" default:"demo_data.json"`
}

func (cmd *ValidateCmd) Run(c *Context) error {
	ds, err := snapshot.Read(cmd.File)
	if err != nil {
		return err
	}

	result := validation.NewInLocation(c.loc()).ValidateDataset(ds)
	fmt.Fprintln(c.out(), result.FormatReport())
	if result.HasErrors() {
		return fmt.Errorf("validation found %d errors and %d warnings",
			result.Count(validation.SeverityError), result.Count(validation.SeverityWarning))
	}

	fmt.Fprintf(c.out(), "✓ %s: %d days, %d records checked\n", cmd.File, ds.Meta.Days, totalRecords(ds.Counts()))
	return nil
}
