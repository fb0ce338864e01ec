package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/pkm/internal/backup"
	pkmerrors "github.com/julianstephens/pkm/internal/errors"
	"github.com/julianstephens/pkm/internal/importer"
	"github.com/julianstephens/pkm/internal/lock"
	"github.com/julianstephens/pkm/internal/logger"
	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/snapshot"
	"github.com/julianstephens/pkm/internal/storage"
	"github.com/julianstephens/pkm/internal/validation"
)

type ImportCmd struct {
	GenerateFlags `embed:""`
	From          string `help:"Import an existing snapshot instead of generating a new dataset." type:"existingfile"`
	Snapshot      string `help:"Snapshot file to write." type:"path" default:"demo_data.json"`
	Yes           bool   `short:"y" help:"Replace the existing store without asking."`
}

func (cmd *ImportCmd) dataset(c *Context) (models.Dataset, error) {
	if cmd.From == "" {
		return cmd.generate(c)
	}

	ds, err := snapshot.Read(cmd.From)
	if err != nil {
		return models.Dataset{}, err
	}
	result := validation.NewInLocation(c.loc()).ValidateDataset(ds)
	if result.HasErrors() {
		fmt.Fprint(c.errOut(), result.FormatReport())
		return models.Dataset{}, fmt.Errorf("snapshot %s failed validation with %d errors", cmd.From, result.Count(validation.SeverityError))
	}
	for _, conflict := range result.Conflicts {
		// reported by the importer once the catalog is known
		if conflict.Type == validation.ConflictUnknownHabit {
			continue
		}
		pkmerrors.Warn(c.errOut(), "%s", conflict.Description)
	}
	return ds, nil
}

func (cmd *ImportCmd) Run(c *Context) error {
	ctx := context.Background()

	ds, err := cmd.dataset(c)
	if err != nil {
		return err
	}
	writeSnapshot := cmd.From == "" || filepath.Clean(cmd.From) != filepath.Clean(cmd.Snapshot)
	if writeSnapshot {
		if err := snapshot.Write(cmd.Snapshot, ds); err != nil {
			return err
		}
	}

	target, err := c.Target()
	if err != nil {
		return err
	}

	if !cmd.Yes && (target.Kind == storage.KindPostgres || fileExists(target.Path)) {
		ok, err := confirm(
			"Replace "+target.String()+"?",
			"The existing store will be replaced by the new dataset once it has been fully imported.",
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.out(), "Import cancelled.")
			return nil
		}
	}

	lockPath := c.lockPath(target)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0700); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	l, err := lock.Acquire(lockPath)
	if err != nil {
		return err
	}
	defer l.Release()

	opts := storage.ReplaceOptions{}
	if cmd.From == "" {
		opts.RunID = ds.Meta.RunID
	}
	if target.Kind == storage.KindSQLite {
		opts.BeforeSwap = backup.NewManager(target.Path).BeforeReplace
	}

	var report importer.Report
	err = storage.Replace(ctx, target, opts, func(ctx context.Context, s *storage.Store) error {
		s.SetLocation(c.loc())
		var err error
		report, err = importer.ForStore(s).Import(ctx, ds)
		return err
	})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	logger.Info("Import complete", "target", target.String(), "skipped", len(report.Skipped))

	pkmerrors.WarnSkipped(c.errOut(), report.Skipped)

	fmt.Fprintf(c.out(), "✓ Imported %d days into %s\n", ds.Meta.Days, target)
	writeCounts(c.out(), "Inserted", report.Inserted)
	writeRow(c.out(), "metric readings", report.Readings)
	if len(report.Skipped) > 0 {
		writeRow(c.out(), "skipped", len(report.Skipped))
	}
	if writeSnapshot {
		fmt.Fprintf(c.out(), "\nSnapshot written to %s\n", cmd.Snapshot)
	}
	return nil
}
