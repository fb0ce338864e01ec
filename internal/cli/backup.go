package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/pkm/internal/backup"
	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/lock"
	"github.com/julianstephens/pkm/internal/storage"
)

var errBackupUnsupported = errors.New("backups are only supported for SQLite stores; use pg_dump for PostgreSQL")

func (c *Context) backupManager() (*backup.Manager, storage.Target, error) {
	target, err := c.Target()
	if err != nil {
		return nil, storage.Target{}, err
	}
	if target.Kind != storage.KindSQLite {
		return nil, target, errBackupUnsupported
	}
	return backup.NewManager(target.Path), target, nil
}

type BackupCreateCmd struct{}

func (cmd *BackupCreateCmd) Run(c *Context) error {
	mgr, _, err := c.backupManager()
	if err != nil {
		return err
	}

	backupPath, err := mgr.CreateBackup(context.Background())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Fprintf(c.out(), "✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (cmd *BackupListCmd) Run(c *Context) error {
	mgr, _, err := c.backupManager()
	if err != nil {
		return err
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	w := c.out()
	if len(backups) == 0 {
		fmt.Fprintln(w, "No backups found.")
		fmt.Fprintf(w, "Backups are stored in: %s\n", mgr.BackupDir())
		return nil
	}

	fmt.Fprintf(w, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format(constants.TimestampFormat)
		fmt.Fprintf(w, "  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	fmt.Fprintf(w, "\nBackup directory: %s\n", mgr.BackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Restore without asking."`
}

func (cmd *BackupRestoreCmd) Run(c *Context) error {
	mgr, target, err := c.backupManager()
	if err != nil {
		return err
	}

	backupPath := cmd.BackupFile
	if !filepath.IsAbs(backupPath) {
		possiblePath := filepath.Join(mgr.BackupDir(), cmd.BackupFile)
		if _, err := os.Stat(possiblePath); err == nil {
			backupPath = possiblePath
		}
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	if !cmd.Yes {
		ok, err := confirm(
			"Restore "+filepath.Base(backupPath)+"?",
			"This replaces the current store. A backup of it is created first.",
		)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.out(), "Restore cancelled.")
			return nil
		}
	}

	l, err := lock.Acquire(c.lockPath(target))
	if err != nil {
		return err
	}
	defer l.Release()

	previous, err := mgr.RestoreBackup(context.Background(), backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Fprintln(c.out(), "✓ Database restored successfully!")
	if previous != "" {
		fmt.Fprintf(c.out(), "  Previous store saved as %s\n", filepath.Base(previous))
	}
	return nil
}
