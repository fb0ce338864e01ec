package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/keyring"
	"github.com/julianstephens/pkm/internal/lock"
	"github.com/julianstephens/pkm/internal/storage"
)

// Context carries the global flags into every command
type Context struct {
	DB        string
	Driver    string
	ConfigDir string
	Location  *time.Location
	Out       io.Writer
	Err       io.Writer
	Now       func() time.Time
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) errOut() io.Writer {
	if c.Err == nil {
		return os.Stderr
	}
	return c.Err
}

func (c *Context) loc() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now().In(c.loc())
	}
	return c.Now().In(c.loc())
}

func (c *Context) today() string {
	return c.now().Format(constants.DateFormat)
}

// Target resolves --db into a store target, reading the connection string
// from the OS keyring when --db is "keyring".
func (c *Context) Target() (storage.Target, error) {
	db, fromKeyring, err := keyring.Resolve(c.DB)
	if err != nil {
		return storage.Target{}, fmt.Errorf("failed to read connection string from keyring: %w", err)
	}
	if fromKeyring {
		return storage.PostgresTarget(db)
	}
	return storage.ParseTarget(db, c.Driver)
}

// OpenStore opens the configured store, which must already be bootstrapped.
func (c *Context) OpenStore(ctx context.Context) (*storage.Store, error) {
	target, err := c.Target()
	if err != nil {
		return nil, err
	}
	store, err := storage.OpenExisting(ctx, target)
	if err != nil {
		return nil, err
	}
	store.SetLocation(c.loc())
	return store, nil
}

// lockPath returns the lockfile guarding target. PostgreSQL stores are
// guarded by a lockfile in the config directory.
func (c *Context) lockPath(target storage.Target) string {
	if target.Kind == storage.KindSQLite {
		return lock.PathFor(target.Path)
	}
	return lock.PathFor(filepath.Join(c.ConfigDir, constants.AppName+"-"+target.Schema))
}

func parseDate(s string, loc *time.Location) (string, error) {
	t, err := time.ParseInLocation(constants.DateFormat, s, loc)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t.Format(constants.DateFormat), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
