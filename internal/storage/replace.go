package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/logger"
)

// BuildFunc fills a freshly bootstrapped store
type BuildFunc func(ctx context.Context, s *Store) error

// ReplaceOptions controls a store replacement
type ReplaceOptions struct {
	// RunID names the temporary store; a random id is used when empty
	RunID string
	// BeforeSwap runs after the new store is built and before it takes the
	// place of the old one. An error aborts the swap.
	BeforeSwap func(ctx context.Context) error
}

// Replace builds a new generation of the store next to the current one and
// swaps it in only once build has succeeded. The current store is never
// touched before the swap, so a failed run leaves it as it was.
//
// SQLite stores are built in <path>.<runid>.tmp and renamed over the target.
// PostgreSQL stores are built in a staging schema that is renamed over the
// target schema in a single transaction.
func Replace(ctx context.Context, target Target, opts ReplaceOptions, build BuildFunc) error {
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if target.Kind == KindPostgres {
		return replacePostgres(ctx, target, opts, build)
	}
	return replaceSQLite(ctx, target, opts, build)
}

func buildInto(ctx context.Context, target Target, build BuildFunc) error {
	s, err := Open(ctx, target)
	if err != nil {
		return err
	}

	if err := s.Bootstrap(ctx); err != nil {
		s.Close()
		return err
	}
	if err := build(ctx, s); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}

func replaceSQLite(ctx context.Context, target Target, opts ReplaceOptions, build BuildFunc) (err error) {
	tmp := target
	tmp.Path = fmt.Sprintf("%s.%s.tmp", target.Path, opts.RunID)
	if err := os.Remove(tmp.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear temporary store: %w", err)
	}

	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmp.Path); rmErr != nil && !os.IsNotExist(rmErr) {
				logger.Warn("Failed to remove temporary store", "path", tmp.Path, "error", rmErr)
			}
		}
	}()

	logger.Debug("Building replacement store", "path", tmp.Path)
	if err := buildInto(ctx, tmp, build); err != nil {
		return err
	}

	if opts.BeforeSwap != nil {
		if err := opts.BeforeSwap(ctx); err != nil {
			return err
		}
	}

	if err := os.Rename(tmp.Path, target.Path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	logger.ForRun(opts.RunID).Info("Replaced store", "path", target.Path)
	return nil
}

func replacePostgres(ctx context.Context, target Target, opts ReplaceOptions, build BuildFunc) (err error) {
	live := target.schema()
	staging := live + constants.PostgresStagingSuffix

	admin, err := Open(ctx, target)
	if err != nil {
		return err
	}
	defer admin.Close()

	dropStaging := "DROP SCHEMA IF EXISTS " + quoteIdent(staging) + " CASCADE"
	if _, err := admin.db.ExecContext(ctx, dropStaging); err != nil {
		return fmt.Errorf("failed to clear staging schema: %w", err)
	}

	defer func() {
		if err != nil {
			if _, dropErr := admin.db.ExecContext(context.Background(), dropStaging); dropErr != nil {
				logger.Warn("Failed to drop staging schema", "schema", staging, "error", dropErr)
			}
		}
	}()

	stage := target
	stage.Schema = staging
	logger.Debug("Building replacement schema", "schema", staging)
	if err := buildInto(ctx, stage, build); err != nil {
		return err
	}

	if opts.BeforeSwap != nil {
		if err := opts.BeforeSwap(ctx); err != nil {
			return err
		}
	}

	err = WithTx(ctx, admin.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DROP SCHEMA IF EXISTS "+quoteIdent(live)+" CASCADE"); err != nil {
			return fmt.Errorf("failed to drop schema %s: %w", live, err)
		}
		if _, err := tx.ExecContext(ctx, "ALTER SCHEMA "+quoteIdent(staging)+" RENAME TO "+quoteIdent(live)); err != nil {
			return fmt.Errorf("failed to promote schema %s: %w", staging, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.ForRun(opts.RunID).Info("Replaced schema", "schema", live)
	return nil
}
