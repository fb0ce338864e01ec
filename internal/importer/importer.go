package importer

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/pkm/internal/logger"
	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/storage"
)

// SkippedRecord is a record the importer dropped instead of failing the run
type SkippedRecord struct {
	Kind   string
	At     time.Time
	Name   string
	Reason string
}

func (s SkippedRecord) String() string {
	return fmt.Sprintf("%s %q at %s: %s", s.Kind, s.Name, s.At.Format(time.RFC3339), s.Reason)
}

// Report summarizes an import
type Report struct {
	// Inserted counts the rows written per collection. Habits already in
	// the catalog, and repeated names within the dataset, are not counted.
	Inserted models.Counts
	// Readings is the number of metric readings written
	Readings int
	Skipped  []SkippedRecord
}

// Importer writes datasets into a bootstrapped relational store
type Importer struct {
	db      *sql.DB
	dialect storage.Dialect
	loc     *time.Location
	now     func() time.Time
}

// New returns an importer writing timestamps in the local zone.
func New(db *sql.DB, dialect storage.Dialect) *Importer {
	return &Importer{db: db, dialect: dialect, loc: time.Local, now: time.Now}
}

// ForStore returns an importer writing into s in the store's zone.
func ForStore(s *storage.Store) *Importer {
	im := New(s.DB(), s.Dialect())
	im.loc = s.Location()
	return im
}

// Import writes ds into db. See Importer.Import.
func Import(ctx context.Context, db *sql.DB, dialect storage.Dialect, ds models.Dataset) (Report, error) {
	return New(db, dialect).Import(ctx, ds)
}

// Import writes ds in two commit groups. The habit catalog is committed
// first; every other record is written in a single transaction that is
// rolled back as a whole on error. Habit logs naming a habit that is not in
// the committed catalog are skipped and reported.
func (im *Importer) Import(ctx context.Context, ds models.Dataset) (Report, error) {
	var report Report

	createdAt := ds.Meta.GeneratedAt
	if createdAt.IsZero() {
		createdAt = im.now()
	}

	runLog := logger.ForRun(ds.Meta.RunID)
	runLog.Info("Importing dataset", "days", ds.Meta.Days)

	err := storage.WithTx(ctx, im.db, func(tx *sql.Tx) error {
		w := storage.NewWriter(tx, im.dialect, im.loc)
		for _, h := range ds.Habits {
			added, err := w.EnsureHabit(ctx, h, createdAt)
			if err != nil {
				return err
			}
			if added {
				report.Inserted.Habits++
			}
		}
		return nil
	})
	if err != nil {
		return Report{}, fmt.Errorf("failed to import habits: %w", err)
	}
	runLog.Debug("Habit catalog committed", "habits", len(ds.Habits), "added", report.Inserted.Habits)

	err = storage.WithTx(ctx, im.db, func(tx *sql.Tx) error {
		return im.importRecords(ctx, tx, ds, createdAt, &report)
	})
	if err != nil {
		return Report{}, fmt.Errorf("failed to import records: %w", err)
	}

	runLog.Info("Dataset imported",
		"daily_entries", report.Inserted.DailyEntries,
		"habit_logs", report.Inserted.HabitLogs,
		"skipped", len(report.Skipped))
	return report, nil
}

func (im *Importer) importRecords(ctx context.Context, tx *sql.Tx, ds models.Dataset, createdAt time.Time, report *Report) error {
	w := storage.NewWriter(tx, im.dialect, im.loc)

	for _, e := range ds.DailyEntries {
		if err := w.DailyEntry(ctx, e, createdAt); err != nil {
			return err
		}
		report.Inserted.DailyEntries++
	}

	for _, m := range ds.SubDailyMoods {
		if err := w.SubDailyMood(ctx, m); err != nil {
			return err
		}
		report.Inserted.SubDailyMoods++
	}

	for _, m := range ds.DailyMetrics {
		if _, err := w.DailyMetric(ctx, m, createdAt); err != nil {
			return err
		}
		report.Inserted.DailyMetrics++
		report.Readings += len(m.Readings)
	}

	for _, log := range ds.WorkLogs {
		if err := w.WorkLog(ctx, log); err != nil {
			return err
		}
		report.Inserted.WorkLogs++
	}

	habitIDs, err := w.HabitIDs(ctx)
	if err != nil {
		return err
	}
	for _, log := range ds.HabitLogs {
		id, ok := habitIDs[log.Habit]
		if !ok {
			skipped := SkippedRecord{
				Kind:   "habit log",
				At:     log.CompletedAt,
				Name:   log.Habit,
				Reason: "habit not found in the database",
			}
			logger.ForRun(ds.Meta.RunID).Warn("Skipping habit log", "habit", log.Habit, "completed_at", log.CompletedAt, "reason", skipped.Reason)
			report.Skipped = append(report.Skipped, skipped)
			continue
		}
		if err := w.HabitLog(ctx, id, log); err != nil {
			return err
		}
		report.Inserted.HabitLogs++
	}

	for _, log := range ds.AlcoholLogs {
		if err := w.EnsureDrinkType(ctx, log.DrinkType, createdAt); err != nil {
			return err
		}
		if _, err := w.AlcoholLog(ctx, log, createdAt); err != nil {
			return err
		}
		report.Inserted.AlcoholLogs++
	}
	return nil
}
