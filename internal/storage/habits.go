package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/pkm/internal/models"
)

// Habits returns the habit catalog ordered by name.
func (s *Store) Habits(ctx context.Context) ([]models.Habit, error) {
	rows, err := s.query(ctx, "SELECT name, frequency FROM habits ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		var freq string
		if err := rows.Scan(&h.Name, &freq); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		h.Frequency = models.Frequency(freq)
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// HabitSummaries returns every habit with its completions in the seven days
// before now, most completed first.
func (s *Store) HabitSummaries(ctx context.Context, now time.Time) ([]models.HabitSummary, error) {
	cutoff := timestampArg(now.AddDate(0, 0, -7), s.loc)

	rows, err := s.query(ctx, fmt.Sprintf(`
		SELECT h.name, h.frequency, COUNT(hl.id) AS completions, %s AS notes
		FROM habits h
		LEFT JOIN habit_logs hl ON h.id = hl.habit_id AND hl.completed_at >= ?
		GROUP BY h.name, h.frequency
		ORDER BY completions DESC, h.name`, s.dialect.GroupConcat("NULLIF(hl.notes, '')")), cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query habit summaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.HabitSummary
	for rows.Next() {
		var sum models.HabitSummary
		var freq string
		var notes sql.NullString
		if err := rows.Scan(&sum.Name, &freq, &sum.Count, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan habit summary: %w", err)
		}
		sum.Frequency = models.Frequency(freq)
		sum.Notes = notes.String
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// LogHabit records a completion of the named habit at now, adding the habit
// to the catalog when it is new.
func (s *Store) LogHabit(ctx context.Context, name, notes string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}

	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		w := s.writer(tx)
		if _, err := w.EnsureHabit(ctx, models.Habit{Name: name, Frequency: models.FrequencyDaily}, now); err != nil {
			return err
		}

		var id int64
		err := tx.QueryRowContext(ctx, s.dialect.Rebind("SELECT id FROM habits WHERE name = ?"), name).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to look up habit %q: %w", name, err)
		}
		return w.HabitLog(ctx, id, models.HabitLog{Habit: name, CompletedAt: now, Notes: notes})
	})
}

// DeleteHabit removes the named habit together with its logs.
func (s *Store) DeleteHabit(ctx context.Context, name string) error {
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.dialect.Exec(ctx, tx, "DELETE FROM habit_logs WHERE habit_id IN (SELECT id FROM habits WHERE name = ?)", name); err != nil {
			return fmt.Errorf("failed to delete logs of habit %q: %w", name, err)
		}
		n, err := s.dialect.Exec(ctx, tx, "DELETE FROM habits WHERE name = ?", name)
		if err != nil {
			return fmt.Errorf("failed to delete habit %q: %w", name, err)
		}
		if n == 0 {
			return fmt.Errorf("habit %q: %w", name, ErrNotFound)
		}
		return nil
	})
}
