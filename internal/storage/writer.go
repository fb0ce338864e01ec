package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/pkm/internal/models"
)

// Writer inserts records through a connection or transaction
type Writer struct {
	q       Querier
	dialect Dialect
	loc     *time.Location
}

// NewWriter returns a Writer that writes timestamps as wall-clock time in loc.
func NewWriter(q Querier, dialect Dialect, loc *time.Location) *Writer {
	if loc == nil {
		loc = time.Local
	}
	return &Writer{q: q, dialect: dialect, loc: loc}
}

func (s *Store) writer(q Querier) *Writer {
	return NewWriter(q, s.dialect, s.loc)
}

func (w *Writer) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	return w.dialect.Exec(ctx, w.q, query, args...)
}

func (w *Writer) ts(t time.Time) string {
	return timestampArg(t, w.loc)
}

// EnsureHabit adds the habit to the catalog unless a habit of that name
// exists. It reports whether a row was inserted.
func (w *Writer) EnsureHabit(ctx context.Context, h models.Habit, createdAt time.Time) (bool, error) {
	freq := h.Frequency
	if freq == "" {
		freq = models.FrequencyDaily
	}
	n, err := w.exec(ctx, `
		INSERT INTO habits (name, frequency, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO NOTHING`,
		h.Name, string(freq), w.ts(createdAt))
	if err != nil {
		return false, fmt.Errorf("failed to insert habit %q: %w", h.Name, err)
	}
	return n > 0, nil
}

// HabitIDs maps every habit name in the catalog to its id.
func (w *Writer) HabitIDs(ctx context.Context) (map[string]int64, error) {
	rows, err := w.q.QueryContext(ctx, "SELECT id, name FROM habits")
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

// EnsureDrinkType adds a drink type to the catalog unless it exists.
func (w *Writer) EnsureDrinkType(ctx context.Context, name string, createdAt time.Time) error {
	_, err := w.exec(ctx, `
		INSERT INTO drink_types (name, created_at)
		VALUES (?, ?)
		ON CONFLICT (name) DO NOTHING`,
		name, w.ts(createdAt))
	if err != nil {
		return fmt.Errorf("failed to insert drink type %q: %w", name, err)
	}
	return nil
}

// DailyEntry stores the entry with its content as a JSON blob.
func (w *Writer) DailyEntry(ctx context.Context, e models.DailyEntry, createdAt time.Time) error {
	content, err := json.Marshal(e.Content())
	if err != nil {
		return fmt.Errorf("failed to encode daily entry %s: %w", e.Date, err)
	}
	_, err = w.exec(ctx, `
		INSERT INTO daily_entries (date, content, created_at)
		VALUES (?, ?, ?)`,
		e.Date, string(content), w.ts(createdAt))
	if err != nil {
		return fmt.Errorf("failed to insert daily entry %s: %w", e.Date, err)
	}
	return nil
}

// SubDailyMood stores one mood observation.
func (w *Writer) SubDailyMood(ctx context.Context, m models.SubDailyMood) error {
	_, err := w.exec(ctx, `
		INSERT INTO sub_daily_moods (logged_at, mood, energy, notes)
		VALUES (?, ?, ?, ?)`,
		w.ts(m.LoggedAt), m.Mood, m.Energy, m.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert sub-daily mood at %s: %w", w.ts(m.LoggedAt), err)
	}
	return nil
}

// DailyMetric stores the metric and its readings, and returns the metric id.
func (w *Writer) DailyMetric(ctx context.Context, m models.DailyMetric, createdAt time.Time) (int64, error) {
	id, err := w.dialect.InsertID(ctx, w.q, `
		INSERT INTO daily_metrics (date, mood_rating, energy_level, sleep_hours, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.Date, m.MoodRating, m.EnergyLevel, m.SleepHours, m.Notes, w.ts(createdAt))
	if err != nil {
		return 0, fmt.Errorf("failed to insert daily metric %s: %w", m.Date, err)
	}

	for _, r := range m.Readings {
		_, err := w.exec(ctx, `
			INSERT INTO metric_readings (daily_metric_id, taken_at, type, value, notes)
			VALUES (?, ?, ?, ?, ?)`,
			id, w.ts(r.Timestamp), string(r.Type), r.Value, r.Notes)
		if err != nil {
			return 0, fmt.Errorf("failed to insert %s reading of %s: %w", r.Type, m.Date, err)
		}
	}
	return id, nil
}

// WorkLog stores a block of work.
func (w *Writer) WorkLog(ctx context.Context, log models.WorkLog) error {
	_, err := w.exec(ctx, `
		INSERT INTO work_logs (date, start_time, end_time, project, description, total_hours)
		VALUES (?, ?, ?, ?, ?, ?)`,
		log.Date, w.ts(log.StartTime), w.ts(log.EndTime), log.Project, log.Description, log.TotalHours)
	if err != nil {
		return fmt.Errorf("failed to insert work log %s: %w", log.Date, err)
	}
	return nil
}

// HabitLog stores a completion of the habit with the given id.
func (w *Writer) HabitLog(ctx context.Context, habitID int64, log models.HabitLog) error {
	_, err := w.exec(ctx, `
		INSERT INTO habit_logs (habit_id, completed_at, notes)
		VALUES (?, ?, ?)`,
		habitID, w.ts(log.CompletedAt), log.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert habit log %q: %w", log.Habit, err)
	}
	return nil
}

// AlcoholLog stores an alcohol log and returns its id. The drink type must
// already be in the catalog.
func (w *Writer) AlcoholLog(ctx context.Context, log models.AlcoholLog, createdAt time.Time) (int64, error) {
	id, err := w.dialect.InsertID(ctx, w.q, `
		INSERT INTO alcohol_logs (date, drink_type, units, notes, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		log.Date, log.DrinkType, log.Units, log.Notes, w.ts(createdAt))
	if err != nil {
		return 0, fmt.Errorf("failed to insert alcohol log %s: %w", log.Date, err)
	}
	return id, nil
}
