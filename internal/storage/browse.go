package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/pkm/internal/models"
)

// ListDays returns one summary per date that has a daily entry or a daily
// metric, newest first.
func (s *Store) ListDays(ctx context.Context) ([]models.DaySummary, error) {
	days := make(map[string]*models.DaySummary)
	get := func(date string) *models.DaySummary {
		d, ok := days[date]
		if !ok {
			d = &models.DaySummary{Date: date}
			days[date] = d
		}
		return d
	}

	rows, err := s.query(ctx, "SELECT date, content FROM daily_entries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query daily entries: %w", err)
	}
	for rows.Next() {
		var date sqlDate
		var raw []byte
		if err := rows.Scan(&date, &raw); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan daily entry: %w", err)
		}
		content, err := decodeEntryContent(raw)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("daily entry %s: %w", date.String, err)
		}
		d := get(date.String)
		d.Mood = content.Mood
		d.TraitState = content.TraitState
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.query(ctx, "SELECT date, mood_rating, energy_level, sleep_hours FROM daily_metrics ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query daily metrics: %w", err)
	}
	for rows.Next() {
		var date sqlDate
		var mood, energy nullInt
		var sleep sql.NullFloat64
		if err := rows.Scan(&date, &mood, &energy, &sleep); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan daily metric: %w", err)
		}
		d := get(date.String)
		d.HasMetric = true
		d.MoodRating = mood.Int()
		d.EnergyLevel = energy.Int()
		d.SleepHours = sleep.Float64
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	summaries := make([]models.DaySummary, 0, len(days))
	for _, d := range days {
		summaries = append(summaries, *d)
	}
	slices.SortFunc(summaries, func(a, b models.DaySummary) int {
		return strings.Compare(b.Date, a.Date)
	})
	return summaries, nil
}

func decodeEntryContent(raw []byte) (models.DailyEntryContent, error) {
	var content models.DailyEntryContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return content, fmt.Errorf("failed to decode content: %w", err)
	}
	return content, nil
}

// DayDetail returns everything stored for date.
func (s *Store) DayDetail(ctx context.Context, date string) (models.DayDetail, error) {
	from, to, err := dayBounds(date, s.loc)
	if err != nil {
		return models.DayDetail{}, err
	}
	detail := models.DayDetail{Date: date}

	var raw []byte
	err = s.queryRow(ctx, "SELECT content FROM daily_entries WHERE date = ? ORDER BY id LIMIT 1", date).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return detail, fmt.Errorf("failed to query daily entry: %w", err)
	default:
		content, err := decodeEntryContent(raw)
		if err != nil {
			return detail, fmt.Errorf("daily entry %s: %w", date, err)
		}
		detail.Entry = &content
	}

	if detail.Metric, err = s.dailyMetric(ctx, date); err != nil {
		return detail, err
	}
	if detail.Moods, err = s.subDailyMoods(ctx, from, to); err != nil {
		return detail, err
	}
	if detail.WorkLogs, err = s.workLogs(ctx, date); err != nil {
		return detail, err
	}
	if detail.HabitLogs, err = s.habitLogs(ctx, from, to); err != nil {
		return detail, err
	}
	if detail.Alcohol, err = s.alcoholLogs(ctx, date); err != nil {
		return detail, err
	}

	row := s.queryRow(ctx, "SELECT date, content, created_at, updated_at FROM daily_logs WHERE date = ?", date)
	log, err := s.scanDailyLog(row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return detail, fmt.Errorf("failed to query daily log: %w", err)
	default:
		detail.JournalLog = &log
	}
	return detail, nil
}

func (s *Store) dailyMetric(ctx context.Context, date string) (*models.DailyMetric, error) {
	var id int64
	var mood, energy nullInt
	var sleep sql.NullFloat64
	var notes sql.NullString
	err := s.queryRow(ctx, `
		SELECT id, mood_rating, energy_level, sleep_hours, notes
		FROM daily_metrics
		WHERE date = ?
		ORDER BY id
		LIMIT 1`, date).Scan(&id, &mood, &energy, &sleep, &notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query daily metric: %w", err)
	}

	metric := &models.DailyMetric{
		Date:        date,
		MoodRating:  mood.Int(),
		EnergyLevel: energy.Int(),
		SleepHours:  sleep.Float64,
		Notes:       notes.String,
	}

	rows, err := s.query(ctx, `
		SELECT taken_at, type, value, notes
		FROM metric_readings
		WHERE daily_metric_id = ?
		ORDER BY taken_at, id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query metric readings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		takenAt := newSQLTime(s.loc)
		var typ string
		var r models.MetricReading
		var notes sql.NullString
		if err := rows.Scan(takenAt, &typ, &r.Value, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan metric reading: %w", err)
		}
		r.Timestamp = takenAt.Time
		r.Type = models.MetricType(typ)
		r.Notes = notes.String
		metric.Readings = append(metric.Readings, r)
	}
	return metric, rows.Err()
}

func (s *Store) workLogs(ctx context.Context, date string) ([]models.WorkLog, error) {
	rows, err := s.query(ctx, `
		SELECT start_time, end_time, project, description, total_hours
		FROM work_logs
		WHERE date = ?
		ORDER BY start_time, id`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query work logs: %w", err)
	}
	defer rows.Close()

	var logs []models.WorkLog
	for rows.Next() {
		start, end := newSQLTime(s.loc), newSQLTime(s.loc)
		var project, description sql.NullString
		var hours sql.NullFloat64
		if err := rows.Scan(start, end, &project, &description, &hours); err != nil {
			return nil, fmt.Errorf("failed to scan work log: %w", err)
		}
		logs = append(logs, models.WorkLog{
			Date:        date,
			StartTime:   start.Time,
			EndTime:     end.Time,
			Project:     project.String,
			Description: description.String,
			TotalHours:  hours.Float64,
		})
	}
	return logs, rows.Err()
}

func (s *Store) habitLogs(ctx context.Context, from, to string) ([]models.HabitLog, error) {
	rows, err := s.query(ctx, `
		SELECT h.name, hl.completed_at, hl.notes
		FROM habit_logs hl
		JOIN habits h ON h.id = hl.habit_id
		WHERE hl.completed_at >= ? AND hl.completed_at < ?
		ORDER BY hl.completed_at, h.name`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query habit logs: %w", err)
	}
	defer rows.Close()

	var logs []models.HabitLog
	for rows.Next() {
		completed := newSQLTime(s.loc)
		var log models.HabitLog
		var notes sql.NullString
		if err := rows.Scan(&log.Habit, completed, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		log.CompletedAt = completed.Time
		log.Notes = notes.String
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (s *Store) alcoholLogs(ctx context.Context, date string) ([]models.AlcoholLog, error) {
	rows, err := s.query(ctx, `
		SELECT drink_type, units, notes
		FROM alcohol_logs
		WHERE date = ?
		ORDER BY id`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query alcohol logs: %w", err)
	}
	defer rows.Close()

	var logs []models.AlcoholLog
	for rows.Next() {
		log := models.AlcoholLog{Date: date}
		var notes sql.NullString
		if err := rows.Scan(&log.DrinkType, &log.Units, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan alcohol log: %w", err)
		}
		log.Notes = notes.String
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
