package storage

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/utils"
)

// dayBounds returns the [start, end) timestamp parameters of a date in loc.
func dayBounds(date string, loc *time.Location) (string, string, error) {
	day, err := utils.ParseDateInLocation(date, loc)
	if err != nil {
		return "", "", err
	}
	return utils.FormatTimestamp(day), utils.FormatTimestamp(day.AddDate(0, 0, 1)), nil
}

// DailyData returns the mood and energy observations of a date sorted by time.
// The daily metric is placed at noon.
func (s *Store) DailyData(ctx context.Context, date string) ([]models.DataPoint, error) {
	day, err := utils.ParseDateInLocation(date, s.loc)
	if err != nil {
		return nil, err
	}
	from, to, err := dayBounds(date, s.loc)
	if err != nil {
		return nil, err
	}

	var points []models.DataPoint

	rows, err := s.query(ctx, `
		SELECT mood_rating, energy_level
		FROM daily_metrics
		WHERE date = ?
		ORDER BY id`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily metrics: %w", err)
	}
	noon := day.Add(12 * time.Hour)
	for rows.Next() {
		var mood, energy nullInt
		if err := rows.Scan(&mood, &energy); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan daily metric: %w", err)
		}
		points = append(points, models.DataPoint{
			Timestamp: noon,
			Source:    models.SourceDailyMetric,
			Mood:      mood.Int(),
			Energy:    energy.Int(),
		})
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	moods, err := s.subDailyMoods(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, m := range moods {
		points = append(points, models.DataPoint{
			Timestamp: m.LoggedAt,
			Source:    models.SourceSubDailyMood,
			Mood:      m.Mood,
			Energy:    m.Energy,
		})
	}

	slices.SortStableFunc(points, func(a, b models.DataPoint) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return points, nil
}

func (s *Store) subDailyMoods(ctx context.Context, from, to string) ([]models.SubDailyMood, error) {
	rows, err := s.query(ctx, `
		SELECT logged_at, mood, energy, notes
		FROM sub_daily_moods
		WHERE logged_at >= ? AND logged_at < ?
		ORDER BY logged_at, id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sub-daily moods: %w", err)
	}
	defer rows.Close()

	var moods []models.SubDailyMood
	for rows.Next() {
		loggedAt := newSQLTime(s.loc)
		var mood, energy nullInt
		var notes sql.NullString
		if err := rows.Scan(loggedAt, &mood, &energy, &notes); err != nil {
			return nil, fmt.Errorf("failed to scan sub-daily mood: %w", err)
		}
		moods = append(moods, models.SubDailyMood{
			LoggedAt: loggedAt.Time,
			Mood:     mood.Int(),
			Energy:   energy.Int(),
			Notes:    notes.String,
		})
	}
	return moods, rows.Err()
}
