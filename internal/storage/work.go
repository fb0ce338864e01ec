package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/utils"
)

// WorkHours sums logged hours per project from the start of the timeframe up
// to now. When nothing was logged the sample distribution is returned.
func (s *Store) WorkHours(ctx context.Context, tf models.Timeframe, now time.Time) (models.WorkReport, error) {
	since := utils.StartOfDay(now.In(s.loc)).AddDate(0, 0, -tf.Days()).Format(constants.DateFormat)

	rows, err := s.query(ctx, `
		SELECT project, SUM(total_hours)
		FROM work_logs
		WHERE date >= ?
		GROUP BY project
		ORDER BY project`, since)
	if err != nil {
		return models.WorkReport{}, fmt.Errorf("failed to query work hours: %w", err)
	}
	defer rows.Close()

	report := models.WorkReport{Timeframe: tf}
	for rows.Next() {
		var project sql.NullString
		var hours sql.NullFloat64
		if err := rows.Scan(&project, &hours); err != nil {
			return models.WorkReport{}, fmt.Errorf("failed to scan work hours: %w", err)
		}
		report.Categories = append(report.Categories, models.CategoryHours{
			Category: project.String,
			Hours:    hours.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return models.WorkReport{}, err
	}

	if len(report.Categories) == 0 {
		return models.SampleWorkReport(tf), nil
	}
	return report, nil
}

// LogWork records hours spent on category, starting now.
func (s *Store) LogWork(ctx context.Context, category string, hours float64, now time.Time) (models.WorkLog, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return models.WorkLog{}, fmt.Errorf("category cannot be empty")
	}
	if !(hours > 0) || math.IsInf(hours, 0) {
		return models.WorkLog{}, fmt.Errorf("hours must be positive, got %v", hours)
	}

	start := now.In(s.loc).Truncate(time.Second)
	log := models.WorkLog{
		Date:        start.Format(constants.DateFormat),
		StartTime:   start,
		EndTime:     start.Add(utils.HoursDuration(hours)),
		Project:     category,
		Description: fmt.Sprintf("Work logged for %s", category),
		TotalHours:  hours,
	}

	if err := s.writer(s.db).WorkLog(ctx, log); err != nil {
		return models.WorkLog{}, err
	}
	return log, nil
}
