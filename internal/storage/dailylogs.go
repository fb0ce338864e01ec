package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/utils"
)

const recentDailyLogLimit = 30

// SaveDailyLog writes the journal page of date, replacing its content when
// the page already exists.
func (s *Store) SaveDailyLog(ctx context.Context, date, content string, now time.Time) error {
	if !utils.ValidateDateFormat(date) {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	ts := timestampArg(now, s.loc)
	_, err := s.exec(ctx, `
		INSERT INTO daily_logs (date, content, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date) DO UPDATE
		SET content = excluded.content, updated_at = excluded.updated_at`,
		date, content, ts, ts)
	if err != nil {
		return fmt.Errorf("failed to save daily log %s: %w", date, err)
	}
	return nil
}

// RecentDailyLogs returns the latest journal pages, newest first.
func (s *Store) RecentDailyLogs(ctx context.Context) ([]models.DailyLog, error) {
	rows, err := s.query(ctx, `
		SELECT date, content, created_at, updated_at
		FROM daily_logs
		ORDER BY date DESC
		LIMIT ?`, recentDailyLogLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily logs: %w", err)
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		log, err := s.scanDailyLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *Store) scanDailyLog(row rowScanner) (models.DailyLog, error) {
	var date sqlDate
	var content sql.NullString
	created, updated := newSQLTime(s.loc), newSQLTime(s.loc)
	if err := row.Scan(&date, &content, created, updated); err != nil {
		return models.DailyLog{}, err
	}
	return models.DailyLog{
		Date:      date.String,
		Content:   content.String,
		CreatedAt: created.Time,
		UpdatedAt: updated.Time,
	}, nil
}
