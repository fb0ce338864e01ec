package storage

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/models"
)

var knownTables = []string{
	constants.TableHabits,
	constants.TableDailyEntries,
	constants.TableSubDailyMoods,
	constants.TableDailyMetrics,
	constants.TableMetricReadings,
	constants.TableWorkLogs,
	constants.TableHabitLogs,
	constants.TableAlcoholLogs,
	constants.TableDrinkTypes,
	constants.TableDailyLogs,
}

// Check reports the row count and the first samples rows of each table.
func (s *Store) Check(ctx context.Context, tables []string, samples int) ([]models.TableReport, error) {
	reports := make([]models.TableReport, 0, len(tables))
	for _, table := range tables {
		if !slices.Contains(knownTables, table) {
			return nil, fmt.Errorf("unknown table %q", table)
		}

		report := models.TableReport{Table: table}
		if err := s.queryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&report.Count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}

		if samples > 0 {
			if err := s.sampleRows(ctx, &report, samples); err != nil {
				return nil, err
			}
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *Store) sampleRows(ctx context.Context, report *models.TableReport, limit int) error {
	rows, err := s.query(ctx, "SELECT * FROM "+report.Table+" ORDER BY id LIMIT ?", limit)
	if err != nil {
		return fmt.Errorf("failed to sample %s: %w", report.Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read columns of %s: %w", report.Table, err)
	}
	report.Columns = cols

	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("failed to scan %s: %w", report.Table, err)
		}

		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		report.Samples = append(report.Samples, row)
	}
	return rows.Err()
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(constants.DateFormat)
		}
		return v.Format(constants.TimestampFormat)
	default:
		return fmt.Sprint(v)
	}
}
