package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/models"
)

const recentAlcoholLimit = 50

// AlcoholOverview returns the drink catalog, the most recent logs and the
// units logged in the seven days before now.
func (s *Store) AlcoholOverview(ctx context.Context, now time.Time) (models.AlcoholOverview, error) {
	var overview models.AlcoholOverview

	rows, err := s.query(ctx, "SELECT name FROM drink_types ORDER BY name")
	if err != nil {
		return overview, fmt.Errorf("failed to query drink types: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return overview, fmt.Errorf("failed to scan drink type: %w", err)
		}
		overview.DrinkTypes = append(overview.DrinkTypes, name)
	}
	if err := closeRows(rows); err != nil {
		return overview, err
	}

	rows, err = s.query(ctx, `
		SELECT id, date, drink_type, units, notes
		FROM alcohol_logs
		ORDER BY date DESC, id DESC
		LIMIT ?`, recentAlcoholLimit)
	if err != nil {
		return overview, fmt.Errorf("failed to query alcohol logs: %w", err)
	}
	for rows.Next() {
		var e models.AlcoholEntry
		var date sqlDate
		var notes sql.NullString
		if err := rows.Scan(&e.ID, &date, &e.DrinkType, &e.Units, &notes); err != nil {
			rows.Close()
			return overview, fmt.Errorf("failed to scan alcohol log: %w", err)
		}
		e.Date = date.String
		e.Notes = notes.String
		overview.Recent = append(overview.Recent, e)
	}
	if err := closeRows(rows); err != nil {
		return overview, err
	}

	since := now.In(s.loc).AddDate(0, 0, -7).Format(constants.DateFormat)
	var units sql.NullFloat64
	if err := s.queryRow(ctx, "SELECT SUM(units) FROM alcohol_logs WHERE date >= ?", since).Scan(&units); err != nil {
		return overview, fmt.Errorf("failed to sum weekly units: %w", err)
	}
	overview.WeeklyUnits = units.Float64
	return overview, nil
}

func validateAlcoholLog(log models.AlcoholLog) error {
	if strings.TrimSpace(log.DrinkType) == "" {
		return fmt.Errorf("drink type cannot be empty")
	}
	if log.Units <= 0 {
		return fmt.Errorf("units must be positive, got %v", log.Units)
	}
	return nil
}

// LogAlcohol stores a drink, registering its type in the catalog, and returns
// the id of the new log.
func (s *Store) LogAlcohol(ctx context.Context, log models.AlcoholLog, now time.Time) (int64, error) {
	if err := validateAlcoholLog(log); err != nil {
		return 0, err
	}
	if log.Date == "" {
		log.Date = now.In(s.loc).Format(constants.DateFormat)
	}

	var id int64
	err := WithTx(ctx, s.db, func(tx *sql.Tx) error {
		w := s.writer(tx)
		if err := w.EnsureDrinkType(ctx, log.DrinkType, now); err != nil {
			return err
		}
		var err error
		id, err = w.AlcoholLog(ctx, log, now)
		return err
	})
	return id, err
}

// UpdateAlcoholLog replaces the drink type, units and notes of a stored log.
func (s *Store) UpdateAlcoholLog(ctx context.Context, id int64, drinkType string, units float64, notes string) error {
	if err := validateAlcoholLog(models.AlcoholLog{DrinkType: drinkType, Units: units}); err != nil {
		return err
	}

	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.writer(tx).EnsureDrinkType(ctx, drinkType, time.Now()); err != nil {
			return err
		}
		n, err := s.dialect.Exec(ctx, tx, `
			UPDATE alcohol_logs
			SET drink_type = ?, units = ?, notes = ?
			WHERE id = ?`, drinkType, units, notes, id)
		if err != nil {
			return fmt.Errorf("failed to update alcohol log %d: %w", id, err)
		}
		if n == 0 {
			return fmt.Errorf("alcohol log %d: %w", id, ErrNotFound)
		}
		return nil
	})
}
