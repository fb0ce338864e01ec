package generator

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/logger"
	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/trait"
	"github.com/julianstephens/pkm/internal/utils"
)

// ErrInvalidSpan is returned when the end of a span precedes its start.
var ErrInvalidSpan = errors.New("end date is before start date")

// Generate produces a dataset covering every calendar day from start to end,
// inclusive. Both ends are normalized to day boundaries in start's location.
func (g *Generator) Generate(start, end time.Time) (models.Dataset, error) {
	start = utils.StartOfDay(start)
	end = utils.EndOfDay(end.In(start.Location()))
	if end.Before(start) {
		return models.Dataset{}, fmt.Errorf("%w: %s > %s", ErrInvalidSpan,
			start.Format(constants.DateFormat), end.Format(constants.DateFormat))
	}

	totalDays := utils.DaysBetween(start, end)
	model := trait.NewModel(g.rng, g.opts.Mode, totalDays)

	ds := models.Dataset{
		Meta: models.DatasetMeta{
			RunID:       uuid.NewString(),
			GeneratedAt: g.opts.Now(),
			StartDate:   start.Format(constants.DateFormat),
			EndDate:     end.Format(constants.DateFormat),
			Days:        totalDays + 1,
			Seed:        g.seed,
		},
		Habits: g.Habits(),
	}

	logger.Debug("Generating dataset",
		"start", ds.Meta.StartDate, "end", ds.Meta.EndDate, "days", ds.Meta.Days, "seed", g.seed, "mode", g.opts.Mode)

	for i := 0; ; i++ {
		cur := start.AddDate(0, 0, i)
		if cur.After(end) {
			break
		}

		d := day{start: utils.StartOfDay(cur), active: model.Day(i)}
		if err := g.generateDay(&ds, d); err != nil {
			return models.Dataset{}, fmt.Errorf("generating %s: %w", d.date(), err)
		}
	}

	c := ds.Counts()
	logger.Info("Generated dataset",
		"run", ds.Meta.RunID, "days", ds.Meta.Days,
		"daily_entries", c.DailyEntries, "sub_daily_moods", c.SubDailyMoods,
		"work_logs", c.WorkLogs, "habit_logs", c.HabitLogs, "alcohol_logs", c.AlcoholLogs)

	return ds, nil
}

// generateDay appends one day's records to ds, in generation order.
func (g *Generator) generateDay(ds *models.Dataset, d day) error {
	entry, err := g.dailyEntry(d)
	if err != nil {
		return err
	}
	ds.DailyEntries = append(ds.DailyEntries, entry)

	moods, err := g.subDailyMoods(d)
	if err != nil {
		return err
	}
	ds.SubDailyMoods = append(ds.SubDailyMoods, moods...)

	metric, err := g.dailyMetric(d)
	if err != nil {
		return err
	}
	ds.DailyMetrics = append(ds.DailyMetrics, metric)

	work, err := g.workLogs(d)
	if err != nil {
		return err
	}
	ds.WorkLogs = append(ds.WorkLogs, work...)

	habits, err := g.habitLogs(d)
	if err != nil {
		return err
	}
	ds.HabitLogs = append(ds.HabitLogs, habits...)

	alcohol, err := g.alcoholLog(d)
	if err != nil {
		return err
	}
	if alcohol != nil {
		ds.AlcoholLogs = append(ds.AlcoholLogs, *alcohol)
	}
	return nil
}

// SpanForMonths returns the span covering floor(months*30) days and ending on
// now's calendar day. Spans shorter than a day cover just that day.
func SpanForMonths(months float64, now time.Time) (time.Time, time.Time, error) {
	if math.IsNaN(months) || math.IsInf(months, 0) || months <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("months must be a positive number, got %v", months)
	}

	days := int(math.Floor(months * constants.DaysPerMonth))
	if days < 1 {
		days = 1
	}

	end := utils.EndOfDay(now)
	start := utils.StartOfDay(now).AddDate(0, 0, -(days - 1))
	return start, end, nil
}

// GenerateMonths produces a dataset covering floor(months*30) days ending today.
func (g *Generator) GenerateMonths(months float64) (models.Dataset, error) {
	start, end, err := SpanForMonths(months, g.opts.Now())
	if err != nil {
		return models.Dataset{}, err
	}
	return g.Generate(start, end)
}
