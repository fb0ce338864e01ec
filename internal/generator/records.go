package generator

import (
	"time"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/synth"
	"github.com/julianstephens/pkm/internal/utils"
)

// day is the per-day input shared by every record generator
type day struct {
	start  time.Time
	active bool
}

func (d day) date() string {
	return d.start.Format(constants.DateFormat)
}

// at returns the day's timestamp at hour:minute, resolved on the calendar.
func (d day) at(hour, minute int) time.Time {
	return time.Date(d.start.Year(), d.start.Month(), d.start.Day(), hour, minute, 0, 0, d.start.Location())
}

// intBetween returns a uniform integer in [lo, hi].
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// uniform returns a uniform float in [lo, hi) rounded to one decimal place.
func (g *Generator) uniform(lo, hi float64) float64 {
	return utils.Round1(lo + g.rng.Float64()*(hi-lo))
}

func pick[T any](g *Generator, values []T) T {
	return values[g.rng.IntN(len(values))]
}

func (g *Generator) dailyEntry(d day) (models.DailyEntry, error) {
	mood := synth.NeutralMood
	journalFamily, projectFamily := synth.FamilyJournalOff, synth.FamilyProjectOff
	if d.active {
		mood = pick(g, synth.Moods)
		journalFamily, projectFamily = synth.FamilyJournalOn, synth.FamilyProjectOn
	}

	journal, err := g.lib.RenderAny(g.rng, g.lib.IDs(journalFamily), nil)
	if err != nil {
		return models.DailyEntry{}, err
	}

	project := pick(g, synth.Projects)
	update, err := g.lib.RenderAny(g.rng, g.lib.IDs(projectFamily), map[string]string{"project": project})
	if err != nil {
		return models.DailyEntry{}, err
	}

	return models.DailyEntry{
		Date:          d.date(),
		TraitState:    models.TraitStateOf(d.active),
		Mood:          mood,
		JournalEntry:  journal,
		ProjectUpdate: update,
	}, nil
}

func (g *Generator) subDailyMoods(d day) ([]models.SubDailyMood, error) {
	n := g.intBetween(1, 3)
	moods := make([]models.SubDailyMood, 0, n)
	ids := g.lib.IDs(synth.FamilyMoodLog)

	for i := 0; i < n; i++ {
		loggedAt := d.at(g.intBetween(0, 23), g.intBetween(0, 59))
		notes, err := g.lib.RenderAny(g.rng, ids, nil)
		if err != nil {
			return nil, err
		}
		moods = append(moods, models.SubDailyMood{
			LoggedAt: loggedAt,
			Mood:     g.intBetween(1, 10),
			Energy:   g.intBetween(1, 10),
			Notes:    notes,
		})
	}
	return moods, nil
}

// readingBand describes one of the fixed daily sub-readings
type readingBand struct {
	metric   models.MetricType
	template string
	fromHour int
	toHour   int
	minValue float64
	maxValue float64
}

var readingBands = []readingBand{
	{models.MetricPositronicActivity, synth.ReadingEarly, 0, 4, 85, 95},
	{models.MetricNeuralEfficiency, synth.ReadingMorning, 7, 11, 80, 90},
	{models.MetricMemoryUsage, synth.ReadingAfternoon, 13, 17, 75, 85},
}

func (g *Generator) dailyMetric(d day) (models.DailyMetric, error) {
	readings := make([]models.MetricReading, 0, len(readingBands))
	for _, band := range readingBands {
		ts := d.at(g.intBetween(band.fromHour, band.toHour), g.intBetween(0, 59))
		notes, err := g.lib.Render(g.rng, band.template, nil)
		if err != nil {
			return models.DailyMetric{}, err
		}
		readings = append(readings, models.MetricReading{
			Timestamp: ts,
			Type:      band.metric,
			Value:     g.uniform(band.minValue, band.maxValue),
			Notes:     notes,
		})
	}

	reflection, err := g.lib.RenderAny(g.rng, g.lib.IDs(synth.FamilyReflection), nil)
	if err != nil {
		return models.DailyMetric{}, err
	}

	return models.DailyMetric{
		Date:        d.date(),
		Readings:    readings,
		MoodRating:  g.intBetween(1, 10),
		EnergyLevel: g.intBetween(1, 10),
		SleepHours:  g.uniform(6, 9),
		Notes:       reflection,
	}, nil
}

func (g *Generator) workLogs(d day) ([]models.WorkLog, error) {
	n := g.intBetween(0, 2)
	logs := make([]models.WorkLog, 0, n)

	for i := 0; i < n; i++ {
		start := d.at(g.intBetween(8, 17), g.intBetween(0, 59))
		hours := g.uniform(1, 8)
		project := pick(g, synth.Projects)
		desc, err := g.lib.Render(g.rng, synth.WorkDescription, map[string]string{"project": project})
		if err != nil {
			return nil, err
		}
		logs = append(logs, models.WorkLog{
			Date:        d.date(),
			StartTime:   start,
			EndTime:     start.Add(utils.HoursDuration(hours)),
			Project:     project,
			Description: desc,
			TotalHours:  hours,
		})
	}
	return logs, nil
}

func (g *Generator) habitLogs(d day) ([]models.HabitLog, error) {
	n := g.intBetween(0, 3)
	if len(g.habits) == 0 {
		return nil, nil
	}

	logs := make([]models.HabitLog, 0, n)
	for i := 0; i < n; i++ {
		habit := pick(g, g.habits)
		notes, err := g.lib.Render(g.rng, synth.HabitNote, map[string]string{"habit": habit.Name})
		if err != nil {
			return nil, err
		}
		logs = append(logs, models.HabitLog{
			Habit:       habit.Name,
			CompletedAt: d.start,
			Notes:       notes,
		})
	}
	return logs, nil
}

func (g *Generator) alcoholLog(d day) (*models.AlcoholLog, error) {
	if g.rng.Float64() >= constants.AlcoholProbability {
		return nil, nil
	}

	drink := pick(g, synth.DrinkTypes)
	units := g.uniform(0.5, 2)
	notes, err := g.lib.Render(g.rng, synth.AlcoholNote, nil)
	if err != nil {
		return nil, err
	}
	return &models.AlcoholLog{
		Date:      d.date(),
		DrinkType: drink,
		Units:     units,
		Notes:     notes,
	}, nil
}
