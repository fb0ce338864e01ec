package models

import (
	"fmt"
	"time"
)

// DataPoint is one mood/energy observation of a day, either the daily metric
// (placed at noon) or a sub-daily mood
type DataPoint struct {
	Timestamp time.Time
	Source    string
	Mood      int
	Energy    int
}

// Data point sources
const (
	SourceDailyMetric  = "daily"
	SourceSubDailyMood = "sub-daily"
)

// Timeframe is a look-back window for work summaries
type Timeframe string

const (
	TimeframeDay   Timeframe = "day"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

// ParseTimeframe converts a name into a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(s); tf {
	case TimeframeDay, TimeframeWeek, TimeframeMonth, TimeframeYear:
		return tf, nil
	default:
		return "", fmt.Errorf("invalid timeframe %q (want day, week, month or year)", s)
	}
}

// Days returns how many days before today the window starts.
func (tf Timeframe) Days() int {
	switch tf {
	case TimeframeDay:
		return 0
	case TimeframeWeek:
		return 7
	case TimeframeMonth:
		return 30
	default:
		return 365
	}
}

// CategoryHours is the total time logged against one project
type CategoryHours struct {
	Category string
	Hours    float64
}

// WorkReport summarizes logged hours per project over a timeframe. Sample is
// set when no work was logged and the placeholder distribution is returned.
type WorkReport struct {
	Timeframe  Timeframe
	Categories []CategoryHours
	Sample     bool
}

// SampleWorkReport returns the placeholder distribution shown when no work
// has been logged in the timeframe.
func SampleWorkReport(tf Timeframe) WorkReport {
	names := []string{"Development", "Meetings", "Planning", "Research", "Breaks"}
	var hours []float64
	switch tf {
	case TimeframeDay:
		hours = []float64{4.5, 2, 1, 1.5, 1}
	case TimeframeWeek:
		hours = []float64{20, 8, 4, 6, 2}
	case TimeframeMonth:
		hours = []float64{80, 32, 16, 24, 8}
	default:
		hours = []float64{960, 384, 192, 288, 96}
	}

	report := WorkReport{Timeframe: tf, Sample: true}
	for i, name := range names {
		report.Categories = append(report.Categories, CategoryHours{Category: name, Hours: hours[i]})
	}
	return report
}

// HabitSummary is a habit with its completions over the last week
type HabitSummary struct {
	Name      string
	Frequency Frequency
	Count     int
	Notes     string
}

// AlcoholEntry is a stored alcohol log
type AlcoholEntry struct {
	ID int64
	AlcoholLog
}

// AlcoholOverview is the drink catalog, the most recent logs and the units
// consumed over the last week
type AlcoholOverview struct {
	DrinkTypes  []string
	Recent      []AlcoholEntry
	WeeklyUnits float64
}

// DailyLog is a free-form journal page, one per date
type DailyLog struct {
	Date      string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaySummary is one row of the day browser
type DaySummary struct {
	Date        string
	Mood        string
	TraitState  TraitState
	MoodRating  int
	EnergyLevel int
	SleepHours  float64
	HasMetric   bool
}

// DayDetail is everything stored for one date
type DayDetail struct {
	Date       string
	Entry      *DailyEntryContent
	Metric     *DailyMetric
	Moods      []SubDailyMood
	WorkLogs   []WorkLog
	HabitLogs  []HabitLog
	Alcohol    []AlcoholLog
	JournalLog *DailyLog
}

// TableReport is the row count and first rows of a table
type TableReport struct {
	Table   string
	Count   int
	Columns []string
	Samples [][]string
}
