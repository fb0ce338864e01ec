package models

import "time"

// TraitState is the label stored with each daily entry for the day's trait draw
type TraitState string

const (
	TraitEnabled  TraitState = "Enabled"
	TraitDisabled TraitState = "Disabled"
)

// TraitStateOf converts a day's boolean trait draw into its label.
func TraitStateOf(active bool) TraitState {
	if active {
		return TraitEnabled
	}
	return TraitDisabled
}

// Active reports whether the label marks an active trait.
func (s TraitState) Active() bool { return s == TraitEnabled }

// DailyEntry is the one journal record produced for every simulated day
type DailyEntry struct {
	Date          string     `json:"date"` // YYYY-MM-DD format
	TraitState    TraitState `json:"emotion_chip"`
	Mood          string     `json:"mood"`
	JournalEntry  string     `json:"journal_entry"`
	ProjectUpdate string     `json:"project_update"`
}

// DailyEntryContent is the structured blob persisted in daily_entries.content
type DailyEntryContent struct {
	Mood          string     `json:"mood"`
	JournalEntry  string     `json:"journal_entry"`
	ProjectUpdate string     `json:"project_update"`
	TraitState    TraitState `json:"emotion_chip"`
}

// Content returns the blob form of the entry.
func (e DailyEntry) Content() DailyEntryContent {
	return DailyEntryContent{
		Mood:          e.Mood,
		JournalEntry:  e.JournalEntry,
		ProjectUpdate: e.ProjectUpdate,
		TraitState:    e.TraitState,
	}
}

// SubDailyMood is a mood/energy observation at a point within a day
type SubDailyMood struct {
	LoggedAt time.Time `json:"logged_at"`
	Mood     int       `json:"mood"`   // 1-10
	Energy   int       `json:"energy"` // 1-10
	Notes    string    `json:"notes"`
}

// MetricType names one of the three fixed daily readings
type MetricType string

const (
	MetricPositronicActivity MetricType = "Positronic Activity"
	MetricNeuralEfficiency   MetricType = "Neural Efficiency"
	MetricMemoryUsage        MetricType = "Memory Usage"
)

// MetricReading is a timestamped sub-reading of a daily metric
type MetricReading struct {
	Timestamp time.Time  `json:"timestamp"`
	Type      MetricType `json:"type"`
	Value     float64    `json:"value"`
	Notes     string     `json:"notes"`
}

// DailyMetric is the single summary metric record of a day
type DailyMetric struct {
	Date        string          `json:"date"` // YYYY-MM-DD format
	Readings    []MetricReading `json:"metrics"`
	MoodRating  int             `json:"mood_rating"`  // 1-10
	EnergyLevel int             `json:"energy_level"` // 1-10
	SleepHours  float64         `json:"sleep_hours"`  // 6-9
	Notes       string          `json:"notes"`
}

// WorkLog is a block of time spent on a project
type WorkLog struct {
	Date        string    `json:"date"` // YYYY-MM-DD format
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Project     string    `json:"project"`
	Description string    `json:"description"`
	TotalHours  float64   `json:"total_hours"`
}

// HabitLog records the completion of a habit, referenced by name
type HabitLog struct {
	Habit       string    `json:"habit"`
	CompletedAt time.Time `json:"completed_at"`
	Notes       string    `json:"notes"`
}

// AlcoholLog records a drink
type AlcoholLog struct {
	Date      string  `json:"date"` // YYYY-MM-DD format
	DrinkType string  `json:"drink_type"`
	Units     float64 `json:"units"`
	Notes     string  `json:"notes"`
}
