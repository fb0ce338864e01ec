package models

// Frequency is how often a habit is expected to be completed
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Habit is a catalog entry that habit logs refer to by name
type Habit struct {
	Name      string    `json:"name"`
	Frequency Frequency `json:"frequency"`
}

// DefaultHabits is the catalog created at the start of every generation run.
func DefaultHabits() []Habit {
	return []Habit{
		{Name: "Meditation", Frequency: FrequencyDaily},
		{Name: "Exercise", Frequency: FrequencyDaily},
		{Name: "Reading", Frequency: FrequencyWeekly},
		{Name: "Studying Human Behavior", Frequency: FrequencyWeekly},
	}
}
