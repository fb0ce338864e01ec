package models

import "time"

// DatasetMeta describes the generation run that produced a dataset
type DatasetMeta struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Days        int       `json:"days"`
	Seed        uint64    `json:"seed,omitempty"`
}

// Dataset is the in-memory aggregate of one generation run
type Dataset struct {
	Meta          DatasetMeta    `json:"meta"`
	Habits        []Habit        `json:"habits"`
	DailyEntries  []DailyEntry   `json:"daily_entries"`
	SubDailyMoods []SubDailyMood `json:"sub_daily_moods"`
	DailyMetrics  []DailyMetric  `json:"daily_metrics"`
	WorkLogs      []WorkLog      `json:"work_logs"`
	HabitLogs     []HabitLog     `json:"habit_logs"`
	AlcoholLogs   []AlcoholLog   `json:"alcohol_logs"`
}

// Counts holds the size of every collection of a dataset
type Counts struct {
	Habits        int `json:"habits"`
	DailyEntries  int `json:"daily_entries"`
	SubDailyMoods int `json:"sub_daily_moods"`
	DailyMetrics  int `json:"daily_metrics"`
	WorkLogs      int `json:"work_logs"`
	HabitLogs     int `json:"habit_logs"`
	AlcoholLogs   int `json:"alcohol_logs"`
}

// Counts returns the per-collection sizes of the dataset.
func (d Dataset) Counts() Counts {
	return Counts{
		Habits:        len(d.Habits),
		DailyEntries:  len(d.DailyEntries),
		SubDailyMoods: len(d.SubDailyMoods),
		DailyMetrics:  len(d.DailyMetrics),
		WorkLogs:      len(d.WorkLogs),
		HabitLogs:     len(d.HabitLogs),
		AlcoholLogs:   len(d.AlcoholLogs),
	}
}

// HabitNames returns the set of habit names in the catalog.
func (d Dataset) HabitNames() map[string]bool {
	names := make(map[string]bool, len(d.Habits))
	for _, h := range d.Habits {
		names[h.Name] = true
	}
	return names
}
