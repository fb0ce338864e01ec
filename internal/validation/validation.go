package validation

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictInvalidFrequency   ConflictType = "invalid_frequency"
	ConflictInvalidDateTime    ConflictType = "invalid_datetime"
	ConflictInvalidSpan        ConflictType = "invalid_span"
	ConflictOutsideSpan        ConflictType = "outside_span"
	ConflictMissingDay         ConflictType = "missing_day"
	ConflictDuplicateDay       ConflictType = "duplicate_day"
	ConflictOutOfRange         ConflictType = "out_of_range"
	ConflictWorkLogDuration    ConflictType = "work_log_duration"
	ConflictUnknownHabit       ConflictType = "unknown_habit"
)

// Severity tells whether a conflict blocks an import
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Conflict represents a detected problem in a dataset
type Conflict struct {
	Type        ConflictType
	Severity    Severity
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Record labels involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict has error severity
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if c.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of conflicts with the given severity
func (vr *ValidationResult) Count(sev Severity) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Severity == sev {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- [%s] %s\n", conflict.Severity, conflict.Description)
	}
	return report
}

// Validator checks a dataset against the generation invariants
type Validator struct {
	loc *time.Location
}

// New creates a new Validator that interprets dates in the local timezone
func New() *Validator {
	return &Validator{loc: time.Local}
}

// NewInLocation creates a Validator that interprets dates in loc
func NewInLocation(loc *time.Location) *Validator {
	return &Validator{loc: loc}
}

func (v *Validator) add(result *ValidationResult, t ConflictType, sev Severity, date string, items []string, format string, args ...interface{}) {
	result.Conflicts = append(result.Conflicts, Conflict{
		Type:        t,
		Severity:    sev,
		Description: fmt.Sprintf(format, args...),
		Date:        date,
		Items:       items,
	})
}

// ValidateDataset checks every collection of ds
func (v *Validator) ValidateDataset(ds models.Dataset) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	v.validateHabits(&result, ds.Habits)
	days := v.validateSpan(&result, ds)
	v.validateDailyCoverage(&result, ds, days)
	v.validateRanges(&result, ds)
	v.validateWorkLogs(&result, ds.WorkLogs)
	v.validateHabitLogs(&result, ds)

	return result
}

func (v *Validator) validateHabits(result *ValidationResult, habits []models.Habit) {
	// Check for duplicate habit names
	seen := make(map[string]int)
	for _, h := range habits {
		seen[h.Name]++
		if !h.Frequency.Valid() {
			v.add(result, ConflictInvalidFrequency, SeverityError, "", []string{h.Name},
				"Habit \"%s\" has invalid frequency: %q", h.Name, h.Frequency)
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if seen[name] > 1 {
			// Duplicates collapse into one catalog row on import
			v.add(result, ConflictDuplicateHabitName, SeverityWarning, "", []string{name},
				"Duplicate habit name: \"%s\" (%d entries)", name, seen[name])
		}
	}
}

// validateSpan checks the metadata span and returns the expected list of days.
// It returns nil when the span cannot be determined.
func (v *Validator) validateSpan(result *ValidationResult, ds models.Dataset) []string {
	startStr, endStr := ds.Meta.StartDate, ds.Meta.EndDate
	if startStr == "" && len(ds.DailyEntries) > 0 {
		startStr = ds.DailyEntries[0].Date
		endStr = ds.DailyEntries[len(ds.DailyEntries)-1].Date
	}
	if startStr == "" {
		return nil
	}

	start, err := utils.ParseDateInLocation(startStr, v.loc)
	if err != nil {
		v.add(result, ConflictInvalidDateTime, SeverityError, startStr, nil, "Invalid span start date: %s", startStr)
		return nil
	}
	end, err := utils.ParseDateInLocation(endStr, v.loc)
	if err != nil {
		v.add(result, ConflictInvalidDateTime, SeverityError, endStr, nil, "Invalid span end date: %s", endStr)
		return nil
	}
	if end.Before(start) {
		v.add(result, ConflictInvalidSpan, SeverityError, "", nil, "Span end %s is before start %s", endStr, startStr)
		return nil
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(constants.DateFormat))
	}
	if ds.Meta.Days != 0 && ds.Meta.Days != len(days) {
		v.add(result, ConflictInvalidSpan, SeverityError, "", nil,
			"Span %s..%s covers %d days, metadata says %d", startStr, endStr, len(days), ds.Meta.Days)
	}
	return days
}

func (v *Validator) validateDailyCoverage(result *ValidationResult, ds models.Dataset, days []string) {
	entries := make(map[string]int)
	for _, e := range ds.DailyEntries {
		entries[e.Date]++
	}
	metrics := make(map[string]int)
	for _, m := range ds.DailyMetrics {
		metrics[m.Date]++
	}
	moods := make(map[string]int)
	for _, m := range ds.SubDailyMoods {
		moods[m.LoggedAt.In(v.loc).Format(constants.DateFormat)]++
	}

	inSpan := make(map[string]bool, len(days))
	for _, day := range days {
		inSpan[day] = true
		if entries[day] == 0 {
			v.add(result, ConflictMissingDay, SeverityError, day, []string{constants.TableDailyEntries},
				"No daily entry for %s", day)
		}
		if metrics[day] == 0 {
			v.add(result, ConflictMissingDay, SeverityError, day, []string{constants.TableDailyMetrics},
				"No daily metric for %s", day)
		}
		if moods[day] == 0 {
			v.add(result, ConflictMissingDay, SeverityError, day, []string{constants.TableSubDailyMoods},
				"No sub-daily mood for %s", day)
		}
		if entries[day] > 1 {
			v.add(result, ConflictDuplicateDay, SeverityError, day, []string{constants.TableDailyEntries},
				"%d daily entries for %s", entries[day], day)
		}
		if metrics[day] > 1 {
			v.add(result, ConflictDuplicateDay, SeverityError, day, []string{constants.TableDailyMetrics},
				"%d daily metrics for %s", metrics[day], day)
		}
	}

	if days == nil {
		return
	}
	check := func(table, date string) {
		if !utils.ValidateDateFormat(date) {
			v.add(result, ConflictInvalidDateTime, SeverityError, date, []string{table}, "Invalid date %q in %s", date, table)
			return
		}
		if !inSpan[date] {
			v.add(result, ConflictOutsideSpan, SeverityError, date, []string{table}, "%s record dated %s is outside the span", table, date)
		}
	}
	for _, e := range ds.DailyEntries {
		check(constants.TableDailyEntries, e.Date)
	}
	for _, m := range ds.DailyMetrics {
		check(constants.TableDailyMetrics, m.Date)
	}
	for _, w := range ds.WorkLogs {
		check(constants.TableWorkLogs, w.Date)
	}
	for _, a := range ds.AlcoholLogs {
		check(constants.TableAlcoholLogs, a.Date)
	}
}

func (v *Validator) validateRanges(result *ValidationResult, ds models.Dataset) {
	outOfRange := func(date, what string, value, lo, hi float64) {
		if value < lo || value > hi || math.IsNaN(value) {
			v.add(result, ConflictOutOfRange, SeverityError, date, []string{what},
				"%s on %s is %v, want [%v, %v]", what, date, value, lo, hi)
		}
	}

	for _, m := range ds.SubDailyMoods {
		date := m.LoggedAt.In(v.loc).Format(constants.DateFormat)
		outOfRange(date, "sub-daily mood", float64(m.Mood), 1, 10)
		outOfRange(date, "sub-daily energy", float64(m.Energy), 1, 10)
	}
	for _, m := range ds.DailyMetrics {
		outOfRange(m.Date, "mood rating", float64(m.MoodRating), 1, 10)
		outOfRange(m.Date, "energy level", float64(m.EnergyLevel), 1, 10)
		outOfRange(m.Date, "sleep hours", m.SleepHours, 6, 9)
	}
	for _, w := range ds.WorkLogs {
		outOfRange(w.Date, "work hours", w.TotalHours, 1, 8)
	}
	for _, a := range ds.AlcoholLogs {
		outOfRange(a.Date, "alcohol units", a.Units, 0.5, 2)
	}
}

func (v *Validator) validateWorkLogs(result *ValidationResult, logs []models.WorkLog) {
	for _, w := range logs {
		want := w.StartTime.Add(utils.HoursDuration(w.TotalHours))
		if !w.EndTime.Equal(want) {
			v.add(result, ConflictWorkLogDuration, SeverityError, w.Date, []string{w.Project},
				"Work log on %s for %s: end %s != start %s + %.1fh",
				w.Date, w.Project,
				w.EndTime.Format(constants.TimestampFormat), w.StartTime.Format(constants.TimestampFormat), w.TotalHours)
		}
	}
}

func (v *Validator) validateHabitLogs(result *ValidationResult, ds models.Dataset) {
	names := ds.HabitNames()
	for _, h := range ds.HabitLogs {
		if !names[h.Habit] {
			date := h.CompletedAt.In(v.loc).Format(constants.DateFormat)
			v.add(result, ConflictUnknownHabit, SeverityWarning, date, []string{h.Habit},
				"Habit log on %s references unknown habit \"%s\"; it will be skipped", date, h.Habit)
		}
	}
}
