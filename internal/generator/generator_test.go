package generator

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/synth"
	"github.com/julianstephens/pkm/internal/trait"
)

var fixedNow = time.Date(2024, 6, 30, 15, 4, 5, 0, time.UTC)

func newTestGenerator(seed uint64) *Generator {
	return New(Options{Seed: seed, Now: func() time.Time { return fixedNow }})
}

func TestGenerateMonths_OneMonth(t *testing.T) {
	ds, err := newTestGenerator(1).GenerateMonths(1)
	if err != nil {
		t.Fatalf("GenerateMonths() error = %v", err)
	}

	if len(ds.DailyEntries) != 30 {
		t.Errorf("len(DailyEntries) = %d, want 30", len(ds.DailyEntries))
	}
	if len(ds.DailyMetrics) != 30 {
		t.Errorf("len(DailyMetrics) = %d, want 30", len(ds.DailyMetrics))
	}
	if n := len(ds.SubDailyMoods); n < 30 || n > 90 {
		t.Errorf("len(SubDailyMoods) = %d, want between 30 and 90", n)
	}
	if n := len(ds.WorkLogs); n > 60 {
		t.Errorf("len(WorkLogs) = %d, want at most 60", n)
	}
	if n := len(ds.HabitLogs); n > 90 {
		t.Errorf("len(HabitLogs) = %d, want at most 90", n)
	}
	if n := len(ds.AlcoholLogs); n > 30 {
		t.Errorf("len(AlcoholLogs) = %d, want at most 30", n)
	}

	if ds.Meta.Days != 30 {
		t.Errorf("Meta.Days = %d, want 30", ds.Meta.Days)
	}
	if ds.Meta.StartDate != "2024-06-01" || ds.Meta.EndDate != "2024-06-30" {
		t.Errorf("span = %s..%s, want 2024-06-01..2024-06-30", ds.Meta.StartDate, ds.Meta.EndDate)
	}
	if ds.Meta.RunID == "" {
		t.Error("Meta.RunID is empty")
	}
}

func TestGenerate_EveryDayCovered(t *testing.T) {
	start := time.Date(2024, 2, 27, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC)

	ds, err := newTestGenerator(2).Generate(start, end)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(ds.DailyEntries) != len(want) {
		t.Fatalf("len(DailyEntries) = %d, want %d", len(ds.DailyEntries), len(want))
	}
	for i, date := range want {
		if ds.DailyEntries[i].Date != date {
			t.Errorf("DailyEntries[%d].Date = %s, want %s", i, ds.DailyEntries[i].Date, date)
		}
		if ds.DailyMetrics[i].Date != date {
			t.Errorf("DailyMetrics[%d].Date = %s, want %s", i, ds.DailyMetrics[i].Date, date)
		}
	}

	perDay := map[string]int{}
	for _, m := range ds.SubDailyMoods {
		perDay[m.LoggedAt.Format(constants.DateFormat)]++
	}
	for _, date := range want {
		if n := perDay[date]; n < 1 || n > 3 {
			t.Errorf("%s has %d sub-daily moods, want 1-3", date, n)
		}
	}
}

func TestGenerate_LongSpanDistributions(t *testing.T) {
	const days = 3000
	start := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)

	ds, err := newTestGenerator(5).Generate(start, start.AddDate(0, 0, days-1))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(ds.DailyEntries) != days {
		t.Fatalf("len(DailyEntries) = %d, want %d", len(ds.DailyEntries), days)
	}

	rate := float64(len(ds.AlcoholLogs)) / days
	if rate < 0.27 || rate > 0.33 {
		t.Errorf("alcohol rate = %.3f over %d days, want %.2f +/- 0.03", rate, days, constants.AlcoholProbability)
	}

	moods := map[string]int{}
	for _, m := range ds.SubDailyMoods {
		moods[m.LoggedAt.In(time.UTC).Format(constants.DateFormat)]++
	}
	habits := map[string]int{}
	for _, h := range ds.HabitLogs {
		habits[h.CompletedAt.In(time.UTC).Format(constants.DateFormat)]++
	}

	tests := []struct {
		name    string
		perDay  map[string]int
		allowed []int
	}{
		{name: "sub-daily moods", perDay: moods, allowed: []int{1, 2, 3}},
		{name: "habit logs", perDay: habits, allowed: []int{0, 1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := map[int]int{}
			for _, e := range ds.DailyEntries {
				seen[tt.perDay[e.Date]]++
			}
			for n, count := range seen {
				if !slices.Contains(tt.allowed, n) {
					t.Errorf("%d days have %d records, want one of %v", count, n, tt.allowed)
				}
			}
			for _, n := range tt.allowed {
				if seen[n] == 0 {
					t.Errorf("no day has exactly %d records over %d days", n, days)
				}
			}
		})
	}
}

func TestGenerate_InvalidSpan(t *testing.T) {
	start := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)

	_, err := newTestGenerator(3).Generate(start, end)
	if !errors.Is(err, ErrInvalidSpan) {
		t.Errorf("Generate() error = %v, want ErrInvalidSpan", err)
	}
}

func TestGenerate_SingleDaySpan(t *testing.T) {
	day := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	ds, err := newTestGenerator(4).Generate(day, day)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(ds.DailyEntries) != 1 {
		t.Fatalf("len(DailyEntries) = %d, want 1", len(ds.DailyEntries))
	}
	if ds.DailyEntries[0].TraitState != models.TraitDisabled {
		t.Errorf("single-day trait state = %s, want %s", ds.DailyEntries[0].TraitState, models.TraitDisabled)
	}
	if ds.DailyEntries[0].Mood != synth.NeutralMood {
		t.Errorf("single-day mood = %s, want %s", ds.DailyEntries[0].Mood, synth.NeutralMood)
	}
}

func TestGenerateMonths_InvalidMonths(t *testing.T) {
	for _, months := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := newTestGenerator(5).GenerateMonths(months); err == nil {
			t.Errorf("GenerateMonths(%v) expected error, got nil", months)
		}
	}
}

func TestSpanForMonths(t *testing.T) {
	tests := []struct {
		name      string
		months    float64
		wantStart string
		wantDays  int
	}{
		{"one month", 1, "2024-06-01", 30},
		{"fractional", 0.5, "2024-06-16", 15},
		{"less than a day", 0.01, "2024-06-30", 1},
		{"three months", 3, "2024-04-02", 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := SpanForMonths(tt.months, fixedNow)
			if err != nil {
				t.Fatalf("SpanForMonths() error = %v", err)
			}
			if got := start.Format(constants.DateFormat); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if start.Hour() != 0 || start.Minute() != 0 || start.Nanosecond() != 0 {
				t.Errorf("start %v is not at the start of the day", start)
			}
			if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 || end.Nanosecond() != 999999000 {
				t.Errorf("end %v is not at the end of the day", end)
			}
			days := int(end.Sub(start).Hours()/24) + 1
			if days != tt.wantDays {
				t.Errorf("span covers %d days, want %d", days, tt.wantDays)
			}
		})
	}
}

func TestGenerate_WorkLogEndTime(t *testing.T) {
	ds, err := newTestGenerator(6).GenerateMonths(3)
	if err != nil {
		t.Fatalf("GenerateMonths() error = %v", err)
	}
	if len(ds.WorkLogs) == 0 {
		t.Fatal("expected work logs over three months")
	}

	for i, w := range ds.WorkLogs {
		if w.TotalHours < 1 || w.TotalHours > 8 {
			t.Errorf("WorkLogs[%d].TotalHours = %v, want within [1, 8]", i, w.TotalHours)
		}
		if math.Abs(math.Round(w.TotalHours*10)-w.TotalHours*10) > 1e-9 {
			t.Errorf("WorkLogs[%d].TotalHours = %v has more than one decimal", i, w.TotalHours)
		}
		got := w.EndTime.Sub(w.StartTime).Hours()
		if math.Abs(got-w.TotalHours) > 1e-9 {
			t.Errorf("WorkLogs[%d]: end - start = %vh, want %vh", i, got, w.TotalHours)
		}
		if h := w.StartTime.Hour(); h < 8 || h > 17 {
			t.Errorf("WorkLogs[%d] starts at hour %d, want 8-17", i, h)
		}
		if !strings.HasPrefix(w.Description, "Worked on ") {
			t.Errorf("WorkLogs[%d].Description = %q", i, w.Description)
		}
	}
}

func TestGenerate_ValueRanges(t *testing.T) {
	ds, err := newTestGenerator(7).GenerateMonths(2)
	if err != nil {
		t.Fatalf("GenerateMonths() error = %v", err)
	}

	for _, m := range ds.SubDailyMoods {
		if m.Mood < 1 || m.Mood > 10 || m.Energy < 1 || m.Energy > 10 {
			t.Errorf("sub-daily mood out of range: %+v", m)
		}
		if m.Notes == "" || strings.Contains(m.Notes, "{") {
			t.Errorf("sub-daily mood has bad notes: %q", m.Notes)
		}
	}

	bands := map[models.MetricType][4]float64{
		models.MetricPositronicActivity: {85, 95, 0, 4},
		models.MetricNeuralEfficiency:   {80, 90, 7, 11},
		models.MetricMemoryUsage:        {75, 85, 13, 17},
	}
	for _, dm := range ds.DailyMetrics {
		if len(dm.Readings) != 3 {
			t.Fatalf("daily metric %s has %d readings, want 3", dm.Date, len(dm.Readings))
		}
		for _, r := range dm.Readings {
			b := bands[r.Type]
			if r.Value < b[0] || r.Value > b[1] {
				t.Errorf("%s value %v outside [%v, %v]", r.Type, r.Value, b[0], b[1])
			}
			if h := float64(r.Timestamp.Hour()); h < b[2] || h > b[3] {
				t.Errorf("%s taken at hour %v, want %v-%v", r.Type, h, b[2], b[3])
			}
		}
		if dm.SleepHours < 6 || dm.SleepHours > 9 {
			t.Errorf("sleep hours %v outside [6, 9]", dm.SleepHours)
		}
		if dm.MoodRating < 1 || dm.MoodRating > 10 || dm.EnergyLevel < 1 || dm.EnergyLevel > 10 {
			t.Errorf("daily metric ratings out of range: %+v", dm)
		}
	}

	for _, a := range ds.AlcoholLogs {
		if a.Units < 0.5 || a.Units > 2 {
			t.Errorf("alcohol units %v outside [0.5, 2]", a.Units)
		}
	}
}

func TestGenerate_DailyEntryFollowsTrait(t *testing.T) {
	ds, err := newTestGenerator(8).GenerateMonths(3)
	if err != nil {
		t.Fatalf("GenerateMonths() error = %v", err)
	}

	if ds.DailyEntries[0].TraitState != models.TraitDisabled {
		t.Errorf("first day trait state = %s, want Disabled", ds.DailyEntries[0].TraitState)
	}

	lib := synth.Default()
	rng := rand.New(rand.NewPCG(1, 1))
	offTexts := map[string]bool{}
	for _, id := range lib.IDs(synth.FamilyJournalOff) {
		text, err := lib.Render(rng, id, nil)
		if err != nil {
			t.Fatalf("Render(%s) error = %v", id, err)
		}
		offTexts[text] = true
	}

	enabled := 0
	for _, e := range ds.DailyEntries {
		if e.TraitState.Active() {
			enabled++
			continue
		}
		if e.Mood != synth.NeutralMood {
			t.Errorf("%s: inactive day has mood %q, want Neutral", e.Date, e.Mood)
		}
		if !offTexts[e.JournalEntry] {
			t.Errorf("%s: inactive day journal %q not from the inactive family", e.Date, e.JournalEntry)
		}
	}
	if enabled == 0 {
		t.Error("trait never activated over three months")
	}
}

func TestGenerate_HabitLogsReferenceCatalog(t *testing.T) {
	ds, err := newTestGenerator(9).GenerateMonths(1)
	if err != nil {
		t.Fatalf("GenerateMonths() error = %v", err)
	}

	names := ds.HabitNames()
	for _, h := range ds.HabitLogs {
		if !names[h.Habit] {
			t.Errorf("habit log references %q, not in catalog", h.Habit)
		}
		if h.Notes != "Completed "+h.Habit {
			t.Errorf("habit log notes = %q", h.Notes)
		}
		if h.CompletedAt.Hour() != 0 || h.CompletedAt.Minute() != 0 {
			t.Errorf("habit log completed_at = %v, want start of day", h.CompletedAt)
		}
	}
}

func TestGenerate_EmptyCatalogProducesNoHabitLogs(t *testing.T) {
	g := New(Options{Seed: 10, Habits: []models.Habit{}, Now: func() time.Time { return fixedNow }})

	ds, err := g.GenerateMonths(1)
	if err != nil {
		t.Fatalf("GenerateMonths() error = %v", err)
	}
	if len(ds.HabitLogs) != 0 {
		t.Errorf("len(HabitLogs) = %d, want 0 with an empty catalog", len(ds.HabitLogs))
	}
	if len(ds.Habits) != 0 {
		t.Errorf("len(Habits) = %d, want 0", len(ds.Habits))
	}
}

func TestGenerate_DeterministicWithSeed(t *testing.T) {
	a, err := newTestGenerator(42).GenerateMonths(1)
	if err != nil {
		t.Fatalf("GenerateMonths() error = %v", err)
	}
	b, err := newTestGenerator(42).GenerateMonths(1)
	if err != nil {
		t.Fatalf("GenerateMonths() error = %v", err)
	}

	// Run ids are unique per run.
	a.Meta.RunID, b.Meta.RunID = "", ""
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same seed produced different datasets")
	}

	c, err := newTestGenerator(43).GenerateMonths(1)
	if err != nil {
		t.Fatalf("GenerateMonths() error = %v", err)
	}
	c.Meta.RunID = ""
	if reflect.DeepEqual(a.DailyEntries, c.DailyEntries) && reflect.DeepEqual(a.SubDailyMoods, c.SubDailyMoods) {
		t.Error("different seeds produced identical records")
	}
}

func TestGenerate_LatchMode(t *testing.T) {
	g := New(Options{Seed: 11, Mode: trait.ModeLatch, Now: func() time.Time { return fixedNow }})

	ds, err := g.GenerateMonths(2)
	if err != nil {
		t.Fatalf("GenerateMonths() error = %v", err)
	}

	seen := false
	for _, e := range ds.DailyEntries {
		if seen && !e.TraitState.Active() {
			t.Fatalf("%s: trait deactivated in latch mode", e.Date)
		}
		seen = seen || e.TraitState.Active()
	}
}
