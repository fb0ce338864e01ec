package importer

import (
	"context"
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/pkm/internal/constants"
	"github.com/julianstephens/pkm/internal/generator"
	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/storage"
)

var fixedNow = time.Date(2024, 6, 30, 15, 4, 5, 0, time.UTC)

func testTarget(t *testing.T) storage.Target {
	t.Helper()
	return storage.Target{Kind: storage.KindSQLite, Path: filepath.Join(t.TempDir(), "pkm.db"), Dialect: storage.SQLite}
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	ctx := context.Background()

	s, err := storage.Open(ctx, testTarget(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Bootstrap(ctx); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	s.SetLocation(time.UTC)
	return s
}

func generate(t *testing.T, months float64) models.Dataset {
	t.Helper()
	g := generator.New(generator.Options{Seed: 7, Now: func() time.Time { return fixedNow }})
	ds, err := g.GenerateMonths(months)
	if err != nil {
		t.Fatalf("GenerateMonths() error = %v", err)
	}
	return ds
}

func tableCounts(t *testing.T, s *storage.Store) map[string]int {
	t.Helper()
	tables := append(slices.Clone(constants.CheckedTables), constants.TableMetricReadings, constants.TableDrinkTypes)
	reports, err := s.Check(context.Background(), tables, 0)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	counts := make(map[string]int)
	for _, r := range reports {
		counts[r.Table] = r.Count
	}
	return counts
}

func TestImport_WritesEveryRecord(t *testing.T) {
	s := newTestStore(t)
	ds := generate(t, 1)

	report, err := ForStore(s).Import(context.Background(), ds)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if report.Inserted != ds.Counts() {
		t.Errorf("Inserted = %+v, want %+v", report.Inserted, ds.Counts())
	}
	if len(report.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", report.Skipped)
	}

	counts := tableCounts(t, s)
	want := ds.Counts()
	for table, n := range map[string]int{
		constants.TableHabits:         want.Habits,
		constants.TableDailyEntries:   want.DailyEntries,
		constants.TableSubDailyMoods:  want.SubDailyMoods,
		constants.TableDailyMetrics:   want.DailyMetrics,
		constants.TableWorkLogs:       want.WorkLogs,
		constants.TableHabitLogs:      want.HabitLogs,
		constants.TableAlcoholLogs:    want.AlcoholLogs,
		constants.TableMetricReadings: report.Readings,
	} {
		if counts[table] != n {
			t.Errorf("%s has %d rows, want %d", table, counts[table], n)
		}
	}
	if report.Readings != 3*want.DailyMetrics {
		t.Errorf("Readings = %d, want %d", report.Readings, 3*want.DailyMetrics)
	}
	if want.AlcoholLogs > 0 && counts[constants.TableDrinkTypes] == 0 {
		t.Error("drink_types catalog is empty after importing alcohol logs")
	}
}

func TestImport_EntryContentBlob(t *testing.T) {
	s := newTestStore(t)
	ds := generate(t, 0.1)

	if _, err := ForStore(s).Import(context.Background(), ds); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	var raw string
	err := s.DB().QueryRow("SELECT content FROM daily_entries WHERE date = ?", ds.DailyEntries[0].Date).Scan(&raw)
	if err != nil {
		t.Fatalf("query content: %v", err)
	}

	var blob map[string]string
	if err := json.Unmarshal([]byte(raw), &blob); err != nil {
		t.Fatalf("content is not JSON: %v", err)
	}
	for _, key := range []string{"mood", "journal_entry", "project_update", "emotion_chip"} {
		if _, ok := blob[key]; !ok {
			t.Errorf("content is missing %q: %s", key, raw)
		}
	}
	if blob["emotion_chip"] != string(ds.DailyEntries[0].TraitState) {
		t.Errorf("emotion_chip = %q, want %q", blob["emotion_chip"], ds.DailyEntries[0].TraitState)
	}
}

func TestImport_HabitLogsResolveByName(t *testing.T) {
	s := newTestStore(t)
	ds := generate(t, 1)

	if _, err := ForStore(s).Import(context.Background(), ds); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	rows, err := s.DB().Query(`
		SELECT h.name, hl.completed_at
		FROM habit_logs hl
		JOIN habits h ON h.id = hl.habit_id
		ORDER BY hl.id`)
	if err != nil {
		t.Fatalf("query habit logs: %v", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var name, completedAt string
		if err := rows.Scan(&name, &completedAt); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if i >= len(ds.HabitLogs) {
			t.Fatalf("more habit logs stored than generated")
		}
		want := ds.HabitLogs[i]
		if name != want.Habit {
			t.Errorf("habit log %d resolved to %q, want %q", i, name, want.Habit)
		}
		if completedAt != want.CompletedAt.Format(constants.TimestampFormat) {
			t.Errorf("habit log %d completed_at = %q, want %q", i, completedAt, want.CompletedAt.Format(constants.TimestampFormat))
		}
		i++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	if i != len(ds.HabitLogs) {
		t.Errorf("stored %d habit logs, want %d", i, len(ds.HabitLogs))
	}
}

func TestImport_UnknownHabitIsSkipped(t *testing.T) {
	s := newTestStore(t)
	ds := generate(t, 1)
	ds.HabitLogs = append(ds.HabitLogs, models.HabitLog{
		Habit:       "Juggling",
		CompletedAt: fixedNow.Add(-2 * time.Hour),
		Notes:       "Completed Juggling",
	})

	report, err := ForStore(s).Import(context.Background(), ds)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(report.Skipped) != 1 {
		t.Fatalf("Skipped = %v, want one record", report.Skipped)
	}
	if report.Skipped[0].Name != "Juggling" || !strings.Contains(report.Skipped[0].String(), "Juggling") {
		t.Errorf("Skipped[0] = %+v", report.Skipped[0])
	}

	want := ds.Counts()
	want.HabitLogs--
	if report.Inserted != want {
		t.Errorf("Inserted = %+v, want %+v", report.Inserted, want)
	}

	counts := tableCounts(t, s)
	for table, n := range map[string]int{
		constants.TableHabits:         want.Habits,
		constants.TableDailyEntries:   want.DailyEntries,
		constants.TableSubDailyMoods:  want.SubDailyMoods,
		constants.TableDailyMetrics:   want.DailyMetrics,
		constants.TableWorkLogs:       want.WorkLogs,
		constants.TableHabitLogs:      len(ds.HabitLogs) - 1,
		constants.TableAlcoholLogs:    want.AlcoholLogs,
		constants.TableMetricReadings: report.Readings,
	} {
		if counts[table] != n {
			t.Errorf("%s has %d rows, want %d", table, counts[table], n)
		}
	}
}

func TestImport_HabitCountIgnoresDuplicateNames(t *testing.T) {
	tests := []struct {
		name   string
		habits []models.Habit
		want   int
	}{
		{
			name:   "distinct",
			habits: []models.Habit{{Name: "Meditation", Frequency: models.FrequencyDaily}, {Name: "Reading", Frequency: models.FrequencyWeekly}},
			want:   2,
		},
		{
			name:   "repeated name",
			habits: []models.Habit{{Name: "Meditation", Frequency: models.FrequencyDaily}, {Name: "Meditation", Frequency: models.FrequencyWeekly}},
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)

			report, err := ForStore(s).Import(context.Background(), models.Dataset{Habits: tt.habits})
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if report.Inserted.Habits != tt.want {
				t.Errorf("Inserted.Habits = %d, want %d", report.Inserted.Habits, tt.want)
			}
			if n := tableCounts(t, s)[constants.TableHabits]; n != tt.want {
				t.Errorf("habits has %d rows, want %d", n, tt.want)
			}
		})
	}
}

func TestImport_ExistingHabitsAreKept(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.LogHabit(ctx, "Meditation", "", fixedNow); err != nil {
		t.Fatalf("LogHabit() error = %v", err)
	}

	ds := models.Dataset{Habits: models.DefaultHabits()}
	report, err := ForStore(s).Import(ctx, ds)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if report.Inserted.Habits != len(ds.Habits)-1 {
		t.Errorf("Inserted.Habits = %d, want %d", report.Inserted.Habits, len(ds.Habits)-1)
	}
	if n := tableCounts(t, s)[constants.TableHabits]; n != len(ds.Habits) {
		t.Errorf("habits has %d rows, want %d", n, len(ds.Habits))
	}
}

func TestImport_FailureRollsBackRecords(t *testing.T) {
	s := newTestStore(t)
	ds := generate(t, 0.2)
	ds.SubDailyMoods[len(ds.SubDailyMoods)-1].Mood = 11

	if _, err := ForStore(s).Import(context.Background(), ds); err == nil {
		t.Fatal("Import() should fail on an out-of-range mood")
	}

	counts := tableCounts(t, s)
	if counts[constants.TableHabits] != len(ds.Habits) {
		t.Errorf("habits has %d rows, want the committed catalog of %d", counts[constants.TableHabits], len(ds.Habits))
	}
	for _, table := range []string{constants.TableDailyEntries, constants.TableSubDailyMoods, constants.TableDailyMetrics} {
		if counts[table] != 0 {
			t.Errorf("%s has %d rows after a failed import, want 0", table, counts[table])
		}
	}
}

func TestImport_ReplaceYieldsOneGeneration(t *testing.T) {
	ctx := context.Background()
	target := testTarget(t)
	ds := generate(t, 0.5)

	build := func(ctx context.Context, s *storage.Store) error {
		s.SetLocation(time.UTC)
		_, err := ForStore(s).Import(ctx, ds)
		return err
	}
	for i := 0; i < 2; i++ {
		if err := storage.Replace(ctx, target, storage.ReplaceOptions{}, build); err != nil {
			t.Fatalf("Replace() run %d error = %v", i+1, err)
		}
	}

	s, err := storage.OpenExisting(ctx, target)
	if err != nil {
		t.Fatalf("OpenExisting() error = %v", err)
	}
	defer s.Close()

	counts := tableCounts(t, s)
	if counts[constants.TableDailyEntries] != len(ds.DailyEntries) {
		t.Errorf("daily_entries has %d rows, want %d", counts[constants.TableDailyEntries], len(ds.DailyEntries))
	}
	if counts[constants.TableHabitLogs] != len(ds.HabitLogs) {
		t.Errorf("habit_logs has %d rows, want %d", counts[constants.TableHabitLogs], len(ds.HabitLogs))
	}
}
