package trait

import (
	"math/rand/v2"
	"testing"
)

func TestProbability(t *testing.T) {
	tests := []struct {
		name      string
		dayIndex  int
		totalDays int
		want      float64
	}{
		{"first day", 0, 10, 0},
		{"midpoint", 5, 10, 0.5},
		{"last day", 10, 10, 1},
		{"single-day span", 0, 0, 0},
		{"negative span", 3, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Probability(tt.dayIndex, tt.totalDays); got != tt.want {
				t.Errorf("Probability(%d, %d) = %v, want %v", tt.dayIndex, tt.totalDays, got, tt.want)
			}
		})
	}
}

func TestActivate_FirstDayAlwaysInactive(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, n := range []int{1, 2, 30, 365} {
		for i := 0; i < 1000; i++ {
			if Activate(rng, 0, n) {
				t.Fatalf("Activate(0, %d) returned true", n)
			}
		}
	}
}

func TestActivate_ZeroSpan(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 100; i++ {
		if Activate(rng, 0, 0) {
			t.Fatal("Activate(0, 0) returned true")
		}
	}
}

func TestActivate_RateApproachesOne(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	const trials = 10000
	const total = 100

	active := 0
	for i := 0; i < trials; i++ {
		if Activate(rng, total-1, total) {
			active++
		}
	}

	rate := float64(active) / trials
	if rate < 0.97 {
		t.Errorf("activation rate near the end of the span = %.3f, want >= 0.97", rate)
	}
}

func TestActivate_RateTracksProbability(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	const trials = 20000

	active := 0
	for i := 0; i < trials; i++ {
		if Activate(rng, 25, 100) {
			active++
		}
	}

	rate := float64(active) / trials
	if rate < 0.23 || rate > 0.27 {
		t.Errorf("activation rate at p=0.25 = %.3f, want within [0.23, 0.27]", rate)
	}
}

func TestModel_BernoulliCanFlipBack(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	flipped := false
	for run := 0; run < 200 && !flipped; run++ {
		m := NewModel(rng, ModeBernoulli, 10)
		prev := false
		for day := 0; day <= 10; day++ {
			cur := m.Day(day)
			if prev && !cur {
				flipped = true
				break
			}
			prev = cur
		}
	}
	if !flipped {
		t.Error("bernoulli mode never returned to inactive after activating")
	}
}

func TestModel_LatchStaysActive(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))

	for run := 0; run < 200; run++ {
		m := NewModel(rng, ModeLatch, 10)
		seen := false
		for day := 0; day <= 10; day++ {
			cur := m.Day(day)
			if seen && !cur {
				t.Fatalf("latch mode deactivated on day %d", day)
			}
			seen = seen || cur
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeBernoulli, false},
		{"bernoulli", ModeBernoulli, false},
		{"latch", ModeLatch, false},
		{"sticky", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
