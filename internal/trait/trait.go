package trait

import (
	"fmt"
	"math/rand/v2"
)

// Mode selects how a day's trait state relates to the previous days
type Mode string

const (
	// ModeBernoulli draws every day independently; an active day may be
	// followed by an inactive one.
	ModeBernoulli Mode = "bernoulli"
	// ModeLatch keeps the trait active once it has activated.
	ModeLatch Mode = "latch"
)

// ParseMode converts a mode name into a Mode. The empty string selects ModeBernoulli.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeBernoulli:
		return ModeBernoulli, nil
	case ModeLatch:
		return ModeLatch, nil
	default:
		return "", fmt.Errorf("invalid trait mode %q (want %q or %q)", s, ModeBernoulli, ModeLatch)
	}
}

// Probability returns the activation probability for a zero-based day index in a
// span of totalDays elapsed days. A span with no elapsed days has probability 0.
func Probability(dayIndex, totalDays int) float64 {
	if totalDays <= 0 || dayIndex <= 0 {
		return 0
	}
	if dayIndex >= totalDays {
		return 1
	}
	return float64(dayIndex) / float64(totalDays)
}

// Activate draws the trait state for one day: active with probability
// dayIndex/totalDays.
func Activate(rng *rand.Rand, dayIndex, totalDays int) bool {
	p := Probability(dayIndex, totalDays)
	if p == 0 {
		return false
	}
	return rng.Float64() < p
}

// Model tracks the trait across the days of one generation run
type Model struct {
	rng       *rand.Rand
	mode      Mode
	totalDays int
	latched   bool
}

// NewModel returns a model for a span of totalDays elapsed days.
func NewModel(rng *rand.Rand, mode Mode, totalDays int) *Model {
	if mode == "" {
		mode = ModeBernoulli
	}
	return &Model{rng: rng, mode: mode, totalDays: totalDays}
}

// Day returns the trait state for the given day. It must be called once per
// day, in order.
func (m *Model) Day(dayIndex int) bool {
	if m.mode == ModeLatch && m.latched {
		return true
	}
	active := Activate(m.rng, dayIndex, m.totalDays)
	if active && m.mode == ModeLatch {
		m.latched = true
	}
	return active
}
