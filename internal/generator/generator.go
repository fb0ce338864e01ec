package generator

import (
	"math/rand/v2"
	"time"

	"github.com/julianstephens/pkm/internal/models"
	"github.com/julianstephens/pkm/internal/synth"
	"github.com/julianstephens/pkm/internal/trait"
)

// Options configures a Generator
type Options struct {
	// Seed makes a run reproducible. Zero picks a random seed, which is still
	// recorded in the dataset metadata.
	Seed uint64
	// Mode selects the trait model; empty means trait.ModeBernoulli.
	Mode trait.Mode
	// Habits is the catalog habit logs are drawn from. Nil uses
	// models.DefaultHabits; an empty non-nil slice produces no habit logs.
	Habits []models.Habit
	// Library overrides the template library; nil uses synth.Default.
	Library *synth.Library
	// Now overrides the clock used for metadata and month-based spans.
	Now func() time.Time
}

// Generator produces synthetic datasets
type Generator struct {
	opts   Options
	seed   uint64
	rng    *rand.Rand
	lib    *synth.Library
	habits []models.Habit
}

// New returns a generator configured by opts.
func New(opts Options) *Generator {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	lib := opts.Library
	if lib == nil {
		lib = synth.Default()
	}

	habits := opts.Habits
	if habits == nil {
		habits = models.DefaultHabits()
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Mode == "" {
		opts.Mode = trait.ModeBernoulli
	}

	return &Generator{
		opts:   opts,
		seed:   seed,
		rng:    rand.New(rand.NewPCG(seed, seed>>1|1)),
		lib:    lib,
		habits: append([]models.Habit{}, habits...),
	}
}

// Seed returns the seed driving the generator's random source.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Habits returns the habit catalog of the generator.
func (g *Generator) Habits() []models.Habit {
	return append([]models.Habit{}, g.habits...)
}
