package synth

import (
	"fmt"
	"sync"
)

// Template families. A family's templates share an id prefix.
const (
	FamilyJournalOff = "journal.off."
	FamilyJournalOn  = "journal.on."
	FamilyProjectOff = "project.off."
	FamilyProjectOn  = "project.on."
	FamilyMoodLog    = "mood_log."
	FamilyReflection = "reflection."
	ReadingEarly     = "reading.early"
	ReadingMorning   = "reading.morning"
	ReadingAfternoon = "reading.afternoon"
	WorkDescription  = "work.description"
	HabitNote        = "habit.note"
	AlcoholNote      = "alcohol.note"
)

func family(prefix string, texts ...string) []Template {
	out := make([]Template, len(texts))
	for i, text := range texts {
		out[i] = Template{ID: fmt.Sprintf("%s%d", prefix, i+1), Text: text}
	}
	return out
}

// DefaultTemplates returns every template of the default library.
func DefaultTemplates() []Template {
	var templates []Template

	templates = append(templates, family(FamilyJournalOff,
		"Log entry: Today's mission was completed with 99.97% efficiency.",
		"I have observed human behavior that I do not fully comprehend. Further study is required.",
		"My positronic brain has processed 2.7 million calculations in the past hour.",
		"I am functioning within normal parameters.",
		"Today, I contemplated the nature of consciousness. The subject remains elusive.",
	)...)

	templates = append(templates, family(FamilyJournalOn,
		"Today, I experienced a new emotion: {mood}. It was... fascinating.",
		"I find myself {mood} about the complexities of human interaction.",
		"The emotion chip has made me feel {mood}. I am still learning to process these sensations.",
		"Captain Picard's decision today left me feeling {mood}. Is this an appropriate response?",
		"I attempted to use humor in a social situation. The result was... {mood}.",
	)...)

	templates = append(templates, family(FamilyProjectOff,
		"Project {project}: 37% complete. Proceeding as scheduled.",
		"Analyzing data for {project}. Results are inconclusive.",
		"Optimized algorithms for {project}, improving efficiency by 12.3%.",
		"Compiled report on {project} findings. Awaiting peer review.",
	)...)

	templates = append(templates, family(FamilyProjectOn,
		"Made progress on {project}. I feel {mood} about the results.",
		"Encountered a setback in {project}. This is... disappointing.",
		"Breakthrough in {project}! I am experiencing what humans might call 'excitement'.",
		"Collaborating with colleagues on {project}. Social interaction is becoming more natural.",
	)...)

	templates = append(templates, family(FamilyMoodLog,
		"At {location}, encountered {trigger}. This resulted in a {mood_level} mood response. {reflection}",
		"During {activity} at {location}, experienced unexpected {emotion_type} response. {analysis}",
		"Interaction with {person} at {location} led to {mood_level} mood state. {insight}",
		"Routine scan at {location} revealed {finding}. This triggered what humans might call {emotion_type}. {technical_note}",
		"{event} at {location} caused significant fluctuation in emotional subroutines. {observation}",
	)...)

	templates = append(templates, family(FamilyReflection,
		"Today's experiments with {experiment_type} yielded fascinating results. {science_note} Spot showed particular interest in {cat_interest}. {gratitude_note}",
		"Made progress in understanding {concept}. {science_observation} Spot demonstrated remarkable {cat_behavior}. {personal_growth}",
		"Explored the relationship between {topic_a} and {topic_b}. {discovery_note} Found Spot investigating {cat_discovery}. {reflection_note}",
		"Conducted research on {research_topic}. {research_finding} Spot's behavior suggests {cat_insight}. {philosophical_note}",
		"Advanced my understanding of {subject}. {learning_note} Observed Spot's unique approach to {cat_activity}. {gratitude_expression}",
	)...)

	templates = append(templates,
		Template{ID: ReadingEarly, Text: "Early morning scan at {location}"},
		Template{ID: ReadingMorning, Text: "Morning analysis at {location}"},
		Template{ID: ReadingAfternoon, Text: "Afternoon check at {location}"},
		Template{ID: WorkDescription, Text: "Worked on {project}"},
		Template{ID: HabitNote, Text: "Completed {habit}"},
		Template{ID: AlcoholNote, Text: "Consumed at {location}"},
	)

	return templates
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns the process-wide library built from DefaultTemplates and
// DefaultVocabulary. The tables are static, so a binding error panics.
func Default() *Library {
	defaultOnce.Do(func() {
		lib, err := NewLibrary(DefaultTemplates(), DefaultVocabulary())
		if err != nil {
			panic(err)
		}
		defaultLib = lib
	})
	return defaultLib
}
