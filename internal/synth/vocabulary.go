package synth

import "strings"

// Moods is the mood label vocabulary of daily entries.
var Moods = []string{"Curious", "Confused", "Happy", "Sad", "Angry", "Anxious", "Neutral"}

// NeutralMood is the mood label used while the trait is inactive.
const NeutralMood = "Neutral"

// Projects is the fixed list of work projects.
var Projects = []string{"Starfleet Research", "Emotion Analysis", "Holodeck Programming", "Poetry Composition"}

// DrinkTypes is the fixed list of drinks for alcohol logs.
var DrinkTypes = []string{"Synthehol", "Romulan Ale", "Klingon Bloodwine", "Earl Grey Tea"}

// Locations is where observations and readings take place.
var Locations = []string{
	"Suraya Bay", "Temtibi Lagoon", "Monagas Peninsula",
	"Galartha Cliffs", "Risan Marketplace", "Lohlunat Festival",
	"Resort Complex", "Beachside Location", "Tropical Gardens",
}

var (
	experimentTypes = []string{
		"quantum mechanics", "neural network optimization",
		"emotion chip calibration", "positronic pathway mapping",
		"human-android interaction patterns",
	}

	scienceNotes = []string{
		"The results suggest a 23.7% improvement in processing efficiency.",
		"Detected unusual patterns in the quantum field variations.",
		"Neural pathway adaptation rates exceeded expectations.",
		"Discovered potential improvements for emotion processing algorithms.",
		"Observed unexpected correlations in behavioral response patterns.",
	}

	catInterests = []string{
		"the holodeck's quantum fluctuations",
		"my ongoing calculations",
		"the replicator's materialization process",
		"the ship's ambient sounds",
		"the blinking console lights",
	}

	gratitudeNotes = []string{
		"Grateful for the opportunity to explore the complexities of consciousness.",
		"Appreciative of the crew's patience with my ongoing experiments.",
		"Finding satisfaction in the pursuit of knowledge and understanding.",
		"Thankful for the unique perspective my positronic nature provides.",
		"Valuing the daily opportunities for growth and learning.",
	}

	concepts = []string{
		"human emotional responses",
		"quantum computational methods",
		"artistic expression algorithms",
		"ethical decision-making protocols",
		"interpersonal relationship dynamics",
	}

	catBehaviors = []string{
		"problem-solving abilities",
		"adaptive learning patterns",
		"social bonding techniques",
		"environmental awareness",
		"communication methods",
	}

	personalGrowthNotes = []string{
		"Each day brings new insights into the nature of consciousness.",
		"My understanding of human nature continues to evolve.",
		"Finding balance between logic and emotion remains fascinating.",
		"The journey of self-discovery yields unexpected revelations.",
		"Learning to appreciate the subtle nuances of existence.",
	}

	researchTopics = []string{
		"subspace field dynamics",
		"temporal mechanics",
		"cybernetic ethics",
		"artificial consciousness",
		"quantum psychology",
	}

	catInsights = []string{
		"a deeper understanding of instinctual behavior",
		"interesting parallels with human social patterns",
		"unique perspectives on environmental adaptation",
		"remarkable learning capabilities",
		"sophisticated decision-making processes",
	}

	philosophicalNotes = []string{
		"Perhaps consciousness itself is more fluid than binary.",
		"The nature of self-awareness continues to intrigue me.",
		"The boundary between programming and free will remains fascinating.",
		"Every experience adds to the tapestry of understanding.",
		"The quest for knowledge reveals new mysteries to explore.",
	}

	triggers = []string{
		"a complex social interaction",
		"an unexpected environmental stimulus",
		"a challenging technical problem",
		"a beautiful sunset",
		"an interesting cultural observation",
	}

	activities = []string{
		"meditation session",
		"poetry analysis",
		"musical performance observation",
		"social interaction study",
		"environmental scanning",
	}

	crewMembers = []string{
		"Captain Picard",
		"Commander Riker",
		"Counselor Troi",
		"Geordi",
		"Dr. Crusher",
	}

	moodLevels = []string{
		"notably elevated",
		"slightly diminished",
		"significantly enhanced",
		"moderately affected",
		"unexpectedly altered",
	}

	reflections = []string{
		"Must recalibrate emotional response parameters.",
		"Further study of human reactions to similar stimuli needed.",
		"This provides valuable data for understanding emotional context.",
		"Fascinating how environmental factors influence emotional states.",
		"The complexity of human emotional responses continues to intrigue me.",
	}

	technicalNotes = []string{
		"Positronic pathways showing increased activity in response.",
		"Emotion chip integration functioning within expected parameters.",
		"Neural network adaptation rate exceeding baseline by 23.7%.",
		"Emotional subroutines requiring additional processing capacity.",
		"Recording variance patterns for future analysis.",
	}

	findings = []string{
		"unusual neural pathway activity",
		"unexpected emotional resonance patterns",
		"interesting behavioral adaptation trends",
		"notable changes in processing efficiency",
		"significant emotional data correlations",
	}

	events = []string{
		"A local cultural ceremony",
		"An unexpected social gathering",
		"A complex problem-solving scenario",
		"An artistic performance",
		"A scientific observation",
	}

	observations = []string{
		"Analyzing implications for human-android interactions.",
		"Cataloging response patterns for future reference.",
		"Adjusting behavioral algorithms accordingly.",
		"Fascinating implications for emotional development.",
		"Recording data for further study.",
	}

	analyses = []string{
		"Correlating environmental factors with emotional responses.",
		"Analyzing efficiency of adaptation algorithms.",
		"Studying impact on social interaction protocols.",
		"Evaluating effectiveness of emotional processing routines.",
		"Documenting variations in response patterns.",
	}

	insights = []string{
		"Perhaps emotions are more complex than initially calculated.",
		"The relationship between logic and emotion requires further study.",
		"Human responses to similar situations show intriguing variations.",
		"Social dynamics appear to influence emotional processing significantly.",
		"The role of context in emotional responses is fascinating.",
	}
)

func lower(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

// TraitVocabulary lists the categories that only trait-active templates may use.
var TraitVocabulary = []string{"mood"}

// DefaultVocabulary returns the category bindings used by the default library.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		// Trait-active narrative
		"mood": lower(Moods),

		// Shared
		"project":  Projects,
		"location": Locations,
		"drink":    DrinkTypes,
		"habit":    {"Meditation", "Exercise", "Reading", "Studying Human Behavior"},

		// Mood logs
		"trigger":        triggers,
		"mood_level":     moodLevels,
		"reflection":     reflections,
		"activity":       activities,
		"person":         crewMembers,
		"emotion_type":   lower(Moods),
		"finding":        findings,
		"technical_note": technicalNotes,
		"event":          events,
		"observation":    observations,
		"analysis":       analyses,
		"insight":        insights,

		// Daily reflections
		"experiment_type":      experimentTypes,
		"science_note":         scienceNotes,
		"cat_interest":         catInterests,
		"gratitude_note":       gratitudeNotes,
		"concept":              concepts,
		"science_observation":  scienceNotes,
		"cat_behavior":         catBehaviors,
		"personal_growth":      personalGrowthNotes,
		"topic_a":              concepts,
		"topic_b":              researchTopics,
		"discovery_note":       scienceNotes,
		"cat_discovery":        catInterests,
		"reflection_note":      philosophicalNotes,
		"research_topic":       researchTopics,
		"research_finding":     scienceNotes,
		"cat_insight":          catInsights,
		"philosophical_note":   philosophicalNotes,
		"subject":              concepts,
		"learning_note":        scienceNotes,
		"cat_activity":         catBehaviors,
		"gratitude_expression": gratitudeNotes,
	}
}
