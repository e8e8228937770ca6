package pet

import (
	"fmt"
	"math/rand"
)

// Mood and desire candidate pools when no stat threshold triggers.
var (
	defaultMoods   = []string{"content", "calm", "relaxed", "curious"}
	defaultDesires = []string{"curious", "wanting snuggles", "feeling independent"}

	sayTemplates = []string{
		"I'm feeling %s and %s.",
		"Today I'm %s, and honestly, %s.",
		"Your mascot is %s and %s right now.",
		"Me? A little %s. Also %s.",
	}
)

// SayLine renders a flavor line from the pet's current stats. The mood
// and desire tags are sampled independently from whatever thresholds
// trigger; rng is injected so scenario tests stay deterministic.
func (p *Pet) SayLine(rng *rand.Rand) string {
	var moods, desires []string

	if p.Hunger < 30 {
		moods = append(moods, "hungry")
		desires = append(desires, "wanting food")
	}
	if p.Sleep < 4 {
		moods = append(moods, "sleepy")
		desires = append(desires, "wanting rest")
	}
	if p.Happiness < 30 {
		moods = append(moods, "sad")
		desires = append(desires, "needing attention")
	}
	if p.Happiness > 80 {
		moods = append(moods, "happy")
		desires = append(desires, "feeling playful")
	}
	if p.Hygiene < 30 {
		moods = append(moods, "irritated")
		desires = append(desires, "seeking cleanup")
	}

	if len(moods) == 0 {
		moods = defaultMoods
	}
	if len(desires) == 0 {
		desires = defaultDesires
	}

	mood := moods[rng.Intn(len(moods))]
	desire := desires[rng.Intn(len(desires))]
	tmpl := sayTemplates[rng.Intn(len(sayTemplates))]
	return fmt.Sprintf(tmpl, mood, desire)
}
