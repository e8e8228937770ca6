package pet

import "time"

// Form identifies the mascot's visible sprite stage.
type Form string

const (
	FormEgg  Form = "egg"
	FormDay1 Form = "day1"
)

// Tier is the care-quality band a checkpoint score falls into.
type Tier string

const (
	TierVeryGood Tier = "very_good"
	TierGood     Tier = "good"
	TierMedium   Tier = "medium"
	TierBad      Tier = "bad"
	TierVeryBad  Tier = "very_bad"
)

// Rules is the fixed configuration table for the lifecycle engine:
// decay rates, evolution checkpoints, tier brackets, and form tables.
// It is built once at startup and passed in, never read from globals,
// so tests can substitute alternate tables.
type Rules struct {
	// Seconds of elapsed time per point of decay.
	HungerEvery    int64
	HappinessEvery int64
	HygieneEvery   int64
	SleepEvery     int64
	UnnamedEvery   int64 // extra happiness drain while the pet has no real name

	FeedAmount  int
	PlayAmount  int
	CleanAmount int

	// Daily feeds required to survive a rollover once hatched.
	FeedThreshold int

	// Age-in-days milestones at which evolution is evaluated, ascending.
	Checkpoints []int

	// Forms selected at the scored checkpoints. Checkpoint 3 has no
	// very_good/very_bad entries; scores clamp inward before lookup.
	Day3Forms map[Tier]Form
	Day6Forms map[Tier]Form

	// How long a dead pet stays inert before it can be revived.
	GraceWindow time.Duration

	// Local zone for the nocturnal window. nil falls back to UTC.
	Zone *time.Location
}

// DefaultZone is the reference zone for the nocturnal decay window.
const DefaultZone = "America/Toronto"

// DefaultRules returns the production configuration table. If the zone
// database has no entry for DefaultZone the nocturnal window is
// evaluated in UTC.
func DefaultRules() Rules {
	loc, err := time.LoadLocation(DefaultZone)
	if err != nil {
		loc = time.UTC
	}
	return Rules{
		HungerEvery:    120,
		HappinessEvery: 240,
		HygieneEvery:   600,
		SleepEvery:     1800,
		UnnamedEvery:   600,

		FeedAmount:  15,
		PlayAmount:  10,
		CleanAmount: 20,

		FeedThreshold: 1,

		Checkpoints: []int{1, 3, 6},

		Day3Forms: map[Tier]Form{
			TierGood:   "day3_good",
			TierMedium: "day3_medium",
			TierBad:    "day3_bad",
		},
		Day6Forms: map[Tier]Form{
			TierVeryGood: "day6_very_good",
			TierGood:     "day6_good",
			TierMedium:   "day6_medium",
			TierBad:      "day6_bad",
			TierVeryBad:  "day6_very_bad",
		},

		GraceWindow: time.Hour,
		Zone:        loc,
	}
}

// nightAt reports whether t falls in the nocturnal window (22:00-08:00)
// of loc. A nil loc treats the instant as UTC.
func nightAt(t time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	h := t.In(loc).Hour()
	return h >= 22 || h < 8
}
