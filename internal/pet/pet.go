// Package pet implements the mascot lifecycle engine: continuous-time
// stat decay, daily rollover, checkpoint evolution, and death/revival.
// Everything here is a pure in-memory state transition; persistence and
// transport are the caller's concern.
package pet

import (
	"fmt"
	"strings"
	"time"
)

// DefaultName is the placeholder a fresh pet carries until a caretaker
// renames it. An unnamed pet loses happiness faster.
const DefaultName = "Unnamed Mascot"

// timeNow anchors the death grace window to true current time,
// independent of the simulated now used for decay math. Swapped in tests.
var timeNow = func() time.Time { return time.Now().UTC() }

// Pet is the persistent state of one community's mascot.
type Pet struct {
	GuildID int64
	Name    string

	Hunger    int // 0-100
	Happiness int // 0-100
	Hygiene   int // 0-100
	Sleep     int // hours, 0-10

	BornAt    time.Time
	UpdatedAt time.Time // instant decay was last applied

	// Calendar dates (ISO, "2006-01-02") for daily-boundary detection.
	LastLoveDate string
	LastFeedDate string

	LoveToday  int
	FeedsToday int

	Form           Form
	LastCheckpoint int // 0, 1, 3, or 6

	DeadUntil *time.Time
	LastWords string

	LastCaretakerID int64 // 0 when unknown
}

// Result describes the notable transitions of one ApplyDecay call, for
// the caller to relay as notifications.
type Result struct {
	Died    bool
	Hatched bool
}

// New creates a fresh egg with full vitals for a guild.
func New(guildID int64, now time.Time) *Pet {
	today := ISODate(now)
	return &Pet{
		GuildID:      guildID,
		Name:         DefaultName,
		Hunger:       MaxVital,
		Happiness:    MaxVital,
		Hygiene:      MaxVital,
		Sleep:        MaxSleep,
		BornAt:       now,
		UpdatedAt:    now,
		LastLoveDate: today,
		LastFeedDate: today,
		Form:         FormEgg,
	}
}

// ISODate formats an instant as its ISO calendar date in UTC.
func ISODate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Vitals returns the current stat vector.
func (p *Pet) Vitals() Vitals {
	return Vitals{Hunger: p.Hunger, Happiness: p.Happiness, Hygiene: p.Hygiene, Sleep: p.Sleep}
}

func (p *Pet) setVitals(v Vitals) {
	p.Hunger, p.Happiness, p.Hygiene, p.Sleep = v.Hunger, v.Happiness, v.Hygiene, v.Sleep
}

// IsDead reports whether the pet is inside its death grace window at now.
func (p *Pet) IsDead(now time.Time) bool {
	return p.DeadUntil != nil && now.Before(*p.DeadUntil)
}

// Unnamed reports whether the pet still carries the default placeholder.
func (p *Pet) Unnamed() bool {
	return p.Name == "" || p.Name == DefaultName
}

// ApplyDecay advances the pet's state to now. Sequencing is load-bearing:
// revival, then evolution, then daily rollover, then continuous decay,
// then the zero-stat death check. Evolution runs before the rollover so
// a pet can hatch and immediately fall under feeding-day rules; a
// missed-feeding death preempts decay entirely.
func (r Rules) ApplyDecay(p *Pet, now time.Time) Result {
	if p.DeadUntil != nil {
		if now.Before(*p.DeadUntil) {
			return Result{}
		}
		// Grace window expired. Decay resumes on the next call.
		p.revive(now)
		return Result{}
	}

	prevCheckpoint := p.LastCheckpoint
	hatched := r.evolve(p, now)

	if p.LastCheckpoint == 0 && p.Form == FormEgg {
		p.UpdatedAt = now
		return Result{Hatched: hatched}
	}

	today := ISODate(now)
	if p.LastLoveDate != today || p.LastFeedDate != today {
		// A pet that was already past checkpoint 1 before this call and
		// went a full day without food dies at the boundary. A pet that
		// hatched just now merely starts its first feeding day.
		if prevCheckpoint >= 1 && p.FeedsToday < r.FeedThreshold {
			p.UpdatedAt = now
			r.kill(p, today)
			return Result{Died: true, Hatched: hatched}
		}
		p.LoveToday = 0
		p.FeedsToday = 0
		p.LastLoveDate = today
		p.LastFeedDate = today
	}

	elapsed := int64(now.Sub(p.UpdatedAt).Seconds())
	if elapsed <= 0 {
		return Result{Hatched: hatched}
	}

	v := r.Decay(p.Vitals(), elapsed, nightAt(now, r.Zone), p.Unnamed())
	p.setVitals(v)
	p.UpdatedAt = now

	if p.Hunger == 0 || p.Happiness == 0 || p.Sleep == 0 {
		r.kill(p, today)
		return Result{Died: true, Hatched: hatched}
	}
	return Result{Hatched: hatched}
}

// kill puts the pet into its grace window. The window is anchored to
// true current time, not the simulated now used for decay math. The
// form is left untouched so status displays and last words keep it.
func (r Rules) kill(p *Pet, today string) {
	until := timeNow().Add(r.GraceWindow)
	p.DeadUntil = &until
	p.LastWords = p.buildLastWords()
	p.LastCheckpoint = 0
	p.LoveToday = 0
	p.FeedsToday = 0
	p.LastLoveDate = today
	p.LastFeedDate = today
}

// revive clears the grace window and resets the pet to a fresh egg
// baseline, including its age anchor, so checkpoint logic restarts from
// zero. Hunger and happiness carry over; feeding is on the caretakers.
func (p *Pet) revive(now time.Time) {
	p.DeadUntil = nil
	p.LastWords = ""
	p.LoveToday = 0
	p.FeedsToday = 0
	p.LastCheckpoint = 0
	p.Form = FormEgg
	p.BornAt = now
	p.Hygiene = MaxVital
	p.Sleep = MaxSleep
	today := ISODate(now)
	p.LastLoveDate = today
	p.LastFeedDate = today
	p.UpdatedAt = now
}

func (p *Pet) buildLastWords() string {
	return fmt.Sprintf(
		"I made it to %s (%s), felt %d/100 happy, had %d/100 hunger, slept %d/10 hours, and kept %d/100 hygiene.",
		p.EvolutionStage(), p.Form, p.Happiness, p.Hunger, p.Sleep, p.Hygiene,
	)
}

// Feed raises hunger and counts as both a love and a feed action.
func (r Rules) Feed(p *Pet) {
	p.Hunger = ClampVital(p.Hunger + r.FeedAmount)
	p.addLove()
	p.addFeed()
}

// Play raises happiness and counts as a love action.
func (r Rules) Play(p *Pet) {
	p.Happiness = ClampVital(p.Happiness + r.PlayAmount)
	p.addLove()
}

// Clean raises hygiene. No love or feed bookkeeping.
func (r Rules) Clean(p *Pet) {
	p.Hygiene = ClampVital(p.Hygiene + r.CleanAmount)
}

func (p *Pet) addLove() {
	p.LoveToday++
	p.LastLoveDate = ISODate(timeNow())
}

func (p *Pet) addFeed() {
	p.FeedsToday++
	p.LastFeedDate = ISODate(timeNow())
}

// Rename sets the pet's name, trimmed and capped at 32 runes. Empty
// names are ignored and the current name kept.
func (p *Pet) Rename(name string) {
	runes := []rune(strings.TrimSpace(name))
	if len(runes) == 0 {
		return
	}
	if len(runes) > 32 {
		runes = runes[:32]
	}
	p.Name = string(runes)
}

// EvolutionStage is a human-readable label for the current form.
func (p *Pet) EvolutionStage() string {
	switch p.Form {
	case FormEgg:
		return "Egg"
	case FormDay1:
		return "Day 1"
	}
	stages := map[Form]string{
		"day3_good":      "Day 3 (Good)",
		"day3_medium":    "Day 3 (Medium)",
		"day3_bad":       "Day 3 (Bad)",
		"day6_very_good": "Day 6 (Very Good)",
		"day6_good":      "Day 6 (Good)",
		"day6_medium":    "Day 6 (Medium)",
		"day6_bad":       "Day 6 (Bad)",
		"day6_very_bad":  "Day 6 (Very Bad)",
	}
	if s, ok := stages[p.Form]; ok {
		return s
	}
	return string(p.Form)
}

// SpriteKey identifies the sprite for the current form.
func (p *Pet) SpriteKey() string {
	return string(p.Form)
}

// Operator overrides, bounded by the same clamps as normal transitions.

// SetBornAt rewinds or advances the birth instant for debug tooling.
func (p *Pet) SetBornAt(t time.Time) {
	p.BornAt = t
}

// ForceCheckpoint is the explicit rollback/override path for the
// otherwise monotone checkpoint marker.
func (p *Pet) ForceCheckpoint(cp int, form Form) {
	p.LastCheckpoint = cp
	if form != "" {
		p.Form = form
	}
}

// AdjustVitals nudges individual stats by the given deltas, saturating.
func (p *Pet) AdjustVitals(hunger, happiness, hygiene, sleep int) {
	p.Hunger = ClampVital(p.Hunger + hunger)
	p.Happiness = ClampVital(p.Happiness + happiness)
	p.Hygiene = ClampVital(p.Hygiene + hygiene)
	p.Sleep = ClampSleep(p.Sleep + sleep)
}
