package pet

import (
	"math"
	"time"
)

// ageDays returns the whole calendar days between the bornAt date and
// the now date (date difference, not elapsed seconds).
func ageDays(bornAt, now time.Time) int {
	b := bornAt.UTC()
	n := now.UTC()
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	nd := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	return int(nd.Sub(bd).Hours() / 24)
}

// AgeDays returns the pet's age in whole calendar days.
func (p *Pet) AgeDays(now time.Time) int {
	return ageDays(p.BornAt, now)
}

// nextCheckpoint returns the largest checkpoint <= age, or 0 if none
// has been reached yet.
func (r Rules) nextCheckpoint(age int) int {
	cp := 0
	for _, c := range r.Checkpoints {
		if age >= c {
			cp = c
		}
	}
	return cp
}

// CareScore folds the current vitals into a single 0-100 quality score:
// 30% hunger, 25% happiness, 25% sleep (rescaled to 0-100), 20% hygiene.
func CareScore(v Vitals) int {
	sleep := ClampVital(v.Sleep * 10)
	score := 0.30*float64(v.Hunger) +
		0.25*float64(v.Happiness) +
		0.25*float64(sleep) +
		0.20*float64(v.Hygiene)
	return int(math.Round(score))
}

// TierFor maps a care score to its quality band.
func TierFor(score int) Tier {
	switch {
	case score >= 90:
		return TierVeryGood
	case score >= 70:
		return TierGood
	case score >= 45:
		return TierMedium
	case score >= 20:
		return TierBad
	default:
		return TierVeryBad
	}
}

// evolve advances the pet through at most one checkpoint transition and
// reports whether it hatched. Idempotent: a checkpoint at or below the
// last recorded one never fires again.
func (r Rules) evolve(p *Pet, now time.Time) (hatched bool) {
	cp := r.nextCheckpoint(ageDays(p.BornAt, now))
	if cp <= p.LastCheckpoint {
		return false
	}

	if cp == 1 {
		p.Form = FormDay1
		p.LastCheckpoint = cp
		return true
	}

	tier := TierFor(CareScore(p.Vitals()))
	table := r.Day6Forms
	if cp == 3 {
		// Only three forms exist at day 3.
		table = r.Day3Forms
		switch tier {
		case TierVeryGood:
			tier = TierGood
		case TierVeryBad:
			tier = TierBad
		}
	}
	if form, ok := table[tier]; ok {
		p.Form = form
	}
	p.LastCheckpoint = cp
	return false
}
