package pet

// Decay converts elapsed wall-clock seconds into stat decrements. Each
// rate is floor-divided independently, doubled during the nocturnal
// window, and clamped on its own, so the function is safe for
// arbitrarily large elapsed values (catch-up after a long gap). Pure:
// no state beyond the arguments.
func (r Rules) Decay(v Vitals, elapsed int64, night, unnamed bool) Vitals {
	if elapsed <= 0 {
		return v
	}

	mult := int64(1)
	if night {
		mult = 2
	}

	v.Hunger = ClampVital(v.Hunger - int((elapsed/r.HungerEvery)*mult))
	v.Happiness = ClampVital(v.Happiness - int((elapsed/r.HappinessEvery)*mult))
	v.Hygiene = ClampVital(v.Hygiene - int((elapsed/r.HygieneEvery)*mult))
	v.Sleep = ClampSleep(v.Sleep - int((elapsed/r.SleepEvery)*mult))

	// Nudge caretakers toward naming the pet.
	if unnamed {
		v.Happiness = ClampVital(v.Happiness - int((elapsed/r.UnnamedEvery)*mult))
	}

	return v
}
