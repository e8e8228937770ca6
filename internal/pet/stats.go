package pet

// Vital bounds. Hunger, happiness, and hygiene live on a 0-100 scale;
// sleep is whole hours on a 0-10 scale.
const (
	MaxVital = 100
	MaxSleep = 10
)

// Vitals is the bounded stat vector the decay and evolution math operate on.
type Vitals struct {
	Hunger    int
	Happiness int
	Hygiene   int
	Sleep     int
}

// ClampVital saturates v to [0, 100].
func ClampVital(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxVital {
		return MaxVital
	}
	return v
}

// ClampSleep saturates v to [0, 10].
func ClampSleep(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxSleep {
		return MaxSleep
	}
	return v
}

// Clamp returns a copy of v with every stat saturated to its range.
func (v Vitals) Clamp() Vitals {
	v.Hunger = ClampVital(v.Hunger)
	v.Happiness = ClampVital(v.Happiness)
	v.Hygiene = ClampVital(v.Hygiene)
	v.Sleep = ClampSleep(v.Sleep)
	return v
}
