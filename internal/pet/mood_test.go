package pet

import (
	"math/rand"
	"strings"
	"testing"
)

func TestSayLineDeterministic(t *testing.T) {
	p := New(1, noon)
	p.Hunger, p.Happiness, p.Hygiene, p.Sleep = 50, 50, 50, 5

	a := p.SayLine(rand.New(rand.NewSource(42)))
	b := p.SayLine(rand.New(rand.NewSource(42)))
	if a != b {
		t.Errorf("same seed produced different lines: %q vs %q", a, b)
	}
	if a == "" {
		t.Fatal("empty line")
	}
}

func TestSayLineSingleTrigger(t *testing.T) {
	p := New(1, noon)
	p.Hunger, p.Happiness, p.Hygiene, p.Sleep = 10, 50, 50, 5

	// Only the hunger threshold fires, so the tags are forced.
	line := p.SayLine(rand.New(rand.NewSource(1)))
	if !strings.Contains(line, "hungry") || !strings.Contains(line, "wanting food") {
		t.Errorf("line = %q, want hungry/wanting food", line)
	}
}

func TestSayLineDefaultPools(t *testing.T) {
	p := New(1, noon)
	p.Hunger, p.Happiness, p.Hygiene, p.Sleep = 60, 60, 60, 6

	line := p.SayLine(rand.New(rand.NewSource(7)))
	found := false
	for _, m := range defaultMoods {
		if strings.Contains(line, m) {
			found = true
		}
	}
	if !found {
		t.Errorf("line %q uses no default mood", line)
	}
}

func TestSayLineHighHappiness(t *testing.T) {
	p := New(1, noon)
	p.Hunger, p.Happiness, p.Hygiene, p.Sleep = 60, 90, 60, 6

	line := p.SayLine(rand.New(rand.NewSource(3)))
	if !strings.Contains(line, "happy") || !strings.Contains(line, "feeling playful") {
		t.Errorf("line = %q, want happy/feeling playful", line)
	}
}
