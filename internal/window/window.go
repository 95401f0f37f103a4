// Package window turns timing offsets into judgment tiers.
package window

import (
	"math"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/stepjudge/internal/game"
)

type Class uint8

const (
	Tap Class = iota
	Mine
	Attack
	Hold
	Roll
)

func (c Class) String() string {
	switch c {
	case Tap:
		return "tap"
	case Mine:
		return "mine"
	case Attack:
		return "attack"
	case Hold:
		return "hold"
	case Roll:
		return "roll"
	}
	return "invalid"
}

// Config holds the base radii in seconds, tightest tap tier first. Every
// radius becomes base*Scale + Add.
type Config struct {
	Tap    []float64 `yaml:"tap,flow"`
	Mine   float64   `yaml:"mine"`
	Hold   float64   `yaml:"hold"`
	Roll   float64   `yaml:"roll"`
	Attack float64   `yaml:"attack"`
	Scale  float64   `yaml:"scale"`
	Add    float64   `yaml:"add"`
}

func DefaultConfig() Config {
	return Config{
		Tap:    []float64{0.0225, 0.045, 0.090, 0.135, 0.180},
		Mine:   0.090,
		Hold:   0.500,
		Roll:   0.350,
		Attack: 0.135,
		Scale:  1,
	}
}

var tapScores = [...]game.TapNoteScore{game.W1, game.W2, game.W3, game.W4, game.W5}

type Table struct {
	tap    []float64
	mine   float64
	hold   float64
	roll   float64
	attack float64
}

func New(c Config) (*Table, error) {
	if c.Scale <= 0 {
		return nil, errors.Errorf("window scale must be positive, got %v", c.Scale)
	}
	if len(c.Tap) == 0 || len(c.Tap) > len(tapScores) {
		return nil, errors.Errorf("need 1 to %v tap windows, got %v", len(tapScores), len(c.Tap))
	}
	scaled := func(name string, base float64) (float64, error) {
		s := base*c.Scale + c.Add
		if s < 0 || math.IsNaN(s) {
			return 0, errors.Errorf("%v window is negative: %v", name, s)
		}
		return s, nil
	}

	t := &Table{tap: make([]float64, len(c.Tap))}
	var err error
	for i, base := range c.Tap {
		if t.tap[i], err = scaled(tapScores[i].String(), base); err != nil {
			return nil, err
		}
		if i > 0 && t.tap[i] < t.tap[i-1] {
			return nil, errors.Errorf("%v window %v is tighter than %v window %v",
				tapScores[i], t.tap[i], tapScores[i-1], t.tap[i-1])
		}
	}
	for _, w := range []struct {
		class Class
		base  float64
		dst   *float64
	}{
		{Mine, c.Mine, &t.mine},
		{Hold, c.Hold, &t.hold},
		{Roll, c.Roll, &t.roll},
		{Attack, c.Attack, &t.attack},
	} {
		if *w.dst, err = scaled(w.class.String(), w.base); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Tiers is the number of enabled tap tiers.
func (t *Table) Tiers() int {
	return len(t.tap)
}

// Loosest is the worst tap score this table can award.
func (t *Table) Loosest() game.TapNoteScore {
	return tapScores[len(t.tap)-1]
}

// TapSeconds is the radius of a tap tier, 0 when it is not enabled.
func (t *Table) TapSeconds(score game.TapNoteScore) float64 {
	for i := range t.tap {
		if tapScores[i] == score {
			return t.tap[i]
		}
	}
	return 0
}

// Seconds is the widest radius of a class.
func (t *Table) Seconds(class Class) float64 {
	switch class {
	case Mine:
		return t.mine
	case Attack:
		return t.attack
	case Hold:
		return t.hold
	case Roll:
		return t.roll
	}
	return t.tap[len(t.tap)-1]
}

// SecondsToTier classifies a signed offset. Taps get the tightest tier
// that covers it, mines HitMine and attacks W1 inside their radius. For
// holds and rolls the offset is a gap in the input: CheckpointHit while
// the body survives it, CheckpointMiss after. Offsets outside every
// radius are None.
func (t *Table) SecondsToTier(class Class, offset float64) game.TapNoteScore {
	d := math.Abs(offset)
	switch class {
	case Tap:
		for i, r := range t.tap {
			if d <= r {
				return tapScores[i]
			}
		}
	case Mine:
		if d <= t.mine {
			return game.HitMine
		}
	case Attack:
		if d <= t.attack {
			return game.W1
		}
	case Hold, Roll:
		if d <= t.Seconds(class) {
			return game.CheckpointHit
		}
		return game.CheckpointMiss
	}
	return game.None
}

// MaxStepDistance is how far in music seconds a step may land from a note
// and still be matched to it.
func (t *Table) MaxStepDistance(rate, latency float64) float64 {
	return t.Seconds(Tap)*rate + latency
}
