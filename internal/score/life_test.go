package score

import (
	"math"
	"testing"

	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/gameplay"
)

func tap(s game.TapNoteScore) gameplay.LifeEvent {
	return gameplay.LifeEvent{Tap: s}
}

func hold(s game.HoldNoteScore) gameplay.LifeEvent {
	return gameplay.LifeEvent{Hold: s}
}

type lifeTest struct {
	name   string
	drain  DrainType
	events []gameplay.LifeEvent
	life   float64
	failed bool
}

var lifeTests = []lifeTest{
	{"start", DrainNormal, nil, 0.5, false},
	{"great", DrainNormal, []gameplay.LifeEvent{tap(game.W1), tap(game.W3)}, 0.512, false},
	{"miss", DrainNormal, []gameplay.LifeEvent{tap(game.Miss), tap(game.HitMine)}, 0.26, false},
	{"holds", DrainNormal, []gameplay.LifeEvent{hold(game.Held), hold(game.LetGo)}, 0.428, false},
	{"fail", DrainNormal, []gameplay.LifeEvent{
		tap(game.HitMine), tap(game.HitMine), tap(game.HitMine), tap(game.HitMine),
		tap(game.W1),
	}, 0, true},
	{"no recover", DrainNoRecover, []gameplay.LifeEvent{tap(game.W1), tap(game.W5), hold(game.Held), tap(game.Miss)}, 0.82, false},
	{"sudden death great", DrainSuddenDeath, []gameplay.LifeEvent{tap(game.W3), hold(game.Held)}, 1, false},
	{"sudden death good", DrainSuddenDeath, []gameplay.LifeEvent{tap(game.W4)}, 0, true},
	{"sudden death let go", DrainSuddenDeath, []gameplay.LifeEvent{hold(game.LetGo)}, 0, true},
}

func TestLifeMeter(t *testing.T) {
	for _, test := range lifeTests {
		l := NewLifeMeter(test.drain)
		for _, e := range test.events {
			l.OnLife(e)
		}
		if math.Abs(l.Life()-test.life) > 1e-9 || l.Failed() != test.failed {
			t.Log(test.name, "life", l.Life(), "failed", l.Failed())
			t.Log(test.name, "want", test.life, "failed", test.failed)
			t.Fail()
		}
	}
}

func TestLifeMeterHot(t *testing.T) {
	l := NewLifeMeter(DrainNoRecover)
	if l.Life() != 1 {
		t.Fatal("no recover starts at", l.Life())
	}
	l.OnLife(tap(game.W5))
	if math.Abs(l.Life()-0.9) > 1e-9 {
		t.Error("a full bar should lose 0.1, life", l.Life())
	}
}

func TestParseDrainType(t *testing.T) {
	for _, d := range []DrainType{DrainNormal, DrainNoRecover, DrainSuddenDeath} {
		if got, ok := ParseDrainType(d.String()); !ok || got != d {
			t.Error("round trip", d, got, ok)
		}
	}
	if _, ok := ParseDrainType("battery"); ok {
		t.Error("parsed an unknown drain type")
	}
}
