package score

import (
	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/gameplay"
)

type DrainType uint8

const (
	DrainNormal DrainType = iota
	DrainNoRecover
	DrainSuddenDeath
)

func (d DrainType) String() string {
	switch d {
	case DrainNoRecover:
		return "no-recover"
	case DrainSuddenDeath:
		return "sudden-death"
	}
	return "normal"
}

// ParseDrainType is the inverse of String.
func ParseDrainType(name string) (DrainType, bool) {
	for _, d := range []DrainType{DrainNormal, DrainNoRecover, DrainSuddenDeath} {
		if d.String() == name {
			return d, true
		}
	}
	return DrainNormal, false
}

const (
	initialLife = 0.5
	hotPenalty  = -0.10
)

var tapLifeChange = map[game.TapNoteScore]float64{
	game.W1:             0.008,
	game.W2:             0.008,
	game.W3:             0.004,
	game.W4:             0,
	game.W5:             -0.04,
	game.Miss:           -0.08,
	game.HitMine:        -0.16,
	game.None:           -0.08,
	game.CheckpointHit:  0.008,
	game.CheckpointMiss: -0.08,
}

var holdLifeChange = map[game.HoldNoteScore]float64{
	game.Held:  0.008,
	game.LetGo: -0.08,
}

// LifeMeter is a life bar filled by good verdicts and drained by bad ones.
// Once it empties the player has failed and it stays empty.
type LifeMeter struct {
	gameplay.NopSink

	drain  DrainType
	life   float64
	failed bool
}

func NewLifeMeter(drain DrainType) *LifeMeter {
	l := &LifeMeter{drain: drain}
	l.Reset()
	return l
}

func (l *LifeMeter) Reset() {
	l.life = initialLife
	if l.drain != DrainNormal {
		l.life = 1
	}
	l.failed = false
}

func (l *LifeMeter) Life() float64 {
	return l.life
}

func (l *LifeMeter) Failed() bool {
	return l.failed
}

func (l *LifeMeter) hot() bool {
	return l.life >= 1
}

func (l *LifeMeter) OnLife(e gameplay.LifeEvent) {
	if e.Hold != game.HoldNone {
		l.changeHold(e.Hold)
		return
	}
	l.changeTap(e.Tap)
}

func (l *LifeMeter) changeTap(s game.TapNoteScore) {
	delta := tapLifeChange[s]
	if l.hot() && s < game.W4 {
		delta = hotPenalty
	}
	switch l.drain {
	case DrainNoRecover:
		if delta > 0 {
			delta = 0
		}
	case DrainSuddenDeath:
		delta = 0
		if s < game.W3 && s != game.AvoidMine {
			delta = -1
		}
	}
	l.change(delta)
}

func (l *LifeMeter) changeHold(s game.HoldNoteScore) {
	delta := holdLifeChange[s]
	switch l.drain {
	case DrainNormal:
		if l.hot() && s == game.LetGo {
			delta = hotPenalty
		}
	case DrainNoRecover:
		if s == game.Held {
			delta = 0
		}
	case DrainSuddenDeath:
		delta = 0
		if s == game.LetGo {
			delta = -1
		}
	}
	l.change(delta)
}

func (l *LifeMeter) change(delta float64) {
	if l.failed {
		return
	}
	l.life += delta
	if l.life > 1 {
		l.life = 1
	}
	if l.life <= 0 {
		l.life = 0
		l.failed = true
	}
}
