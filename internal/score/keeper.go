package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/stepjudge/internal/chart"
	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/gameplay"
)

var tapPoints = map[game.TapNoteScore]int{
	game.W1:             2,
	game.W2:             2,
	game.W3:             1,
	game.W4:             0,
	game.W5:             -4,
	game.Miss:           -8,
	game.HitMine:        -8,
	game.CheckpointHit:  2,
	game.CheckpointMiss: 0,
}

var holdPoints = map[game.HoldNoteScore]int{
	game.Held:  6,
	game.LetGo: 0,
}

// Keeper counts verdicts into dance points and timing statistics.
type Keeper struct {
	gameplay.NopSink

	maxPoints int
	score     Score

	// timing stats over graded taps, in seconds
	n     int
	sum   float64
	sumSq float64
}

func NewKeeper(c *chart.Chart) *Keeper {
	k := &Keeper{
		maxPoints: int(c.NoteCount)*tapPoints[game.W1] + int(c.HoldCount)*holdPoints[game.Held],
	}
	k.Reset()
	return k
}

func (k *Keeper) Reset() {
	k.score = Score{
		Taps:      map[game.TapNoteScore]int{},
		Holds:     map[game.HoldNoteScore]int{},
		MaxPoints: k.maxPoints,
	}
	k.n, k.sum, k.sumSq = 0, 0, 0
}

func (k *Keeper) OnScore(e gameplay.ScoreEvent) {
	notes := e.Notes
	if notes < 1 {
		notes = 1
	}
	if e.Hold != game.HoldNone {
		k.score.Holds[e.Hold] += notes
		k.score.Points += holdPoints[e.Hold] * notes
		return
	}
	k.score.Taps[e.Tap] += notes
	k.score.Points += tapPoints[e.Tap] * notes
	if e.Tap == game.Miss {
		k.score.MissCount += uint64(notes)
	}
	if e.Tap.Graded() {
		k.n++
		k.sum += e.Offset
		k.sumSq += e.Offset * e.Offset
		k.score.TotalError += seconds(math.Abs(e.Offset))
	}
}

func (k *Keeper) OnCombo(e gameplay.ComboEvent) {
	if e.Combo > k.score.MaxCombo {
		k.score.MaxCombo = e.Combo
	}
}

func (k *Keeper) Score() Score {
	s := k.score
	if k.n > 0 {
		mean := k.sum / float64(k.n)
		s.MeanError = seconds(mean)
		s.StdDev = seconds(math.Sqrt(math.Max(0, k.sumSq/float64(k.n)-mean*mean)))
	}
	return s
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
