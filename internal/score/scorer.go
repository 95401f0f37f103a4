package score

import (
	"time"

	"git.lost.host/meutraa/stepjudge/internal/chart"
	"git.lost.host/meutraa/stepjudge/internal/game"
)

type Scorer interface {
	// Save the inputs of this performance
	Save(c *chart.Chart, actions []game.Action, rate float64) error

	// Load up previous performances of the chart
	Load(c *chart.Chart) ([]History, error)

	Close() error
}

type History struct {
	Sum     string
	Actions []game.Action
	Rate    float64
	Played  time.Time
}

type Score struct {
	Taps  map[game.TapNoteScore]int
	Holds map[game.HoldNoteScore]int

	Points    int
	MaxPoints int
	MaxCombo  int

	MissCount  uint64
	TotalError time.Duration
	MeanError  time.Duration
	StdDev     time.Duration

	Life   float64
	Failed bool
}

// Percent is the share of possible dance points, never below zero.
func (s Score) Percent() float64 {
	if s.MaxPoints <= 0 || s.Points <= 0 {
		return 0
	}
	return float64(s.Points) / float64(s.MaxPoints)
}
