package score

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"git.lost.host/meutraa/stepjudge/internal/chart"
	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/gameplay"
)

// ReplayStep is the frame period replays are judged at.
const ReplayStep = 1.0 / 240

// Replay judges a stored performance again on a fresh session and returns
// its score. The chart's results are overwritten.
func Replay(c *chart.Chart, h *History, opts gameplay.Options, drain DrainType, log *zap.Logger) (Score, error) {
	if h.Rate > 0 {
		opts.MusicRate = h.Rate
	}
	opts.Controller = gameplay.Human
	life := NewLifeMeter(drain)
	keeper := NewKeeper(c)
	p, err := gameplay.New(c, opts, gameplay.Sinks{life, keeper}, log)
	if err != nil {
		return Score{}, errors.Wrap(err, "unable to replay")
	}

	start := math.Min(0, c.Timing.FirstBeatSeconds)
	for _, a := range h.Actions {
		start = math.Min(start, a.Seconds)
	}
	// every window has closed well before this
	end := c.LastSecond() + 10*opts.MusicRate

	actions := append([]game.Action(nil), h.Actions...)
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].Seconds < actions[j].Seconds })

	next := 0
	for frame := 0; ; frame++ {
		now := start + float64(frame)*ReplayStep
		from := next
		for next < len(actions) && actions[next].Seconds <= now {
			next++
		}
		p.Update(now, actions[from:next])
		if (p.Done() && next == len(actions)) || now > end {
			break
		}
	}

	s := keeper.Score()
	s.Life = life.Life()
	s.Failed = life.Failed()
	return s, nil
}
