// Package gameplay judges a chart against timestamped input, one frame at
// a time. A Player owns the chart's results for the whole session.
package gameplay

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"git.lost.host/meutraa/stepjudge/internal/chart"
	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/judgedrows"
	"git.lost.host/meutraa/stepjudge/internal/notegrid"
	"git.lost.host/meutraa/stepjudge/internal/window"
)

type Player struct {
	chart  *chart.Chart
	grid   *notegrid.Grid
	timing *game.TimingData
	tw     *window.Table
	opts   Options
	sink   Sink
	log    *zap.Logger
	rng    *rand.Rand

	judged *judgedrows.Tracker

	// miss sweep cursors
	tapCursor  *notegrid.Iterator
	mineCursor *notegrid.Iterator
	// first rows that may still need row, mine or hold work
	rowCursor      int
	mineRowCursor  int
	holdCursor     int
	firstUncrossed int

	held    []bool
	pending *pendingStrum
	chain   chain

	songRow      int
	lastSeconds  float64
	started      bool
	paused       bool
	disqualified bool

	combo     int
	missCombo int
	maxCombo  int

	actions []game.Action
	group   []holdRef
}

// New starts a session on c. Results already in the chart are cleared.
// A nil sink or logger discards what would be sent to it.
func New(c *chart.Chart, opts Options, sink Sink, log *zap.Logger) (*Player, error) {
	if c == nil || c.Grid == nil || c.Timing == nil {
		return nil, errors.New("chart has no notes or timing")
	}
	if err := c.Timing.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid chart timing")
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}
	if sink == nil {
		sink = NopSink{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Player{
		chart:  c,
		grid:   c.Grid,
		timing: c.Timing,
		tw:     opts.Windows,
		opts:   opts,
		sink:   sink,
		log:    log,
		judged: judgedrows.New(),
		held:   make([]bool, c.Grid.NumTracks()),
	}
	p.Restart()
	return p, nil
}

// Restart clears every result and counter so the chart can be played
// again from the start.
func (p *Player) Restart() {
	p.grid.ResetResults()
	p.rng = rand.New(rand.NewSource(p.opts.Seed))
	p.judged.Reset(0)
	p.tapCursor = p.grid.All(0, notegrid.MaxRow)
	p.mineCursor = p.grid.All(0, notegrid.MaxRow)
	p.rowCursor, p.mineRowCursor, p.holdCursor, p.firstUncrossed = 0, 0, 0, 0
	for i := range p.held {
		p.held[i] = false
	}
	p.pending = nil
	p.breakChain()
	p.songRow = notegrid.NotFound
	p.lastSeconds = 0
	p.started = false
	p.paused = false
	p.disqualified = p.opts.Controller == Autoplay
	p.combo, p.missCombo, p.maxCombo = 0, 0, 0
}

func (p *Player) Combo() int {
	return p.combo
}

func (p *Player) MissCombo() int {
	return p.missCombo
}

func (p *Player) MaxCombo() int {
	return p.maxCombo
}

// Disqualified is true once anything but a human played a note.
func (p *Player) Disqualified() bool {
	return p.disqualified
}

func (p *Player) Chart() *chart.Chart {
	return p.chart
}

// SetPaused stops the clock for hold life. Updates while paused only
// follow the music time and the press state.
func (p *Player) SetPaused(paused bool) {
	p.paused = paused
}

// Held reports whether col is pressed.
func (p *Player) Held(col int) bool {
	return col >= 0 && col < len(p.held) && p.held[col]
}

// Done is true once every note has a result and every hold is resolved.
func (p *Player) Done() bool {
	last := p.grid.LastRow()
	return p.rowCursor > last && p.mineRowCursor > last && p.holdCursor > last
}

// Update runs one frame at musicSeconds. actions are the inputs since the
// previous frame; they are judged in time order.
func (p *Player) Update(musicSeconds float64, actions []game.Action) {
	p.actions = append(p.actions[:0], actions...)
	sort.SliceStable(p.actions, func(i, j int) bool { return p.actions[i].Seconds < p.actions[j].Seconds })

	if p.paused {
		for _, a := range p.actions {
			p.setHeld(a)
		}
		p.lastSeconds = musicSeconds
		return
	}

	dt := 0.0
	if p.started {
		dt = math.Max(0, musicSeconds-p.lastSeconds) / p.opts.MusicRate
	}
	p.lastSeconds = musicSeconds
	p.started = true
	p.songRow = p.timing.RowAtSeconds(musicSeconds)

	p.expireStrum(musicSeconds)

	earliest := musicSeconds
	if len(p.actions) > 0 && p.actions[0].Seconds < earliest {
		earliest = p.actions[0].Seconds
	}
	p.sweep(earliest)

	for _, a := range p.actions {
		p.OnButtonAction(a.Column, a.Kind, a.Seconds)
	}

	if p.opts.Controller == Autoplay {
		p.autoplayRolls()
	}
	p.crossRows(p.songRow)
	p.updateHolds(dt)
	p.updateJudgedRows(musicSeconds)
}

func (p *Player) setHeld(a game.Action) {
	if a.Column < 0 || a.Column >= len(p.held) {
		return
	}
	switch a.Kind {
	case game.Press:
		p.held[a.Column] = true
	case game.Release:
		p.held[a.Column] = false
	}
}

// stepDistance is the music time a step may land from its note.
func (p *Player) stepDistance() float64 {
	return p.tw.MaxStepDistance(p.opts.MusicRate, p.opts.MaxInputLatency)
}

// rowsBefore is the fractional row at a music time. Inside a stop the
// stopped row counts as passed.
func (p *Player) rowsBefore(seconds float64) float64 {
	beat, frozen := p.timing.BeatAtSeconds(seconds)
	row := beat * game.RowsPerBeat
	if frozen {
		row++
	}
	return row
}

// searchRows converts a step radius around seconds into rows.
func (p *Player) searchRows(seconds float64) (row, ahead, behind int) {
	d := p.stepDistance()
	row = p.timing.RowAtSeconds(seconds)
	ahead = p.timing.RowAtSeconds(seconds+d) - row
	behind = row - p.timing.RowAtSeconds(seconds-d)
	if ahead < 0 {
		ahead = 0
	}
	if behind < 0 {
		behind = 0
	}
	return row, ahead, behind
}

// offset is the signed distance of a step from its note in real seconds.
func (p *Player) offset(row int, seconds float64) float64 {
	return (seconds - p.timing.SecondsAtRow(row)) / p.opts.MusicRate
}

func assertf(ok bool, format string, args ...interface{}) {
	if !ok {
		panic(errors.Errorf(format, args...))
	}
}
