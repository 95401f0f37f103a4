package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"git.lost.host/meutraa/stepjudge/internal/audio"
	"git.lost.host/meutraa/stepjudge/internal/chart"
	"git.lost.host/meutraa/stepjudge/internal/config"
	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/gameplay"
	"git.lost.host/meutraa/stepjudge/internal/input"
	"git.lost.host/meutraa/stepjudge/internal/parser"
	"git.lost.host/meutraa/stepjudge/internal/render"
	"git.lost.host/meutraa/stepjudge/internal/score"
	"git.lost.host/meutraa/stepjudge/internal/theme"
)

// How long after the last note a session keeps running.
const tailSeconds = 1.0

type Program struct {
	Config *config.Config
	Log    *zap.Logger
	Out    io.Writer

	Parser parser.Parser
	Theme  theme.Theme

	audioFile, chartFile string

	charts []*chart.Chart
	chart  *chart.Chart
	opts   gameplay.Options
	drain  score.DrainType
}

func (g *Program) Init() error {
	// Ensure our Default implementations are used as interfaces
	if g.Parser == nil {
		g.Parser = &parser.DefaultParser{}
	}
	if g.Theme == nil {
		g.Theme = &theme.DefaultTheme{}
	}
	if g.Out == nil {
		g.Out = os.Stdout
	}

	if err := filepath.Walk(g.Config.Directory, func(p string, info os.FileInfo, err error) error {
		if nil != err {
			return err
		}
		ext := strings.ToLower(path.Ext(info.Name()))
		for _, e := range audio.Extensions {
			if ext == e {
				g.audioFile = p
			}
		}
		if ext == ".sm" {
			g.chartFile = p
		}
		return nil
	}); nil != err {
		return errors.Wrap(err, "unable to walk song directory")
	}
	if g.chartFile == "" {
		return errors.New("unable to find a .sm file in given directory")
	}

	var err error
	g.charts, err = g.Parser.Parse(g.chartFile)
	if nil != err {
		return err
	}
	if len(g.charts) == 0 {
		return errors.Errorf("%v has no playable charts", g.chartFile)
	}
	g.chart = g.charts[0]
	if name := g.Config.Difficulty; name != "" {
		g.chart = nil
		for _, c := range g.charts {
			if strings.EqualFold(c.Difficulty.Name, name) {
				g.chart = c
				break
			}
		}
		if g.chart == nil {
			return errors.Errorf("no %v chart in %v", name, g.chartFile)
		}
	}

	judge := config.DefaultJudge()
	if g.Config.JudgeFile != "" {
		dir, file := filepath.Split(g.Config.JudgeFile)
		if dir == "" {
			dir = "."
		}
		judge, err = config.ReadJudge(os.DirFS(dir), file)
		if nil != err {
			return err
		}
	}
	g.opts, err = judge.Options()
	if nil != err {
		return err
	}
	g.opts.MusicRate = g.Config.Rate
	g.opts.Frets = g.chart.Difficulty.Frets
	g.opts.Seed = g.Config.Seed

	var ok bool
	if g.drain, ok = score.ParseDrainType(g.Config.Drain); !ok {
		return errors.Errorf("unknown drain %q", g.Config.Drain)
	}

	g.Log.Info("loaded chart",
		zap.String("file", g.chartFile),
		zap.String("difficulty", g.chart.Difficulty.Name),
		zap.Int64("notes", g.chart.NoteCount),
		zap.Bool("frets", g.chart.Difficulty.Frets),
	)
	return nil
}

func (g *Program) session(sinks ...gameplay.Sink) (*gameplay.Player, *score.LifeMeter, *score.Keeper, error) {
	life := score.NewLifeMeter(g.drain)
	keeper := score.NewKeeper(g.chart)
	p, err := gameplay.New(g.chart, g.opts, append(gameplay.Sinks{life, keeper}, sinks...), g.Log)
	if nil != err {
		return nil, nil, nil, err
	}
	return p, life, keeper, nil
}

func current(life *score.LifeMeter, keeper *score.Keeper) score.Score {
	s := keeper.Score()
	s.Life = life.Life()
	s.Failed = life.Failed()
	return s
}

// Play runs the chart against the keyboard with the song playing, then
// saves the inputs.
func (g *Program) Play() error {
	if g.audioFile == "" {
		return errors.New("unable to find .mp3/.ogg/.wav file in given directory")
	}
	store, err := score.Open(g.Config.Database, g.Log)
	if nil != err {
		return err
	}
	defer store.Close()

	music, err := audio.Open(g.audioFile, g.Config.Rate, g.Config.Offset)
	if nil != err {
		return err
	}
	defer music.Close()

	nKeys := g.chart.Difficulty.NKeys
	kb, err := input.Open(g.Config.Keys(nKeys), g.Config.StrumKey(), g.chart.Difficulty.Frets, g.Config.ReleaseAfter)
	if nil != err {
		return err
	}
	defer func() {
		if err := kb.Close(); nil != err {
			g.Log.Warn("unable to close keyboard", zap.Error(err))
		}
	}()

	r := render.NewDefaultRenderer()
	// Clear the screen and hide the cursor
	if err := r.Init(); nil != err {
		return err
	}
	columns, rows, err := r.Size()
	if nil != err {
		r.Deinit()
		return err
	}
	field := render.NewField(r, g.Theme, g.chart, columns, rows, g.Config.ColumnSpacing, g.Config.BarRow, g.Config.LineSeconds())
	p, life, keeper, err := g.session(field)
	if nil != err {
		r.Deinit()
		return err
	}

	recorded := []game.Action{}
	paused := false
	var loopErr error
	end := math.Max(g.chart.LastSecond(), music.Length()) + tailSeconds*g.Config.Rate

	music.PlayAfter(g.Config.Delay)
	r.RenderLoop(g.Config.FramePeriod, func(_ time.Duration) bool {
		now := music.Seconds()
		actions, quit, err := kb.Poll(now)
		if nil != err {
			loopErr = err
			return false
		}
		if kb.PauseToggled() {
			paused = !paused
			music.SetPaused(paused)
			p.SetPaused(paused)
		}
		recorded = append(recorded, actions...)
		p.Update(now, actions)
		field.Draw(now, p.Held, current(life, keeper))
		if quit {
			return false
		}
		return !(p.Done() && now > g.chart.LastSecond()+tailSeconds*g.Config.Rate) && now < end
	})

	// Restore the terminal state
	if err := r.Deinit(); nil != err {
		g.Log.Warn("unable to restore terminal", zap.Error(err))
	}
	if nil != loopErr {
		return loopErr
	}

	if err := store.Save(g.chart, recorded, g.Config.Rate); nil != err {
		return err
	}
	g.printScore(current(life, keeper), p.MaxCombo())
	return nil
}

// Autoplay lets the computer play the chart on a fixed clock, without
// sound or drawing.
func (g *Program) Autoplay() (score.Score, error) {
	g.opts.Controller = gameplay.Autoplay
	p, life, keeper, err := g.session()
	if nil != err {
		return score.Score{}, err
	}
	clock := audio.NewStepClock(math.Min(0, g.chart.Timing.FirstBeatSeconds)-tailSeconds, 1/g.Config.RefreshRate)
	end := g.chart.LastSecond() + 10*g.Config.Rate
	for ; !p.Done() && clock.Seconds() <= end; clock.Tick() {
		p.Update(clock.Seconds(), nil)
	}
	s := current(life, keeper)
	g.printScore(s, p.MaxCombo())
	return s, nil
}

// Replay judges every saved performance of the chart again.
func (g *Program) Replay() ([]score.Score, error) {
	store, err := score.Open(g.Config.Database, g.Log)
	if nil != err {
		return nil, err
	}
	defer store.Close()

	histories, err := store.Load(g.chart)
	if nil != err {
		return nil, err
	}
	scores := []score.Score{}
	for i := range histories {
		h := &histories[i]
		s, err := score.Replay(g.chart, h, g.opts, g.drain, g.Log)
		if nil != err {
			return nil, err
		}
		fmt.Fprintf(g.Out, "%v  %4.2fx  ", h.Played.Format("2006-01-02 15:04"), h.Rate)
		g.printScore(s, s.MaxCombo)
		scores = append(scores, s)
	}
	if len(histories) == 0 {
		fmt.Fprintln(g.Out, "no saved performances for", g.chart.Difficulty.Name)
	}
	return scores, nil
}

func (g *Program) printScore(s score.Score, maxCombo int) {
	status := "cleared"
	if s.Failed {
		status = "failed"
	}
	fmt.Fprintf(g.Out, "%6.2f%%  %v  W1 %v  W2 %v  W3 %v  W4 %v  W5 %v  Miss %v  OK %v  NG %v  combo %v  mean %v  stdev %v\n",
		100*s.Percent(), status,
		s.Taps[game.W1], s.Taps[game.W2], s.Taps[game.W3], s.Taps[game.W4], s.Taps[game.W5], s.Taps[game.Miss],
		s.Holds[game.Held], s.Holds[game.LetGo], maxCombo, s.MeanError, s.StdDev)
}
