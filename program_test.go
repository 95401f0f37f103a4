package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"git.lost.host/meutraa/stepjudge/internal/config"
	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/score"
	"git.lost.host/meutraa/stepjudge/internal/testdata"
)

func songDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "test.sm"), []byte(testdata.Simfile), 0o644); nil != err {
		t.Fatal(err)
	}
	return dir
}

func newProgram(t *testing.T, args ...string) (*Program, *bytes.Buffer) {
	t.Helper()
	c, err := config.Parse(args)
	if nil != err {
		t.Fatal(err)
	}
	var out bytes.Buffer
	g := &Program{Config: c, Log: zaptest.NewLogger(t), Out: &out}
	if err := g.Init(); nil != err {
		t.Fatal(err)
	}
	return g, &out
}

func TestAutoplay(t *testing.T) {
	g, out := newProgram(t, "autoplay", songDir(t))
	s, err := g.Autoplay()
	if nil != err {
		t.Fatal(err)
	}
	if s.Percent() != 1 || s.Taps[game.W1] != 8 || s.Holds[game.Held] != 2 || s.Failed {
		t.Error("score", s.Points, s.MaxPoints, s.Taps, s.Holds)
	}
	if !strings.HasPrefix(out.String(), "100.00%  cleared") {
		t.Errorf("printed %q", out.String())
	}
}

func TestDifficultySelection(t *testing.T) {
	dir := songDir(t)
	g, _ := newProgram(t, "--difficulty", "medium", "autoplay", dir)
	if !g.chart.Difficulty.Frets || !g.opts.Frets {
		t.Error("picked", g.chart.Difficulty.Name)
	}

	c, err := config.Parse([]string{"--difficulty", "Challenge", "autoplay", dir})
	if nil != err {
		t.Fatal(err)
	}
	p := &Program{Config: c, Log: zaptest.NewLogger(t)}
	if err := p.Init(); nil == err {
		t.Error("found a missing difficulty")
	}
}

func TestJudgeFile(t *testing.T) {
	dir := songDir(t)
	judge := filepath.Join(t.TempDir(), "judge.yaml")
	j := config.DefaultJudge()
	j.ComboThreshold = "W1"
	if err := config.WriteJudge(judge, j); nil != err {
		t.Fatal(err)
	}
	g, _ := newProgram(t, "--judge", judge, "--rate", "1.5", "replay", dir)
	if g.opts.ComboThreshold != game.W1 || g.opts.MusicRate != 1.5 {
		t.Error("options", g.opts.ComboThreshold, g.opts.MusicRate)
	}
}

func TestReplay(t *testing.T) {
	dir := songDir(t)
	db := filepath.Join(t.TempDir(), "scores.db")
	g, out := newProgram(t, "--db", db, "replay", dir)

	scores, err := g.Replay()
	if nil != err || len(scores) != 0 {
		t.Fatal(scores, err)
	}
	if !strings.Contains(out.String(), "no saved performances") {
		t.Errorf("printed %q", out.String())
	}

	store, err := score.Open(db, nil)
	if nil != err {
		t.Fatal(err)
	}
	actions := []game.Action{
		{Column: 0, Kind: game.Press, Seconds: 0.01},
		{Column: 0, Kind: game.Release, Seconds: 0.05},
	}
	if err := store.Save(g.chart, actions, 1); nil != err {
		t.Fatal(err)
	}
	store.Close()

	scores, err = g.Replay()
	if nil != err || len(scores) != 1 {
		t.Fatal(scores, err)
	}
	if scores[0].Taps[game.W1] != 1 || scores[0].Taps[game.Miss] != 7 {
		t.Error("taps", scores[0].Taps)
	}
}

func TestMissingChart(t *testing.T) {
	c, err := config.Parse([]string{"autoplay", t.TempDir()})
	if nil != err {
		t.Fatal(err)
	}
	g := &Program{Config: c, Log: zaptest.NewLogger(t)}
	if err := g.Init(); nil == err {
		t.Error("initialised without a chart")
	}
}
