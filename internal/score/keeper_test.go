package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/gameplay"
	"git.lost.host/meutraa/stepjudge/internal/testdata"
)

func TestKeeper(t *testing.T) {
	c, err := testdata.GetChart()
	if nil != err {
		t.Fatal(err)
	}
	k := NewKeeper(c)
	events := []gameplay.ScoreEvent{
		{Tap: game.W1, Offset: 0.010, Notes: 1},
		{Tap: game.W2, Offset: -0.030, Notes: 2},
		{Tap: game.Miss, Notes: 1},
		{Tap: game.AvoidMine, Notes: 1},
		{Hold: game.Held, Notes: 1},
		{Hold: game.LetGo, Notes: 1},
	}
	for _, e := range events {
		k.OnScore(e)
	}
	k.OnCombo(gameplay.ComboEvent{Combo: 3})
	k.OnCombo(gameplay.ComboEvent{OldCombo: 3, Combo: 0})

	s := k.Score()
	if s.MaxPoints != 28 {
		t.Error("max points", s.MaxPoints)
	}
	// 2 + 2*2 - 8 + 6
	if s.Points != 4 {
		t.Error("points", s.Points)
	}
	if s.Taps[game.W2] != 2 || s.Taps[game.AvoidMine] != 1 || s.Holds[game.LetGo] != 1 {
		t.Error("counts", s.Taps, s.Holds)
	}
	if s.MissCount != 1 || s.MaxCombo != 3 {
		t.Error("misses", s.MissCount, "max combo", s.MaxCombo)
	}
	if s.TotalError != 40*time.Millisecond {
		t.Error("total error", s.TotalError)
	}
	if s.MeanError != -10*time.Millisecond || s.StdDev != 20*time.Millisecond {
		t.Error("mean", s.MeanError, "stddev", s.StdDev)
	}

	k.Reset()
	if s := k.Score(); s.Points != 0 || len(s.Taps) != 0 || s.MaxPoints != 28 {
		t.Error("reset", s)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		s    Score
		want float64
	}{
		{Score{Points: 14, MaxPoints: 28}, 0.5},
		{Score{Points: -3, MaxPoints: 28}, 0},
		{Score{Points: 3}, 0},
	}
	for _, test := range tests {
		if got := test.s.Percent(); got != test.want {
			t.Log(test.s.Points, test.s.MaxPoints, "got", got, "want", test.want)
			t.Fail()
		}
	}
}
