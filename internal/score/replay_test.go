package score

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/gameplay"
	"git.lost.host/meutraa/stepjudge/internal/testdata"
)

func tapAt(col int, seconds float64) []game.Action {
	return []game.Action{
		{Column: col, Kind: game.Press, Seconds: seconds},
		{Column: col, Kind: game.Release, Seconds: seconds + 0.05},
	}
}

// perfectHistory hits every note of the test chart on time, holds the
// hold and keeps tapping the roll.
func perfectHistory() *History {
	h := &History{Rate: 1}
	for col, s := range []float64{0, 0.48, 0.96, 1.44} {
		h.Actions = append(h.Actions, tapAt(col, s)...)
	}
	h.Actions = append(h.Actions,
		game.Action{Column: 0, Kind: game.Press, Seconds: 1.92},
		game.Action{Column: 0, Kind: game.Release, Seconds: 2.95},
	)
	h.Actions = append(h.Actions, tapAt(3, 1.92)...)
	for s := 2.1; s < 5.2; s += 0.2 {
		h.Actions = append(h.Actions, tapAt(3, s)...)
	}
	h.Actions = append(h.Actions, tapAt(0, 3.84)...)
	h.Actions = append(h.Actions, tapAt(1, 3.84)...)
	return h
}

func TestReplayPerfect(t *testing.T) {
	c, err := testdata.GetChart()
	if nil != err {
		t.Fatal(err)
	}
	s, err := Replay(c, perfectHistory(), gameplay.DefaultOptions(), DrainNormal, zaptest.NewLogger(t))
	if nil != err {
		t.Fatal(err)
	}
	if s.Taps[game.W1] != 8 || s.Holds[game.Held] != 2 || s.Taps[game.AvoidMine] != 1 {
		t.Error("taps", s.Taps, "holds", s.Holds)
	}
	if s.Percent() != 1 || s.MissCount != 0 || s.Failed {
		t.Error("points", s.Points, "of", s.MaxPoints, "misses", s.MissCount, "failed", s.Failed)
	}
}

func TestReplayNothing(t *testing.T) {
	c, err := testdata.GetChart()
	if nil != err {
		t.Fatal(err)
	}
	s, err := Replay(c, &History{Rate: 1}, gameplay.DefaultOptions(), DrainNormal, nil)
	if nil != err {
		t.Fatal(err)
	}
	if s.Taps[game.Miss] != 8 || s.Holds[game.LetGo] != 2 || s.MissCount != 8 {
		t.Error("taps", s.Taps, "holds", s.Holds)
	}
	if !s.Failed || s.Life != 0 || s.Percent() != 0 {
		t.Error("life", s.Life, "failed", s.Failed, "percent", s.Percent())
	}
}

func TestReplayIsRepeatable(t *testing.T) {
	c, err := testdata.GetChart()
	if nil != err {
		t.Fatal(err)
	}
	h := perfectHistory()
	// an early hold release and a stray press make it less than perfect
	h.Actions[9].Seconds = 2.2
	h.Actions = append(h.Actions, tapAt(2, 3.0)...)

	first, err := Replay(c, h, gameplay.DefaultOptions(), DrainNormal, nil)
	if nil != err {
		t.Fatal(err)
	}
	second, err := Replay(c, h, gameplay.DefaultOptions(), DrainNormal, nil)
	if nil != err {
		t.Fatal(err)
	}
	if first.Points != second.Points || first.MaxCombo != second.MaxCombo || first.Life != second.Life {
		t.Error("first", first.Points, first.MaxCombo, first.Life)
		t.Error("second", second.Points, second.MaxCombo, second.Life)
	}
	if first.Holds[game.LetGo] != 1 {
		t.Error("early release should let the hold go", first.Holds)
	}
}
