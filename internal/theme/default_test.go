package theme

import (
	"strings"
	"testing"

	"git.lost.host/meutraa/stepjudge/internal/game"
)

func TestNoteColors(t *testing.T) {
	tests := map[int]string{
		1:  "38;2;236;30;0m",
		2:  "38;2;0;118;236m",
		7:  "38;2;255;255;255m",
		48: "38;2;110;147;89m",
	}
	th := DefaultTheme{}
	for denom, want := range tests {
		if got := th.RenderNote(0, denom); !strings.Contains(got, want) {
			t.Log(denom, "got", got, "want", want)
			t.Fail()
		}
	}
}

func TestJudgmentLabels(t *testing.T) {
	th := DefaultTheme{}
	for _, s := range []game.TapNoteScore{game.W2, game.W3, game.W4, game.W5, game.Miss} {
		if !strings.Contains(th.RenderJudgment(s), "m") {
			t.Error("no label for", s)
		}
	}
	if strings.TrimSpace(th.RenderJudgment(game.None)) != "" {
		t.Error("None has a label")
	}
	if th.RenderHoldJudgment(game.Held) == th.RenderHoldJudgment(game.LetGo) {
		t.Error("hold labels are the same")
	}
	// more columns than symbols wrap around
	if th.RenderHitField(5, false) != th.RenderHitField(1, false) {
		t.Error("hit field does not wrap")
	}
}
