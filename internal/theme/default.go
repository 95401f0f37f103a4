package theme

import (
	"fmt"
	"image/color"

	"git.lost.host/meutraa/stepjudge/internal/game"
)

type DefaultTheme struct {
}

func paint(c color.RGBA, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderMine(column int) string {
	return paint(getNoteColor(1), mineSym)
}

func (t *DefaultTheme) RenderNote(column int, denom int) string {
	return paint(getNoteColor(denom), sym(syms[:], column))
}

func (t *DefaultTheme) RenderHold(column int, sub game.SubType, active bool) string {
	c := holdColor
	if sub == game.Roll {
		c = rollColor
	}
	if !active {
		c = inactiveColor
	}
	return paint(c, holdSym)
}

func (t *DefaultTheme) RenderHitField(column int, pressed bool) string {
	if pressed {
		return sym(pressedSyms[:], column)
	}
	return sym(barSyms[:], column)
}

func (t *DefaultTheme) RenderJudgment(score game.TapNoteScore) string {
	if name, ok := judgements[score]; ok {
		return name
	}
	return "           "
}

func (t *DefaultTheme) RenderHoldJudgment(score game.HoldNoteScore) string {
	switch score {
	case game.Held:
		return "\033[1;32mOK\033[0m"
	case game.LetGo:
		return "\033[1;31mNG\033[0m"
	}
	return "  "
}

func sym(s []string, column int) string {
	return s[column%len(s)]
}

const (
	mineSym = "⨯"
	holdSym = "┃"
)

var (
	syms        = [...]string{"⬤", "⬤", "⬤", "⬤"}
	barSyms     = [...]string{"-", "-", "-", "-"}
	pressedSyms = [...]string{"=", "=", "=", "="}

	holdColor     = color.RGBA{0, 200, 120, 255}
	rollColor     = color.RGBA{236, 195, 0, 255}
	inactiveColor = color.RGBA{106, 106, 106, 255}

	noteColors = map[int]color.RGBA{
		1:  {236, 30, 0, 255},    // 1/4 red
		2:  {0, 118, 236, 255},   // 1/8 blue
		3:  {106, 0, 236, 255},   // 1/12 purple
		4:  {236, 195, 0, 255},   // 1/16 yellow
		5:  {106, 106, 106, 255}, // 1/20 grey???
		6:  {236, 0, 106, 255},   // 1/24 pink
		8:  {236, 128, 0, 255},   // 1/32 orange
		12: {173, 236, 236, 255}, // 1/48 light blue
		16: {0, 236, 128, 255},   // 1/64 green
		24: {106, 106, 106, 255}, // 1/96 grey
		32: {106, 106, 106, 255}, // 1/128 grey
		48: {110, 147, 89, 255},  // 1/192 olive
		64: {106, 106, 106, 255}, // 1/256 grey
		-1: {255, 255, 255, 255}, // other white
	}

	judgements = map[game.TapNoteScore]string{
		game.W1:             "      \033[1;31mE\033[38;5;208mx\033[1;33ma\033[1;32mc\033[38;5;153mt\033[0m",
		game.W2:             "  \033[38;5;153mMarvelous\033[0m",
		game.W3:             "      \033[1;36mGreat\033[0m",
		game.W4:             "       \033[1;32mGood\033[0m",
		game.W5:             "       \033[1;31mOkay\033[0m",
		game.Miss:           "       \033[1;31mMiss\033[0m",
		game.HitMine:        "       \033[1;31mBoom\033[0m",
		game.CheckpointHit:  "       \033[1;32mTick\033[0m",
		game.CheckpointMiss: "      \033[1;31mBreak\033[0m",
	}
)

func getNoteColor(d int) color.RGBA {
	col, ok := noteColors[d]
	if !ok {
		return noteColors[-1]
	}
	return col
}
