package render

import (
	"fmt"
	"image/color"
	"math"

	"git.lost.host/meutraa/stepjudge/internal/chart"
	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/gameplay"
	"git.lost.host/meutraa/stepjudge/internal/score"
	"git.lost.host/meutraa/stepjudge/internal/theme"
)

const (
	judgmentFrames = 240
	missFrames     = 240
)

var measureColor = color.RGBA{106, 106, 106, 255}

type position struct {
	row, col uint16
}

type label struct {
	text   string
	frames int
}

// Field draws the scrolling notes of a chart and shows the verdicts a
// session sends it.
type Field struct {
	gameplay.NopSink

	r  Renderer
	th theme.Theme
	c  *chart.Chart

	columns     []int
	rows        int
	barLine     int
	center      int
	sideCol     int
	lineSeconds float64

	combo    int
	judgment label
	holds    []label
	drawn    []position
}

// NewField lays the chart out on a console of width by height cells.
// Notes scroll lineSeconds of music time per console line and are hit on
// the line barRow up from the bottom.
func NewField(r Renderer, th theme.Theme, c *chart.Chart, width, height int, spacing, barRow uint, lineSeconds float64) *Field {
	n := c.Grid.NumTracks()
	mc := width >> 1
	f := &Field{
		r:           r,
		th:          th,
		c:           c,
		columns:     make([]int, n),
		rows:        height,
		barLine:     height - int(barRow),
		center:      height >> 1,
		lineSeconds: lineSeconds,
		holds:       make([]label, n),
	}
	for i := range f.columns {
		f.columns[i] = mc + int(spacing)*(2*i-(n-1))
	}
	f.sideCol = f.columns[0] - 36
	if f.sideCol < 2 {
		f.sideCol = 2
	}
	return f
}

func (f *Field) OnJudgment(e gameplay.JudgmentEvent) {
	if e.Score == game.None || e.Score == game.AvoidMine {
		return
	}
	f.judgment = label{text: f.th.RenderJudgment(e.Score), frames: judgmentFrames}
	if e.Score == game.Miss && e.Column >= 0 && e.Column < len(f.columns) {
		col, cen := uint16(f.columns[e.Column]), uint16(f.center)
		f.r.AddDecoration(col-1, cen-1, "\033[1;31m╭\033[0m", missFrames)
		f.r.AddDecoration(col+1, cen-1, "\033[1;31m╮\033[0m", missFrames)
		f.r.AddDecoration(col-1, cen, "\033[1;31m╰\033[0m", missFrames)
		f.r.AddDecoration(col+1, cen, "\033[1;31m╯\033[0m", missFrames)
	}
}

func (f *Field) OnHoldJudgment(e gameplay.HoldJudgmentEvent) {
	if e.Column >= 0 && e.Column < len(f.holds) {
		f.holds[e.Column] = label{text: f.th.RenderHoldJudgment(e.Score), frames: judgmentFrames}
	}
}

func (f *Field) OnCombo(e gameplay.ComboEvent) {
	f.combo = e.Combo
}

func (f *Field) line(row int, now float64) int {
	return f.barLine - int(math.Round((f.c.Seconds(row)-now)/f.lineSeconds))
}

func (f *Field) visible(line int) bool {
	return line > 0 && line <= f.rows
}

func (f *Field) put(line, col int, s string) {
	p := position{row: uint16(line), col: uint16(col)}
	f.r.Fill(p.row, p.col, s)
	f.drawn = append(f.drawn, p)
}

// Draw renders one frame at music time now. held reports pressed columns.
func (f *Field) Draw(now float64, held func(col int) bool, s score.Score) {
	for _, p := range f.drawn {
		f.r.Fill(p.row, p.col, " ")
	}
	f.drawn = f.drawn[:0]

	top := now + float64(f.barLine)*f.lineSeconds
	bottom := now - float64(f.rows-f.barLine+1)*f.lineSeconds
	start := f.c.Timing.RowAtSeconds(bottom) - 1
	if start < 0 {
		start = 0
	}
	end := f.c.Timing.RowAtSeconds(top) + 2

	for _, m := range f.c.Measures {
		if m.Denom != 1 || m.Row < start || m.Row >= end {
			continue
		}
		if l := f.line(m.Row, now); f.visible(l) {
			p := position{row: uint16(l), col: uint16(f.columns[0] - 3)}
			f.r.FillColor(p.row, p.col, measureColor, "─")
			f.drawn = append(f.drawn, p)
		}
	}

	for _, cell := range f.c.Grid.Snapshot(start, end) {
		col := f.columns[cell.Track]
		n := cell.Note
		head := f.line(cell.Row, now)
		switch n.Type {
		case game.HoldHead:
			if n.HoldResult.Score != game.HoldNone {
				continue
			}
			tail := f.line(n.EndRow(cell.Row), now)
			bodyEnd := head
			if n.HoldResult.Active && bodyEnd > f.barLine {
				bodyEnd = f.barLine
			}
			for l := tail; l < bodyEnd; l++ {
				if f.visible(l) {
					f.put(l, col, f.th.RenderHold(cell.Track, n.SubType, n.HoldResult.Active))
				}
			}
			if n.Result.Score == game.None && f.visible(head) {
				f.put(head, col, f.th.RenderNote(cell.Track, n.Denom))
			}
		case game.Tap, game.Lift, game.Fake:
			if !n.Result.Hidden && n.Result.Score <= game.Miss && f.visible(head) {
				f.put(head, col, f.th.RenderNote(cell.Track, n.Denom))
			}
		case game.Mine:
			if n.Result.Score == game.None && f.visible(head) {
				f.put(head, col, f.th.RenderMine(cell.Track))
			}
		}
	}

	for i, col := range f.columns {
		f.r.Fill(uint16(f.barLine), uint16(col), f.th.RenderHitField(i, held(i)))
		if f.holds[i].frames > 0 {
			f.holds[i].frames--
			f.r.Fill(uint16(f.barLine+1), uint16(col), f.holds[i].text)
		} else {
			f.r.Fill(uint16(f.barLine+1), uint16(col), "  ")
		}
	}

	mid := (f.columns[0] + f.columns[len(f.columns)-1]) / 2
	if f.judgment.frames > 0 {
		f.judgment.frames--
		f.r.Fill(uint16(f.center-2), uint16(mid-5), f.judgment.text)
	} else {
		f.r.Fill(uint16(f.center-2), uint16(mid-5), "           ")
	}
	if f.combo > 0 {
		f.r.Fill(uint16(f.center+2), uint16(mid-5), fmt.Sprintf("%6v combo", f.combo))
	} else {
		f.r.Fill(uint16(f.center+2), uint16(mid-5), "           ")
	}

	f.r.Fill(10, uint16(f.sideCol), fmt.Sprintf("   Error dt:  %8v", s.TotalError))
	f.r.Fill(11, uint16(f.sideCol), fmt.Sprintf("      Stdev:  %8v", s.StdDev))
	f.r.Fill(12, uint16(f.sideCol), fmt.Sprintf("       Mean:  %8v", s.MeanError))
	f.r.Fill(13, uint16(f.sideCol), fmt.Sprintf("      Total:  %8v", f.c.NoteCount))
	f.r.Fill(14, uint16(f.sideCol), fmt.Sprintf("      Mines:  %8v", f.c.MineCount))
	f.r.Fill(15, uint16(f.sideCol), fmt.Sprintf("       Life:  %7.1f%%", 100*s.Life))
	f.r.Fill(16, uint16(f.sideCol), fmt.Sprintf("      Score:  %7.2f%%", 100*s.Percent()))
	for i, tns := range []game.TapNoteScore{game.W1, game.W2, game.W3, game.W4, game.W5, game.Miss} {
		f.r.Fill(uint16(18+i), uint16(f.sideCol), fmt.Sprintf("%v:  %6v", f.th.RenderJudgment(tns), s.Taps[tns]))
	}
	f.r.Fill(24, uint16(f.sideCol), fmt.Sprintf("    %v / %v:  %3v / %-3v", f.th.RenderHoldJudgment(game.Held),
		f.th.RenderHoldJudgment(game.LetGo), s.Holds[game.Held], s.Holds[game.LetGo]))
}
