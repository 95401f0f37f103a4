package render

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

type DefaultRenderer struct {
	Out io.Writer
	Fd  int

	buffer       strings.Builder
	restoreState *term.State
	decorations  []*decoration
}

type decoration struct {
	X, Y    uint16
	Content string
	Frames  int // remaining frames until removed
}

// NewDefaultRenderer draws on stdout.
func NewDefaultRenderer() *DefaultRenderer {
	return &DefaultRenderer{Out: os.Stdout, Fd: int(os.Stdout.Fd())}
}

func (r *DefaultRenderer) Init() error {
	state, err := term.MakeRaw(r.Fd)
	if nil != err {
		return errors.Wrap(err, "unable to enter raw mode")
	}
	r.restoreState = state

	fmt.Fprintf(r.Out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.Out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if r.restoreState == nil {
		return nil
	}
	return term.Restore(r.Fd, r.restoreState)
}

func (r *DefaultRenderer) Size() (int, int, error) {
	columns, rows, err := term.GetSize(r.Fd)
	if nil != err {
		return 0, 0, errors.Wrap(err, "unable to get terminal size")
	}
	return columns, rows, nil
}

func (r *DefaultRenderer) AddDecoration(col, row uint16, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		X:       col,
		Y:       row,
		Content: content,
		Frames:  frames,
	})
	r.Fill(row, col, content)
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Y, d.X, " ")
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

// RenderLoop calls render once per frame period until it returns false.
func (r *DefaultRenderer) RenderLoop(
	framePeriod time.Duration,
	render func(duration time.Duration) bool,
) {
	cont := true
	startTime := time.Now()
	for cont {
		now := time.Now()
		deadline := now.Add(framePeriod)

		cont = render(now.Sub(startTime))

		r.tickDecorations()
		r.flush()

		time.Sleep(time.Until(deadline))
	}
}

// move positions the cursor, rows and columns counting from 1.
func (r *DefaultRenderer) move(row, column uint16) {
	var b [16]byte
	out := append(b[:0], "\033["...)
	out = strconv.AppendUint(out, uint64(row), 10)
	out = append(out, ';')
	out = strconv.AppendUint(out, uint64(column), 10)
	out = append(out, 'H')
	r.buffer.Write(out)
}

func (r *DefaultRenderer) Fill(row, column uint16, message string) {
	r.move(row, column)
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column uint16, c color.RGBA, message string) {
	r.move(row, column)
	var b [24]byte
	out := append(b[:0], "\033[38;2;"...)
	for i, v := range [...]uint8{c.R, c.G, c.B} {
		if i > 0 {
			out = append(out, ';')
		}
		out = strconv.AppendUint(out, uint64(v), 10)
	}
	out = append(out, 'm')
	r.buffer.Write(out)
	r.buffer.WriteString(message)
	r.buffer.WriteString("\033[0m")
}

func (r *DefaultRenderer) flush() {
	io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
}
