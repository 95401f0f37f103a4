// Package notegrid holds the notes of a chart as a sparse grid of tracks
// (input columns) by rows. Each track is kept sorted by row so range
// iteration and nearest-note search are binary searches.
package notegrid

import (
	"math"
	"sort"

	"git.lost.host/meutraa/stepjudge/internal/game"
)

// NotFound is returned by searches that match nothing.
const NotFound = -1

// MaxRow is an exclusive end that covers every row.
const MaxRow = math.MaxInt32

type entry struct {
	row  int
	note game.Note
}

type Grid struct {
	tracks [][]entry
}

func New(tracks int) *Grid {
	return &Grid{tracks: make([][]entry, tracks)}
}

func (g *Grid) NumTracks() int {
	return len(g.tracks)
}

// lowerBound is the index of the first note at or after row.
func (g *Grid) lowerBound(col, row int) int {
	t := g.tracks[col]
	return sort.Search(len(t), func(i int) bool { return t[i].row >= row })
}

func (g *Grid) find(col, row int) (int, bool) {
	i := g.lowerBound(col, row)
	return i, i < len(g.tracks[col]) && g.tracks[col][i].row == row
}

// SetNote places a note, replacing any note already on the cell. Setting
// an empty note removes the cell. Results start out cleared.
func (g *Grid) SetNote(col, row int, n game.Note) {
	if n.Type == game.Empty {
		g.RemoveNote(col, row)
		return
	}
	n.ResetResults()
	i, ok := g.find(col, row)
	if ok {
		g.tracks[col][i].note = n
		return
	}
	t := append(g.tracks[col], entry{})
	copy(t[i+1:], t[i:])
	t[i] = entry{row: row, note: n}
	g.tracks[col] = t
}

// AddHold places a hold or roll head covering [start, end].
func (g *Grid) AddHold(col, start, end int, sub game.SubType) {
	g.SetNote(col, start, game.Note{
		Type:     game.HoldHead,
		SubType:  sub,
		Duration: end - start,
	})
}

func (g *Grid) RemoveNote(col, row int) {
	i, ok := g.find(col, row)
	if !ok {
		return
	}
	g.tracks[col] = append(g.tracks[col][:i], g.tracks[col][i+1:]...)
}

// Note returns a copy of the cell, the zero Note when it is empty.
func (g *Grid) Note(col, row int) game.Note {
	if n := g.Cell(col, row); n != nil {
		return *n
	}
	return game.Note{}
}

// Cell returns the mutable cell or nil. Only the session owning the
// grid writes through it.
func (g *Grid) Cell(col, row int) *game.Note {
	if col < 0 || col >= len(g.tracks) {
		return nil
	}
	i, ok := g.find(col, row)
	if !ok {
		return nil
	}
	return &g.tracks[col][i].note
}

// LastRow is the last row holding a note, counting the ends of holds.
func (g *Grid) LastRow() int {
	last := NotFound
	for _, t := range g.tracks {
		if len(t) == 0 {
			continue
		}
		e := &t[len(t)-1]
		r := e.row
		if e.note.Type == game.HoldHead {
			r = e.note.EndRow(e.row)
		}
		if r > last {
			last = r
		}
	}
	return last
}

// ResetResults clears every judgment, as at the start of a session.
func (g *Grid) ResetResults() {
	for _, t := range g.tracks {
		for i := range t {
			t[i].note.ResetResults()
		}
	}
}

// ForEach calls fn for the notes of col in [start, end) in row order
// until fn returns false.
func (g *Grid) ForEach(col, start, end int, fn func(row int, n *game.Note) bool) {
	t := g.tracks[col]
	for i := g.lowerBound(col, start); i < len(t) && t[i].row < end; i++ {
		if !fn(t[i].row, &t[i].note) {
			return
		}
	}
}

// ForEachReverse is ForEach from the last row down.
func (g *Grid) ForEachReverse(col, start, end int, fn func(row int, n *game.Note) bool) {
	t := g.tracks[col]
	for i := g.lowerBound(col, end) - 1; i >= 0 && t[i].row >= start; i-- {
		if !fn(t[i].row, &t[i].note) {
			return
		}
	}
}

// HoldAt finds the hold head in col whose body covers row.
func (g *Grid) HoldAt(col, row int) (int, *game.Note) {
	t := g.tracks[col]
	i := g.lowerBound(col, row+1) - 1
	if i < 0 {
		return NotFound, nil
	}
	e := &t[i]
	if e.note.Type != game.HoldHead || e.note.EndRow(e.row) < row {
		return NotFound, nil
	}
	return e.row, &e.note
}

// Cell is a read-only copy of one note for renderers.
type Cell struct {
	Track int
	Row   int
	Note  game.Note
}

// Snapshot copies the notes in [start, end), including holds that start
// earlier but are still running at start.
func (g *Grid) Snapshot(start, end int) []Cell {
	var cells []Cell
	for col := range g.tracks {
		if row, n := g.HoldAt(col, start); n != nil && row < start {
			cells = append(cells, Cell{Track: col, Row: row, Note: *n})
		}
		g.ForEach(col, start, end, func(row int, n *game.Note) bool {
			cells = append(cells, Cell{Track: col, Row: row, Note: *n})
			return true
		})
	}
	sort.SliceStable(cells, func(i, j int) bool { return cells[i].Row < cells[j].Row })
	return cells
}
