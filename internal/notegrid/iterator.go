package notegrid

import "git.lost.host/meutraa/stepjudge/internal/game"

// Iterator walks every note of a row range across all tracks, ordered by
// row and then by track. Copies share position; use Clone to fork one.
type Iterator struct {
	g     *Grid
	pos   []int
	end   int
	track int
}

// All iterates the notes in [start, end).
func (g *Grid) All(start, end int) *Iterator {
	it := &Iterator{g: g, pos: make([]int, len(g.tracks)), end: end}
	for col := range g.tracks {
		it.pos[col] = g.lowerBound(col, start)
	}
	it.pick()
	return it
}

func (it *Iterator) pick() {
	it.track = NotFound
	best := it.end
	for col, i := range it.pos {
		t := it.g.tracks[col]
		if i < len(t) && t[i].row < best {
			best = t[i].row
			it.track = col
		}
	}
}

func (it *Iterator) AtEnd() bool {
	return it.track == NotFound
}

func (it *Iterator) Track() int {
	return it.track
}

func (it *Iterator) Row() int {
	return it.g.tracks[it.track][it.pos[it.track]].row
}

func (it *Iterator) Note() *game.Note {
	return &it.g.tracks[it.track][it.pos[it.track]].note
}

func (it *Iterator) Next() {
	if it.AtEnd() {
		return
	}
	it.pos[it.track]++
	it.pick()
}

// Seek moves forward to the first note at or after row. It never moves
// backward.
func (it *Iterator) Seek(row int) {
	for col := range it.pos {
		if i := it.g.lowerBound(col, row); i > it.pos[col] {
			it.pos[col] = i
		}
	}
	it.pick()
}

func (it *Iterator) Clone() *Iterator {
	c := *it
	c.pos = append([]int(nil), it.pos...)
	return &c
}
