// Package chart is one playable difficulty of a song: its notes, tempo
// map and the counts shown before play.
package chart

import (
	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/notegrid"
)

type Chart struct {
	Grid       *notegrid.Grid
	Timing     *game.TimingData
	Measures   []game.Measure
	Difficulty game.Difficulty
	Hash       string

	NoteCount int64
	HoldCount int64
	MineCount int64
	// NoteCounts[i] is the number of rows with i+1 simultaneous notes.
	NoteCounts []int64
}

// New wraps a grid and counts its notes.
func New(grid *notegrid.Grid, timing *game.TimingData, difficulty game.Difficulty) *Chart {
	c := &Chart{
		Grid:       grid,
		Timing:     timing,
		Difficulty: difficulty,
		NoteCounts: make([]int64, grid.NumTracks()),
	}
	c.count()
	return c
}

func (c *Chart) count() {
	chord, row := 0, notegrid.NotFound
	flush := func() {
		if chord > 0 {
			c.NoteCounts[chord-1]++
		}
		chord = 0
	}
	for it := c.Grid.All(0, notegrid.MaxRow); !it.AtEnd(); it.Next() {
		if it.Row() != row {
			flush()
			row = it.Row()
		}
		n := it.Note()
		switch n.Type {
		case game.Mine:
			c.MineCount++
		case game.HoldHead:
			c.HoldCount++
		}
		if n.Scored() {
			c.NoteCount++
			chord++
		}
	}
	flush()
}

// Seconds is the music time of a row.
func (c *Chart) Seconds(row int) float64 {
	return c.Timing.SecondsAtRow(row)
}

// LastSecond is when the last note or hold ends.
func (c *Chart) LastSecond() float64 {
	last := c.Grid.LastRow()
	if last == notegrid.NotFound {
		return c.Timing.FirstBeatSeconds
	}
	return c.Seconds(last)
}
