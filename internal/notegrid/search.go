package notegrid

import (
	"git.lost.host/meutraa/stepjudge/internal/game"
)

func matches(n *game.Note, allowGraded bool) bool {
	if !n.Steppable() {
		return false
	}
	if allowGraded {
		return true
	}
	return n.Result.Score == game.None && !n.Result.Hidden
}

// closestForward is the first matching row of col in [start, end].
func (g *Grid) closestForward(col, start, end int, allowGraded bool) int {
	found := NotFound
	g.ForEach(col, start, end+1, func(row int, n *game.Note) bool {
		if matches(n, allowGraded) {
			found = row
			return false
		}
		return true
	})
	return found
}

// closestBackward is the last matching row of col in [start, end].
func (g *Grid) closestBackward(col, start, end int, allowGraded bool) int {
	found := NotFound
	g.ForEachReverse(col, start, end+1, func(row int, n *game.Note) bool {
		if matches(n, allowGraded) {
			found = row
			return false
		}
		return true
	})
	return found
}

func nearest(row, prev, next int) int {
	switch {
	case prev == NotFound:
		return next
	case next == NotFound:
		return prev
	case next-row < row-prev:
		return next
	}
	// equal distance goes to the earlier row
	return prev
}

// ClosestNote searches col for the steppable note nearest to row within
// [row-behind, row+ahead].
func (g *Grid) ClosestNote(col, row, ahead, behind int, allowGraded bool) int {
	if col < 0 || col >= len(g.tracks) || ahead < 0 || behind < 0 {
		return NotFound
	}
	next := g.closestForward(col, row, row+ahead, allowGraded)
	prev := NotFound
	if behind > 0 {
		prev = g.closestBackward(col, row-behind, row-1, allowGraded)
	}
	return nearest(row, prev, next)
}

// ClosestNonEmptyRow is the nearest row within [row-behind, row+ahead]
// that still has an unjudged scored note in any track.
func (g *Grid) ClosestNonEmptyRow(row, ahead, behind int) int {
	if ahead < 0 || behind < 0 {
		return NotFound
	}
	next, prev := NotFound, NotFound
	for col := range g.tracks {
		g.ForEach(col, row, row+ahead+1, func(r int, n *game.Note) bool {
			if n.Scored() && n.Result.Score == game.None {
				if next == NotFound || r < next {
					next = r
				}
				return false
			}
			return true
		})
		if behind == 0 {
			continue
		}
		g.ForEachReverse(col, row-behind, row, func(r int, n *game.Note) bool {
			if n.Scored() && n.Result.Score == game.None {
				if r > prev {
					prev = r
				}
				return false
			}
			return true
		})
	}
	return nearest(row, prev, next)
}

// IsRowCompletelyJudged is false while any scored note on row has no
// result yet.
func (g *Grid) IsRowCompletelyJudged(row int) bool {
	for col := range g.tracks {
		n := g.Cell(col, row)
		if n != nil && n.Scored() && n.Result.Score == game.None {
			return false
		}
	}
	return true
}

// WorstTapResult is the row verdict: the lowest score among the scored
// notes on row. Equal scores keep the later offset. ok is false when the
// row has no scored notes.
func (g *Grid) WorstTapResult(row int) (res game.TapResult, track int, ok bool) {
	track = NotFound
	for col := range g.tracks {
		n := g.Cell(col, row)
		if n == nil || !n.Scored() {
			continue
		}
		r := n.Result
		if !ok || r.Score < res.Score || (r.Score == res.Score && r.Offset > res.Offset) {
			res, track, ok = r, col, true
		}
	}
	return res, track, ok
}

func (g *Grid) NumTapNotesInRow(row int) int {
	count := 0
	for col := range g.tracks {
		if n := g.Cell(col, row); n != nil && n.Scored() {
			count++
		}
	}
	return count
}

func (g *Grid) FirstTrackWithTapOrHoldHead(row int) int {
	for col := range g.tracks {
		if n := g.Cell(col, row); n != nil && (n.Type == game.Tap || n.Type == game.HoldHead) {
			return col
		}
	}
	return NotFound
}

func (g *Grid) IsThereATapOrHoldHeadAtRow(row int) bool {
	return g.FirstTrackWithTapOrHoldHead(row) != NotFound
}

// PrevTapNoteRow is the last row before row with a scored note in any
// track.
func (g *Grid) PrevTapNoteRow(row int) int {
	prev := NotFound
	for col := range g.tracks {
		g.ForEachReverse(col, 0, row, func(r int, n *game.Note) bool {
			if !n.Scored() {
				return true
			}
			if r > prev {
				prev = r
			}
			return false
		})
	}
	return prev
}
