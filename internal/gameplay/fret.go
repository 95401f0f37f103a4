package gameplay

import (
	"go.uber.org/zap"

	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/notegrid"
	"git.lost.host/meutraa/stepjudge/internal/window"
)

// pendingStrum is a strum that matched no row yet. A fret change inside
// the strum window can still complete it.
type pendingStrum struct {
	seconds float64
}

// chain is the last note played in guitar mode, the anchor for
// hammer-ons and pull-offs.
type chain struct {
	column  int
	row     int
	seconds float64
}

// fret handles a fret change. A pending strum is retried first. When it
// does not play, a press with no higher fret held is a hammer-on, and a
// release with no higher fret held pulls off to the next lower fret. A
// press that plays nothing breaks holds it does not anchor.
func (p *Player) fret(col int, pressed bool, seconds float64) game.TapNoteScore {
	if !pressed {
		p.releaseHold(col, p.timing.RowAtSeconds(seconds))
	}
	if p.pending != nil {
		if score := p.judgeStrum(p.pending.seconds); score != game.None {
			p.pending = nil
			return score
		}
	}
	if !p.heldAbove(col) {
		target := col
		if !pressed {
			target = p.highestFret()
		}
		if target != notegrid.NotFound {
			if score := p.hopo(target, seconds); score != game.None {
				return score
			}
		}
	}
	if pressed {
		cols := p.activeHoldColumns()
		if len(cols) >= 2 || (len(cols) == 1 && col > cols[0]) {
			p.log.Debug("fret broke holds", zap.Int("column", col), zap.Ints("holds", cols))
			p.letGoActiveHolds()
		}
	}
	return game.None
}

func (p *Player) highestFret() int {
	for col := len(p.held) - 1; col >= 0; col-- {
		if p.held[col] {
			return col
		}
	}
	return notegrid.NotFound
}

func (p *Player) heldAbove(col int) bool {
	for c := col + 1; c < len(p.held); c++ {
		if p.held[c] {
			return true
		}
	}
	return false
}

// strum plays the nearest open row, or waits for the frets to match it.
// A strum still waiting is a miss. A strum that plays nothing ends the
// hopo chain.
func (p *Player) strum(seconds float64) game.TapNoteScore {
	if p.pending != nil {
		p.strumMiss(p.pending.seconds)
	}
	if score := p.judgeStrum(seconds); score != game.None {
		return score
	}
	p.breakChain()
	p.pending = &pendingStrum{seconds: seconds}
	return game.None
}

func (p *Player) expireStrum(seconds float64) {
	if p.pending != nil && seconds-p.pending.seconds > p.opts.StrumWindow*p.opts.MusicRate {
		p.strumMiss(p.pending.seconds)
	}
}

// strumMiss drops the pending strum. Strumming off the chord also lets
// go of every hold.
func (p *Player) strumMiss(seconds float64) {
	p.pending = nil
	p.breakChain()
	p.tapScoreNone(p.timing.RowAtSeconds(seconds), notegrid.NotFound)
	p.letGoActiveHolds()
}

func (p *Player) judgeStrum(seconds float64) game.TapNoteScore {
	rowNow, ahead, behind := p.searchRows(seconds)
	row := p.grid.ClosestNonEmptyRow(rowNow, ahead, behind)
	if row == notegrid.NotFound || !p.fretsMatch(row) {
		return game.None
	}
	offset := p.offset(row, seconds)
	score := p.tw.SecondsToTier(window.Tap, offset)
	if score == game.None {
		return game.None
	}
	col := notegrid.NotFound
	for c := 0; c < p.grid.NumTracks(); c++ {
		if n := p.grid.Cell(c, row); n != nil && n.Scored() && n.Result.Score == game.None {
			p.setResult(row, c, n, score, offset)
			col = c
		}
	}
	p.chain = chain{column: col, row: row, seconds: seconds}
	return score
}

func (p *Player) breakChain() {
	p.chain = chain{column: notegrid.NotFound, row: notegrid.NotFound}
}

// fretsMatch is true when the held frets play row: a single note needs
// its fret to be the highest held, a chord needs exactly its frets from
// its lowest note up. Frets below the chord may stay held.
func (p *Player) fretsMatch(row int) bool {
	notes, low, top := 0, notegrid.NotFound, notegrid.NotFound
	for col := 0; col < p.grid.NumTracks(); col++ {
		if n := p.grid.Cell(col, row); n != nil && n.Scored() {
			if notes == 0 {
				low = col
			}
			notes++
			top = col
		}
	}
	switch notes {
	case 0:
		return false
	case 1:
		return p.highestFret() == top
	}
	for col := low; col < p.grid.NumTracks(); col++ {
		n := p.grid.Cell(col, row)
		if (n != nil && n.Scored()) != p.held[col] {
			return false
		}
	}
	return true
}

// hopo plays a single note on col chained from the last note played,
// without a strum. The chain needs a new column, the hopo window, and a
// previous row that was hit.
func (p *Player) hopo(col int, seconds float64) game.TapNoteScore {
	if p.chain.row == notegrid.NotFound || col == p.chain.column {
		return game.None
	}
	if seconds-p.chain.seconds > p.opts.HopoWindow*p.opts.MusicRate {
		return game.None
	}
	rowNow, ahead, behind := p.searchRows(seconds)
	row := p.grid.ClosestNote(col, rowNow, ahead, behind, false)
	if row == notegrid.NotFound || p.grid.NumTapNotesInRow(row) != 1 {
		return game.None
	}
	n := p.grid.Cell(col, row)
	if !n.Scored() {
		return game.None
	}
	prev := p.grid.PrevTapNoteRow(row)
	if prev == notegrid.NotFound || !p.grid.IsRowCompletelyJudged(prev) {
		return game.None
	}
	if res, _, _ := p.grid.WorstTapResult(prev); res.Score <= game.Miss {
		return game.None
	}
	offset := p.offset(row, seconds)
	score := p.tw.SecondsToTier(window.Tap, offset)
	if score == game.None {
		return game.None
	}
	p.setResult(row, col, n, score, offset)
	p.chain = chain{column: col, row: row, seconds: seconds}
	return score
}
