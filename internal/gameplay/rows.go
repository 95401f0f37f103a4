package gameplay

import (
	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/notegrid"
)

// updateJudgedRows reports every row that became complete, including
// rows stepped on early, and then every judged mine.
func (p *Player) updateJudgedRows(seconds float64) {
	end := p.timing.RowAtSeconds(seconds + p.stepDistance())
	p.judgeTapRows(end)
	p.judgeMineRows(end)
}

func (p *Player) judgeTapRows(end int) {
	allJudged := true
	last := notegrid.NotFound
	for it := p.grid.All(p.rowCursor, end+1); !it.AtEnd(); it.Next() {
		row := it.Row()
		if row == last {
			continue
		}
		last = row
		if !p.grid.IsRowCompletelyJudged(row) {
			allJudged = false
			continue
		}
		if allJudged {
			p.rowCursor = row
			p.judged.Advance(row)
		}
		if p.judged.JudgeRow(row) {
			continue
		}
		p.scoreTapRow(row)
	}
	if allJudged && end+1 > p.rowCursor {
		p.rowCursor = end + 1
		p.judged.Advance(p.rowCursor)
	}
}

func (p *Player) scoreTapRow(row int) {
	for col := 0; col < p.grid.NumTracks(); col++ {
		if n := p.grid.Cell(col, row); n != nil && n.Scored() && n.Result.Score > game.Miss {
			n.Result.Hidden = true
		}
	}
	if p.opts.CountNotesSeparately {
		for col := 0; col < p.grid.NumTracks(); col++ {
			if n := p.grid.Cell(col, row); n != nil && n.Scored() {
				p.reportTap(row, col, n.Result, 1)
			}
		}
		return
	}
	res, col, ok := p.grid.WorstTapResult(row)
	if !ok {
		return
	}
	assertf(res.Score >= game.Miss, "row %d complete with verdict %v", row, res.Score)
	p.reportTap(row, col, res, p.grid.NumTapNotesInRow(row))
}

// reportTap sends one verdict to the combo, life and score.
func (p *Player) reportTap(row, col int, res game.TapResult, notes int) {
	p.sink.OnJudgment(JudgmentEvent{Row: row, Column: col, Score: res.Score, Offset: res.Offset, Notes: notes})
	if res.Score >= p.opts.ComboThreshold {
		p.stepCombo(row, 1, 0)
	} else {
		p.stepCombo(row, 0, 1)
	}
	p.sink.OnLife(LifeEvent{Row: row, Tap: res.Score})
	p.sink.OnScore(ScoreEvent{Row: row, Tap: res.Score, Offset: res.Offset, Notes: notes})
}

func (p *Player) judgeMineRows(end int) {
	allJudged := true
	last := notegrid.NotFound
	for it := p.grid.All(p.mineRowCursor, end+1); !it.AtEnd(); it.Next() {
		row := it.Row()
		if row != last {
			last = row
			if allJudged {
				p.mineRowCursor = row
			}
		}
		n := it.Note()
		if n.Type != game.Mine {
			continue
		}
		if n.Result.Score == game.None {
			allJudged = false
			continue
		}
		if n.Result.Hidden {
			continue
		}
		n.Result.Hidden = true
		p.sink.OnJudgment(JudgmentEvent{Row: row, Column: it.Track(), Score: n.Result.Score, Offset: n.Result.Offset, Notes: 1})
		if n.Result.Score == game.HitMine {
			p.sink.OnLife(LifeEvent{Row: row, Tap: game.HitMine})
		}
		p.sink.OnScore(ScoreEvent{Row: row, Tap: n.Result.Score, Offset: n.Result.Offset, Notes: 1})
	}
	if allJudged && end+1 > p.mineRowCursor {
		p.mineRowCursor = end + 1
	}
}
