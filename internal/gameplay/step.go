package gameplay

import (
	"go.uber.org/zap"

	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/notegrid"
	"git.lost.host/meutraa/stepjudge/internal/window"
)

// OnButtonAction judges one input and returns the score it earned, None
// when it matched nothing. Update calls it for every action of a frame;
// calling it directly judges input between frames.
func (p *Player) OnButtonAction(col int, kind game.ActionKind, seconds float64) game.TapNoteScore {
	if kind != game.Strum && (col < 0 || col >= len(p.held)) {
		p.log.Debug("input outside the chart", zap.Int("column", col), zap.Stringer("kind", kind))
		return game.None
	}
	if p.paused {
		p.setHeld(game.Action{Column: col, Kind: kind, Seconds: seconds})
		return game.None
	}
	if p.opts.Frets {
		switch kind {
		case game.Press, game.Release:
			p.held[col] = kind == game.Press
			return p.fret(col, kind == game.Press, seconds)
		case game.Strum:
			return p.strum(seconds)
		case game.Hopo:
			return p.hopo(col, seconds)
		}
		return game.None
	}

	switch kind {
	case game.Press:
		p.held[col] = true
		return p.step(col, seconds, false)
	case game.Release:
		p.held[col] = false
		p.releaseHold(col, p.timing.RowAtSeconds(seconds))
		return p.step(col, seconds, true)
	case game.Strum, game.Hopo:
		p.log.Debug("guitar input without frets", zap.Stringer("kind", kind))
	}
	return game.None
}

// refreshRoll restores the life of a roll running under col and reports
// whether there was one.
func (p *Player) refreshRoll(col, row int) bool {
	start, n := p.grid.HoldAt(col, row)
	if n == nil || n.SubType != game.Roll || n.HoldResult.Score != game.HoldNone || start > row {
		return false
	}
	initiated := !p.opts.RequireStepOnHoldHeads || n.Result.Score > game.Miss
	if !initiated {
		return false
	}
	if n.HoldResult.Life > 0 {
		n.HoldResult.LastHeldRow = min(row, n.EndRow(start))
	}
	n.HoldResult.Life = 1
	if p.opts.RollBodyIncrementsCombo && p.opts.Controller == Human {
		p.stepCombo(row, 1, 0)
	}
	return true
}

// step judges a press or release on col against the nearest note.
func (p *Player) step(col int, seconds float64, release bool) game.TapNoteScore {
	rowNow, ahead, behind := p.searchRows(seconds)
	rolled := !release && p.refreshRoll(col, rowNow)

	row := p.grid.ClosestNote(col, rowNow, ahead, behind, false)
	if row == notegrid.NotFound {
		if !release && !rolled {
			p.tapScoreNone(rowNow, col)
		}
		return game.None
	}
	n := p.grid.Cell(col, row)
	offset := p.offset(row, seconds)

	var score game.TapNoteScore
	switch n.Type {
	case game.Mine:
		if !release {
			score = p.tw.SecondsToTier(window.Mine, offset)
		}
	case game.Attack:
		if !release && p.tw.SecondsToTier(window.Attack, offset) != game.None {
			p.launchAttacks(row, col)
			return game.None
		}
	default:
		if (n.Type == game.Lift) == release {
			score = p.tw.SecondsToTier(window.Tap, offset)
		}
	}

	if score == game.None {
		if !release {
			p.tapScoreNone(rowNow, col)
		}
		return game.None
	}
	p.setResult(row, col, n, score, offset)
	return score
}

// setResult writes a tap verdict into a cell. A head hit better than Miss
// initiates its hold.
func (p *Player) setResult(row, col int, n *game.Note, score game.TapNoteScore, offset float64) {
	assertf(n.Result.Score == game.None, "cell %d:%d judged twice (%v, then %v)", row, col, n.Result.Score, score)
	n.Result.Score = score
	n.Result.Offset = offset
	if n.Type == game.HoldHead && score > game.Miss {
		n.HoldResult.Initiated = true
	}
	p.log.Debug("judged",
		zap.Int("row", row),
		zap.Int("column", col),
		zap.Stringer("score", score),
		zap.Float64("offset", offset),
	)
}

// launchAttacks fires every attack on row. Attacks never score.
func (p *Player) launchAttacks(row, col int) {
	for track := 0; track < p.grid.NumTracks(); track++ {
		n := p.grid.Cell(track, row)
		if n == nil || n.Type != game.Attack || n.Result.Hidden {
			continue
		}
		n.Result.Hidden = true
		p.sink.OnAttack(AttackEvent{Row: row, Column: track, Attack: n.Attack})
	}
	p.log.Debug("attack", zap.Int("row", row), zap.Int("column", col))
}

// tapScoreNone reports a step that matched no note.
func (p *Player) tapScoreNone(row, col int) {
	p.sink.OnJudgment(JudgmentEvent{Row: row, Column: col, Score: game.None})
	if p.opts.PenalizeTapScoreNone {
		p.sink.OnLife(LifeEvent{Row: row, Tap: game.Miss})
		p.sink.OnScore(ScoreEvent{Row: row, Tap: game.Miss, Notes: 1})
	}
	p.log.Debug("no note", zap.Int("row", row), zap.Int("column", col))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
