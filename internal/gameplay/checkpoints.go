package gameplay

import (
	"go.uber.org/zap"

	"git.lost.host/meutraa/stepjudge/internal/game"
)

// checkpointRows is the distance between hold checkpoints at row.
func (p *Player) checkpointRows(row int) int {
	if !p.opts.CheckpointsUseTimeSignatures {
		return game.RowsPerBeat / 2
	}
	ts := p.timing.TimeSignatureAtRow(row)
	if f := game.RowsPerBeat * 4 / ts.Denominator; f > 0 {
		return f
	}
	return 1
}

// checkpoints grades every checkpoint row in [from, to].
func (p *Player) checkpoints(from, to int) {
	if from < 0 {
		from = 0
	}
	for r := from; r <= to; {
		f := p.checkpointRows(r)
		if r%f != 0 {
			r = (r/f + 1) * f
			continue
		}
		p.checkpoint(r)
		r += f
	}
}

// checkpoint counts a hit for every hold with life at row and a miss for
// every other. Rolls have no checkpoints.
func (p *Player) checkpoint(row int) {
	var cols []int
	hit, missed := 0, 0
	for col := 0; col < p.grid.NumTracks(); col++ {
		start, n := p.grid.HoldAt(col, row)
		if n == nil || start >= row || n.SubType != game.Hold || n.HoldResult.Score != game.HoldNone {
			continue
		}
		cols = append(cols, col)
		hr := &n.HoldResult
		if hr.Life > 0 && (hr.Initiated || !p.opts.RequireStepOnHoldHeads) {
			hr.CheckpointsHit++
			hit++
		} else {
			hr.CheckpointsMissed++
			missed++
		}
	}
	if len(cols) == 0 {
		return
	}
	if !p.opts.CheckpointsTapsSeparateJudgment && p.grid.NumTapNotesInRow(row) > 0 {
		return
	}

	score := game.CheckpointHit
	if missed > 0 {
		score = game.CheckpointMiss
	}
	p.log.Debug("checkpoint", zap.Int("row", row), zap.Int("hit", hit), zap.Int("missed", missed))
	p.sink.OnJudgment(JudgmentEvent{Row: row, Column: cols[0], Score: score, Notes: len(cols)})
	p.sink.OnLife(LifeEvent{Row: row, Tap: score})
	p.sink.OnScore(ScoreEvent{Row: row, Tap: score, Notes: len(cols)})
	p.stepCombo(row, hit, missed)
}
