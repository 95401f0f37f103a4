package gameplay

import (
	"math"

	"go.uber.org/zap"

	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/window"
)

type holdRef struct {
	track int
	row   int
	note  *game.Note
}

// updateHolds advances the life of every unresolved hold that has
// started, grouping holds that start on the same row.
func (p *Player) updateHolds(dt float64) {
	group := p.group[:0]
	allResolved := true
	for it := p.grid.All(p.holdCursor, p.songRow+1); !it.AtEnd(); it.Next() {
		n := it.Note()
		if n.Type != game.HoldHead || n.HoldResult.Score != game.HoldNone {
			continue
		}
		if allResolved {
			p.holdCursor = it.Row()
			allResolved = false
		}
		ref := holdRef{track: it.Track(), row: it.Row(), note: n}
		together := p.opts.JudgeHoldsOnSameRowTogether && n.SubType == game.Hold
		if len(group) > 0 && (!together || group[0].row != ref.row || group[0].note.SubType != game.Hold) {
			p.updateHoldGroup(group, dt)
			group = group[:0]
		}
		group = append(group, ref)
	}
	if len(group) > 0 {
		p.updateHoldGroup(group, dt)
	}
	if allResolved && p.songRow >= p.holdCursor {
		p.holdCursor = p.songRow + 1
	}
	p.group = group[:0]
}

func (p *Player) updateHoldGroup(group []holdRef, dt float64) {
	start := group[0].row
	sub := group[0].note.SubType
	maxEnd := math.MinInt32
	for _, h := range group {
		assertf(h.row == start, "hold group mixes rows %d and %d", start, h.row)
		assertf(h.note.SubType == sub, "hold group at row %d mixes %v and %v", start, sub, h.note.SubType)
		if end := h.note.EndRow(h.row); end > maxEnd {
			maxEnd = end
		}
	}
	if start > p.songRow {
		return
	}

	steppedOnHead, headJudged := true, true
	holding := true
	for _, h := range group {
		tns := h.note.Result.Score
		steppedOnHead = steppedOnHead && tns != game.None && tns != game.Miss
		headJudged = headJudged && tns != game.None
		holding = holding && p.holding(h.track)
	}
	initiated := steppedOnHead
	if !p.opts.RequireStepOnHoldHeads {
		initiated, headJudged = true, true
	}

	life := group[0].note.HoldResult.Life
	if initiated && headJudged && life > 0 {
		for _, h := range group {
			h.note.HoldResult.LastHeldRow = min(p.songRow, h.note.EndRow(h.row))
		}
	}
	switch sub {
	case game.Hold:
		if initiated && holding && headJudged {
			life = 1
		} else {
			life = math.Max(0, life-dt/p.tw.Seconds(window.Hold))
		}
	case game.Roll:
		// only steps give a roll life back
		life = math.Max(0, life-dt/p.tw.Seconds(window.Roll))
	}
	for _, h := range group {
		hr := &h.note.HoldResult
		hr.Life = life
		hr.Active = initiated
		hr.Held = initiated && (holding || sub == game.Roll)
		if hr.Held {
			hr.OverlappedTime += dt
		}
	}

	score := game.HoldNone
	if p.opts.ImmediateHoldLetGo && initiated && headJudged && life == 0 {
		score = game.LetGo
	} else if p.songRow >= maxEnd && headJudged {
		score = p.holdVerdict(group, sub, life, initiated, steppedOnHead)
	}
	if score != game.HoldNone {
		p.resolveHolds(group, score)
	}
}

// holdVerdict grades a hold group that reached its end row.
func (p *Player) holdVerdict(group []holdRef, sub game.SubType, life float64, initiated, steppedOnHead bool) game.HoldNoteScore {
	if !initiated {
		return game.LetGo
	}
	letGo := life == 0
	if p.opts.HoldCheckpoints && sub == game.Hold {
		hit, missed := 0, 0
		for _, h := range group {
			hit += h.note.HoldResult.CheckpointsHit
			missed += h.note.HoldResult.CheckpointsMissed
		}
		letGo = missed > 0 || hit == 0
		if hit == 0 && missed == 0 {
			// too short for a checkpoint
			letGo = !steppedOnHead
		}
	}
	if letGo {
		return game.LetGo
	}
	return game.Held
}

// holding is whether the input governing a hold in track is down.
func (p *Player) holding(track int) bool {
	return p.opts.Controller == Autoplay || p.held[track]
}

// resolveHolds writes the final verdict of a hold group and reports it.
func (p *Player) resolveHolds(group []holdRef, score game.HoldNoteScore) {
	for _, h := range group {
		hr := &h.note.HoldResult
		assertf(hr.Score == game.HoldNone, "hold %d:%d resolved twice", h.row, h.track)
		hr.Score = score
		hr.Held = false
		hr.Active = false
		if score == game.Held {
			hr.Life = 1
		}
		p.log.Debug("hold judged",
			zap.Int("row", h.row),
			zap.Int("column", h.track),
			zap.Stringer("score", score),
			zap.Float64("life", hr.Life),
		)
		p.sink.OnHoldJudgment(HoldJudgmentEvent{
			Row:     h.row,
			Column:  h.track,
			SubType: h.note.SubType,
			Score:   score,
			Life:    hr.Life,
		})
		p.sink.OnLife(LifeEvent{Row: h.row, Hold: score})
		p.sink.OnScore(ScoreEvent{Row: h.row, Hold: score, Notes: 1})
		if !p.opts.HoldCheckpoints || h.note.SubType == game.Roll {
			if score == game.Held {
				p.stepCombo(h.row, 1, 0)
			} else {
				p.stepCombo(h.row, 0, 1)
			}
		}
	}
}

// holdGroupAt collects the unresolved holds judged together with the one
// starting at row in track.
func (p *Player) holdGroupAt(track, row int) []holdRef {
	n := p.grid.Cell(track, row)
	if n == nil || !n.NeedsHoldJudging() {
		return nil
	}
	if !p.opts.JudgeHoldsOnSameRowTogether || n.SubType == game.Roll {
		return []holdRef{{track: track, row: row, note: n}}
	}
	var group []holdRef
	for t := 0; t < p.grid.NumTracks(); t++ {
		m := p.grid.Cell(t, row)
		if m != nil && m.NeedsHoldJudging() && m.SubType == game.Hold {
			group = append(group, holdRef{track: t, row: row, note: m})
		}
	}
	return group
}

// releaseHold lets go of the hold running under col at row when
// immediate let go is on.
func (p *Player) releaseHold(col, row int) {
	if !p.opts.ImmediateHoldLetGo {
		return
	}
	start, n := p.grid.HoldAt(col, row)
	if n == nil || n.SubType != game.Hold || !n.NeedsHoldJudging() || start > row {
		return
	}
	if p.opts.RequireStepOnHoldHeads && !n.HoldResult.Initiated {
		return
	}
	if group := p.holdGroupAt(col, start); len(group) > 0 {
		p.resolveHolds(group, game.LetGo)
	}
}

// letGoActiveHolds lets go of every hold in progress.
func (p *Player) letGoActiveHolds() {
	for col := 0; col < p.grid.NumTracks(); col++ {
		start, n := p.grid.HoldAt(col, p.songRow)
		if n == nil || !n.NeedsHoldJudging() || !n.HoldResult.Active {
			continue
		}
		p.resolveHolds(p.holdGroupAt(col, start), game.LetGo)
	}
}

// activeHoldColumns lists the columns of holds in progress.
func (p *Player) activeHoldColumns() []int {
	var cols []int
	for col := 0; col < p.grid.NumTracks(); col++ {
		if _, n := p.grid.HoldAt(col, p.songRow); n != nil && n.NeedsHoldJudging() && n.HoldResult.Active {
			cols = append(cols, col)
		}
	}
	return cols
}
