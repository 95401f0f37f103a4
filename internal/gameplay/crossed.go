package gameplay

import (
	"git.lost.host/meutraa/stepjudge/internal/game"
)

// crossRows handles the notes the music passed since the last frame, up
// to and including last.
func (p *Player) crossRows(last int) {
	if last < p.firstUncrossed {
		return
	}
	for it := p.grid.All(p.firstUncrossed, last+1); !it.AtEnd(); it.Next() {
		n := it.Note()
		row, col := it.Row(), it.Track()
		switch n.Type {
		case game.HoldHead:
			n.HoldResult.Life = p.opts.InitialHoldLife
		case game.Mine:
			// holding the column while a mine passes sets it off
			if p.opts.Controller == Human && p.held[col] && n.Result.Score == game.None {
				p.setResult(row, col, n, game.HitMine, p.offset(row, p.lastSeconds))
			}
		}
		if p.opts.Controller == Autoplay {
			p.autoplayStep(row, col, n)
		}
	}
	if p.opts.HoldCheckpoints {
		p.checkpoints(p.firstUncrossed, last)
	}
	p.firstUncrossed = last + 1
}
