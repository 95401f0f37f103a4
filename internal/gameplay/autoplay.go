package gameplay

import (
	"git.lost.host/meutraa/stepjudge/internal/game"
)

// autoplayStep plays a crossed note perfectly. With a miss rate some
// notes are left for the miss sweep.
func (p *Player) autoplayStep(row, col int, n *game.Note) {
	switch n.Type {
	case game.Tap, game.HoldHead, game.Lift:
		if n.Result.Score != game.None {
			return
		}
		if p.opts.AutoplayMissRate > 0 && p.rng.Float64() < p.opts.AutoplayMissRate {
			return
		}
		p.setResult(row, col, n, game.W1, 0)
		if p.opts.Frets {
			p.chain = chain{column: col, row: row, seconds: p.lastSeconds}
		}
	case game.Attack:
		if !n.Result.Hidden {
			p.launchAttacks(row, col)
		}
	}
}

// autoplayRolls taps every roll in progress.
func (p *Player) autoplayRolls() {
	if p.songRow < 0 {
		return
	}
	for col := 0; col < p.grid.NumTracks(); col++ {
		p.refreshRoll(col, p.songRow)
	}
}
