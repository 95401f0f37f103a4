package gameplay

import (
	"go.uber.org/zap"

	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/window"
)

// sweep resolves the notes whose window closed before seconds. Taps,
// hold heads and lifts become Miss, mines AvoidMine. Both cursors only
// move forward, so a session visits every note once.
func (p *Player) sweep(seconds float64) {
	rate, latency := p.opts.MusicRate, p.opts.MaxInputLatency
	tapRow := p.rowsBefore(seconds - p.tw.MaxStepDistance(rate, latency))
	mineRow := p.rowsBefore(seconds - (p.tw.Seconds(window.Mine)*rate + latency))

	for it := p.tapCursor; !it.AtEnd() && float64(it.Row()) < tapRow; it.Next() {
		n := it.Note()
		if !n.Scored() || n.Result.Score != game.None {
			continue
		}
		n.Result.Score = game.Miss
		p.log.Debug("missed", zap.Int("row", it.Row()), zap.Int("column", it.Track()))
	}
	for it := p.mineCursor; !it.AtEnd() && float64(it.Row()) < mineRow; it.Next() {
		n := it.Note()
		if n.Type != game.Mine || n.Result.Score != game.None {
			continue
		}
		n.Result.Score = game.AvoidMine
	}
}
