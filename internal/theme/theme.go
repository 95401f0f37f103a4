package theme

import "git.lost.host/meutraa/stepjudge/internal/game"

type Theme interface {
	RenderMine(column int) string
	RenderNote(column int, denom int) string
	RenderHold(column int, sub game.SubType, active bool) string
	RenderHitField(column int, pressed bool) string
	RenderJudgment(score game.TapNoteScore) string
	RenderHoldJudgment(score game.HoldNoteScore) string
}
