package gameplay

import "git.lost.host/meutraa/stepjudge/internal/game"

// JudgmentEvent is a tap verdict. Row verdicts carry the number of notes
// on the row in Notes. A step that found no note has Score None.
type JudgmentEvent struct {
	Row    int
	Column int
	Score  game.TapNoteScore
	Offset float64
	Notes  int
}

type HoldJudgmentEvent struct {
	Row     int
	Column  int
	SubType game.SubType
	Score   game.HoldNoteScore
	Life    float64
}

type ComboEvent struct {
	Row          int
	OldCombo     int
	OldMissCombo int
	Combo        int
	MissCombo    int
}

// LifeEvent asks the life meter to react to a verdict. Exactly one of
// Tap and Hold is set.
type LifeEvent struct {
	Row  int
	Tap  game.TapNoteScore
	Hold game.HoldNoteScore
}

// ScoreEvent asks the score keeper to count a verdict for Notes notes.
type ScoreEvent struct {
	Row    int
	Tap    game.TapNoteScore
	Hold   game.HoldNoteScore
	Offset float64
	Notes  int
}

type AttackEvent struct {
	Row    int
	Column int
	Attack game.AttackInfo
}

// Sink receives everything a session decides. Calls happen on the
// goroutine calling Update and must not block.
type Sink interface {
	OnJudgment(JudgmentEvent)
	OnHoldJudgment(HoldJudgmentEvent)
	OnCombo(ComboEvent)
	OnLife(LifeEvent)
	OnScore(ScoreEvent)
	OnAttack(AttackEvent)
}

// NopSink ignores every event. Embed it to implement part of Sink.
type NopSink struct{}

func (NopSink) OnJudgment(JudgmentEvent)         {}
func (NopSink) OnHoldJudgment(HoldJudgmentEvent) {}
func (NopSink) OnCombo(ComboEvent)               {}
func (NopSink) OnLife(LifeEvent)                 {}
func (NopSink) OnScore(ScoreEvent)               {}
func (NopSink) OnAttack(AttackEvent)             {}

// Sinks sends every event to each sink in order.
type Sinks []Sink

func (s Sinks) OnJudgment(e JudgmentEvent) {
	for _, sink := range s {
		sink.OnJudgment(e)
	}
}

func (s Sinks) OnHoldJudgment(e HoldJudgmentEvent) {
	for _, sink := range s {
		sink.OnHoldJudgment(e)
	}
}

func (s Sinks) OnCombo(e ComboEvent) {
	for _, sink := range s {
		sink.OnCombo(e)
	}
}

func (s Sinks) OnLife(e LifeEvent) {
	for _, sink := range s {
		sink.OnLife(e)
	}
}

func (s Sinks) OnScore(e ScoreEvent) {
	for _, sink := range s {
		sink.OnScore(e)
	}
}

func (s Sinks) OnAttack(e AttackEvent) {
	for _, sink := range s {
		sink.OnAttack(e)
	}
}
