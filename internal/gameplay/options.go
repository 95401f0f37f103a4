package gameplay

import (
	"github.com/pkg/errors"

	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/window"
)

type Controller uint8

const (
	Human Controller = iota
	Autoplay
)

func (c Controller) String() string {
	if c == Autoplay {
		return "autoplay"
	}
	return "human"
}

type Options struct {
	Windows   *window.Table
	MusicRate float64
	// Seconds of input latency added to the step search radius.
	MaxInputLatency float64

	InitialHoldLife                 float64
	RequireStepOnHoldHeads          bool
	ImmediateHoldLetGo              bool
	JudgeHoldsOnSameRowTogether     bool
	HoldCheckpoints                 bool
	CheckpointsUseTimeSignatures    bool
	CheckpointsTapsSeparateJudgment bool
	RollBodyIncrementsCombo         bool

	CountNotesSeparately bool
	PenalizeTapScoreNone bool
	ComboThreshold       game.TapNoteScore

	// Guitar mode: presses and releases are fret changes and notes are
	// played with Strum and Hopo actions.
	Frets       bool
	StrumWindow float64
	HopoWindow  float64

	Controller       Controller
	AutoplayMissRate float64
	Seed             int64
}

func DefaultOptions() Options {
	tw, err := window.New(window.DefaultConfig())
	if err != nil {
		panic(err)
	}
	return Options{
		Windows:                         tw,
		MusicRate:                       1,
		InitialHoldLife:                 1,
		RequireStepOnHoldHeads:          true,
		JudgeHoldsOnSameRowTogether:     true,
		CheckpointsTapsSeparateJudgment: true,
		ComboThreshold:                  game.W3,
		StrumWindow:                     0.1,
		HopoWindow:                      0.25,
	}
}

func (o *Options) Validate() error {
	if o.Windows == nil {
		return errors.New("no timing windows")
	}
	if o.MusicRate <= 0 {
		return errors.Errorf("music rate must be positive, got %v", o.MusicRate)
	}
	if o.MaxInputLatency < 0 {
		return errors.Errorf("input latency is negative: %v", o.MaxInputLatency)
	}
	if o.InitialHoldLife <= 0 || o.InitialHoldLife > 1 {
		return errors.Errorf("initial hold life must be in (0, 1], got %v", o.InitialHoldLife)
	}
	if !o.ComboThreshold.Graded() {
		return errors.Errorf("combo threshold %v is not a timing tier", o.ComboThreshold)
	}
	if o.StrumWindow < 0 || o.HopoWindow < 0 {
		return errors.Errorf("negative strum %v or hopo %v window", o.StrumWindow, o.HopoWindow)
	}
	if o.AutoplayMissRate < 0 || o.AutoplayMissRate > 1 {
		return errors.Errorf("autoplay miss rate must be in [0, 1], got %v", o.AutoplayMissRate)
	}
	if o.Controller != Human && o.Controller != Autoplay {
		return errors.Errorf("unknown controller %d", o.Controller)
	}
	return nil
}
