package config

import (
	"io/fs"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/gameplay"
	"git.lost.host/meutraa/stepjudge/internal/window"
)

// Judge is the judging setup of a session as stored in a judge file.
type Judge struct {
	Windows         window.Config `yaml:"windows"`
	MaxInputLatency float64       `yaml:"max_input_latency"`

	InitialHoldLife                 float64 `yaml:"initial_hold_life"`
	RequireStepOnHoldHeads          bool    `yaml:"require_step_on_hold_heads"`
	ImmediateHoldLetGo              bool    `yaml:"immediate_hold_let_go"`
	JudgeHoldsOnSameRowTogether     bool    `yaml:"judge_holds_on_same_row_together"`
	HoldCheckpoints                 bool    `yaml:"hold_checkpoints"`
	CheckpointsUseTimeSignatures    bool    `yaml:"checkpoints_use_time_signatures"`
	CheckpointsTapsSeparateJudgment bool    `yaml:"checkpoints_taps_separate_judgment"`
	RollBodyIncrementsCombo         bool    `yaml:"roll_body_increments_combo"`

	CountNotesSeparately bool   `yaml:"count_notes_separately"`
	PenalizeTapScoreNone bool   `yaml:"penalize_tap_score_none"`
	ComboThreshold       string `yaml:"combo_threshold"`

	StrumWindow float64 `yaml:"strum_window"`
	HopoWindow  float64 `yaml:"hopo_window"`

	AutoplayMissRate float64 `yaml:"autoplay_miss_rate"`
}

func DefaultJudge() *Judge {
	o := gameplay.DefaultOptions()
	return &Judge{
		Windows:                         window.DefaultConfig(),
		MaxInputLatency:                 o.MaxInputLatency,
		InitialHoldLife:                 o.InitialHoldLife,
		RequireStepOnHoldHeads:          o.RequireStepOnHoldHeads,
		ImmediateHoldLetGo:              o.ImmediateHoldLetGo,
		JudgeHoldsOnSameRowTogether:     o.JudgeHoldsOnSameRowTogether,
		HoldCheckpoints:                 o.HoldCheckpoints,
		CheckpointsUseTimeSignatures:    o.CheckpointsUseTimeSignatures,
		CheckpointsTapsSeparateJudgment: o.CheckpointsTapsSeparateJudgment,
		RollBodyIncrementsCombo:         o.RollBodyIncrementsCombo,
		CountNotesSeparately:            o.CountNotesSeparately,
		PenalizeTapScoreNone:            o.PenalizeTapScoreNone,
		ComboThreshold:                  o.ComboThreshold.String(),
		StrumWindow:                     o.StrumWindow,
		HopoWindow:                      o.HopoWindow,
		AutoplayMissRate:                o.AutoplayMissRate,
	}
}

// ReadJudge decodes a judge file. Settings missing from the file keep
// their defaults.
func ReadJudge(fsys fs.FS, judgeFile string) (*Judge, error) {
	f, err := fsys.Open(judgeFile)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %v", judgeFile)
	}
	defer f.Close()
	judge := DefaultJudge()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(judge); err != nil {
		return nil, errors.Wrapf(err, "could not decode %v", judgeFile)
	}
	return judge, nil
}

func WriteJudge(judgeFile string, judge *Judge) (err error) {
	f, err := os.Create(judgeFile)
	if err != nil {
		return errors.Wrapf(err, "could not recreate %v", judgeFile)
	}
	defer func() {
		closeErr := f.Close()
		if closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(judge)
}

// Options builds validated session options from the judge settings.
func (j *Judge) Options() (gameplay.Options, error) {
	o := gameplay.DefaultOptions()
	tw, err := window.New(j.Windows)
	if err != nil {
		return o, errors.Wrap(err, "bad timing windows")
	}
	threshold, ok := game.ParseTapNoteScore(j.ComboThreshold)
	if !ok {
		return o, errors.Errorf("unknown combo threshold %q", j.ComboThreshold)
	}
	o.Windows = tw
	o.MaxInputLatency = j.MaxInputLatency
	o.InitialHoldLife = j.InitialHoldLife
	o.RequireStepOnHoldHeads = j.RequireStepOnHoldHeads
	o.ImmediateHoldLetGo = j.ImmediateHoldLetGo
	o.JudgeHoldsOnSameRowTogether = j.JudgeHoldsOnSameRowTogether
	o.HoldCheckpoints = j.HoldCheckpoints
	o.CheckpointsUseTimeSignatures = j.CheckpointsUseTimeSignatures
	o.CheckpointsTapsSeparateJudgment = j.CheckpointsTapsSeparateJudgment
	o.RollBodyIncrementsCombo = j.RollBodyIncrementsCombo
	o.CountNotesSeparately = j.CountNotesSeparately
	o.PenalizeTapScoreNone = j.PenalizeTapScoreNone
	o.ComboThreshold = threshold
	o.StrumWindow = j.StrumWindow
	o.HopoWindow = j.HopoWindow
	o.AutoplayMissRate = j.AutoplayMissRate
	if err := o.Validate(); err != nil {
		return o, err
	}
	return o, nil
}
