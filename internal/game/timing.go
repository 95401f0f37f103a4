package game

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

const (
	RowsPerBeat     = 48
	BeatsPerMeasure = 4
	RowsPerMeasure  = RowsPerBeat * BeatsPerMeasure
)

func BeatToRow(beat float64) int {
	return int(math.Round(beat * RowsPerBeat))
}

// BeatToRowNotRounded only counts a row once the beat has reached it.
func BeatToRowNotRounded(beat float64) int {
	return int(math.Floor(beat * RowsPerBeat))
}

func RowToBeat(row int) float64 {
	return float64(row) / RowsPerBeat
}

type BPM struct {
	StartRow int
	Value    float64
}

type Stop struct {
	StartRow int
	Seconds  float64
}

type TimeSignature struct {
	StartRow    int
	Numerator   int
	Denominator int
}

// TimingData is the tempo map of a chart. Segments must not change after
// Validate or the first time lookup.
type TimingData struct {
	FirstBeatSeconds float64 // music time of beat 0
	BPMs             []BPM
	Stops            []Stop
	TimeSignatures   []TimeSignature

	evs []timingEvent // bpm changes and stops merged by row
}

func (td *TimingData) Validate() error {
	if len(td.BPMs) == 0 {
		return errors.New("timing data has no bpm segments")
	}
	if td.BPMs[0].StartRow != 0 {
		return errors.Errorf("first bpm segment starts at row %d, not 0", td.BPMs[0].StartRow)
	}
	for i, b := range td.BPMs {
		if b.Value <= 0 {
			return errors.Errorf("bpm segment %d has non-positive bpm %v", i, b.Value)
		}
		if i > 0 && b.StartRow <= td.BPMs[i-1].StartRow {
			return errors.Errorf("bpm segment %d at row %d is out of order", i, b.StartRow)
		}
	}
	for i, s := range td.Stops {
		if s.Seconds < 0 {
			return errors.Errorf("stop %d has negative length %v", i, s.Seconds)
		}
		if i > 0 && s.StartRow < td.Stops[i-1].StartRow {
			return errors.Errorf("stop %d at row %d is out of order", i, s.StartRow)
		}
	}
	for i, ts := range td.TimeSignatures {
		if ts.Numerator <= 0 || ts.Denominator <= 0 {
			return errors.Errorf("time signature %d is %d/%d", i, ts.Numerator, ts.Denominator)
		}
	}
	td.evs = td.merge()
	return nil
}

type timingEvent struct {
	row  int
	bpm  float64 // zero for stops
	stop float64
}

func (td *TimingData) events() []timingEvent {
	if td.evs == nil {
		td.evs = td.merge()
	}
	return td.evs
}

func (td *TimingData) merge() []timingEvent {
	evs := make([]timingEvent, 0, len(td.BPMs)+len(td.Stops))
	for _, b := range td.BPMs {
		evs = append(evs, timingEvent{row: b.StartRow, bpm: b.Value})
	}
	for _, s := range td.Stops {
		evs = append(evs, timingEvent{row: s.StartRow, stop: s.Seconds})
	}
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].row < evs[j].row })
	return evs
}

// SecondsAtBeat is the music time a note on beat should be hit. A note
// on the row of a stop is hit before the stop.
func (td *TimingData) SecondsAtBeat(beat float64) float64 {
	t := td.FirstBeatSeconds
	cur := 0.0
	bps := td.BPMs[0].Value / 60
	for _, ev := range td.events() {
		evBeat := RowToBeat(ev.row)
		if beat <= evBeat {
			break
		}
		t += (evBeat - cur) / bps
		cur = evBeat
		if ev.bpm > 0 {
			bps = ev.bpm / 60
		} else {
			t += ev.stop
		}
	}
	return t + (beat-cur)/bps
}

func (td *TimingData) SecondsAtRow(row int) float64 {
	return td.SecondsAtBeat(RowToBeat(row))
}

// BeatAtSeconds returns the beat at a music time, and whether the music
// is inside a stop at that time.
func (td *TimingData) BeatAtSeconds(seconds float64) (float64, bool) {
	t := td.FirstBeatSeconds
	cur := 0.0
	bps := td.BPMs[0].Value / 60
	for _, ev := range td.events() {
		evBeat := RowToBeat(ev.row)
		dt := (evBeat - cur) / bps
		if seconds < t+dt {
			break
		}
		t += dt
		cur = evBeat
		if ev.bpm > 0 {
			bps = ev.bpm / 60
			continue
		}
		if seconds < t+ev.stop {
			return cur, true
		}
		t += ev.stop
	}
	return cur + (seconds-t)*bps, false
}

func (td *TimingData) RowAtSeconds(seconds float64) int {
	beat, _ := td.BeatAtSeconds(seconds)
	return BeatToRow(beat)
}

func (td *TimingData) TimeSignatureAtRow(row int) TimeSignature {
	sig := TimeSignature{Numerator: 4, Denominator: 4}
	for _, ts := range td.TimeSignatures {
		if ts.StartRow > row {
			break
		}
		sig = ts
	}
	return sig
}

// ConstantTiming is a single bpm tempo map.
func ConstantTiming(bpm, firstBeatSeconds float64) *TimingData {
	return &TimingData{
		FirstBeatSeconds: firstBeatSeconds,
		BPMs:             []BPM{{StartRow: 0, Value: bpm}},
	}
}
