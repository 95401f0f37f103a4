package parser_test

import (
	"math"
	"strings"
	"testing"

	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/parser"
	"git.lost.host/meutraa/stepjudge/internal/testdata"
)

func TestParseSimfile(t *testing.T) {
	charts, err := testdata.GetCharts()
	if nil != err {
		t.Fatal(err)
	}
	if len(charts) != 2 {
		t.Fatalf("parsed %d charts, want 2", len(charts))
	}

	c := charts[0]
	if c.Difficulty.Name != "Easy" || c.Difficulty.NKeys != 4 || c.Difficulty.Frets {
		t.Errorf("difficulty %+v", c.Difficulty)
	}
	if c.NoteCount != 8 || c.HoldCount != 2 || c.MineCount != 1 {
		t.Errorf("counts: notes %d holds %d mines %d", c.NoteCount, c.HoldCount, c.MineCount)
	}
	if c.NoteCounts[0] != 4 || c.NoteCounts[1] != 2 {
		t.Errorf("chord counts %v", c.NoteCounts)
	}
	if len(c.Measures) != 12 {
		t.Errorf("%d measure lines, want 12", len(c.Measures))
	}
	if c.Hash == "" {
		t.Error("chart has no hash")
	}

	if !charts[1].Difficulty.Frets {
		t.Error("guitar chart is not a fret chart")
	}
	if charts[1].Difficulty.NKeys != 5 {
		t.Errorf("guitar chart has %d keys", charts[1].Difficulty.NKeys)
	}
}

func TestParseNotes(t *testing.T) {
	c, err := testdata.GetChart()
	if nil != err {
		t.Fatal(err)
	}
	g := c.Grid
	tests := map[[2]int]game.NoteType{
		{0, 0}:   game.Tap,
		{1, 48}:  game.Tap,
		{3, 144}: game.Tap,
		{0, 192}: game.HoldHead,
		{3, 192}: game.HoldHead,
		{2, 336}: game.Mine,
		{0, 384}: game.Tap,
		{1, 384}: game.Tap,
		{0, 288}: game.Empty,
		{3, 528}: game.Empty,
	}
	for cell, want := range tests {
		if got := g.Note(cell[0], cell[1]).Type; got != want {
			t.Log("column", cell[0], "row", cell[1], "got", got, "want", want)
			t.Fail()
		}
	}

	hold := g.Note(0, 192)
	if hold.SubType != game.Hold || hold.EndRow(192) != 288 {
		t.Errorf("hold %+v", hold)
	}
	roll := g.Note(3, 192)
	if roll.SubType != game.Roll || roll.EndRow(192) != 528 {
		t.Errorf("roll %+v", roll)
	}
	if d := g.Note(1, 48).Denom; d != 1 {
		t.Errorf("quarter note has denom %d", d)
	}
	if s := c.Seconds(384); math.Abs(s-3.84) > 1e-9 {
		t.Errorf("row 384 at %v, want 3.84", s)
	}
}

func TestParseTiming(t *testing.T) {
	p := parser.DefaultParser{}
	charts, err := p.ParseString(`#OFFSET:-0.5;
#BPMS:0.000=120.000,
4.000=240.000;
#STOPS:2.000=0.250;
#TIMESIGNATURES:0.000=4=4,8.000=3=4;
#NOTES:dance-single::Hard:9::
1000
;
`)
	if nil != err {
		t.Fatal(err)
	}
	td := charts[0].Timing
	if td.FirstBeatSeconds != 0.5 {
		t.Errorf("first beat at %v, want 0.5", td.FirstBeatSeconds)
	}
	if len(td.BPMs) != 2 || td.BPMs[1].StartRow != 4*game.RowsPerBeat || td.BPMs[1].Value != 240 {
		t.Errorf("bpms %+v", td.BPMs)
	}
	if len(td.Stops) != 1 || td.Stops[0].StartRow != 2*game.RowsPerBeat || td.Stops[0].Seconds != 0.25 {
		t.Errorf("stops %+v", td.Stops)
	}
	if ts := td.TimeSignatureAtRow(8 * game.RowsPerBeat); ts.Numerator != 3 {
		t.Errorf("time signature %+v", ts)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"no bpm":       "#OFFSET:0;\n#NOTES:dance-single::Easy:1::\n1000\n;",
		"bad offset":   "#OFFSET:abc;\n#BPMS:0=120;",
		"bad bpm pair": "#BPMS:0=120=3;",
		"short line":   "#BPMS:0=120;\n#NOTES:dance-single::Easy:1::\n100\n;",
		"unknown note": "#BPMS:0=120;\n#NOTES:dance-single::Easy:1::\n1X00\n;",
		"lone tail":    "#BPMS:0=120;\n#NOTES:dance-single::Easy:1::\n3000\n;",
		"open hold":    "#BPMS:0=120;\n#NOTES:dance-single::Easy:1::\n2000\n0000\n;",
		"fields":       "#BPMS:0=120;\n#NOTES:dance-single:Easy\n;",
	}
	p := parser.DefaultParser{}
	for name, data := range tests {
		if _, err := p.ParseString(data); nil == err {
			t.Log(name, "parsed without error")
			t.Fail()
		}
	}
}

func TestParseMissingFile(t *testing.T) {
	p := parser.DefaultParser{}
	_, err := p.Parse("does-not-exist.sm")
	if nil == err || !strings.Contains(err.Error(), "does-not-exist.sm") {
		t.Errorf("error %v does not name the file", err)
	}
}
