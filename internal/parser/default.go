package parser

import (
	"crypto/sha256"
	"encoding/base64"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/stepjudge/internal/chart"
	"git.lost.host/meutraa/stepjudge/internal/game"
	"git.lost.host/meutraa/stepjudge/internal/notegrid"
)

type DefaultParser struct{}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

func (p *DefaultParser) Parse(file string) ([]*chart.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, errors.Wrapf(err, "could not read %v", file)
	}
	charts, err := p.ParseString(string(data))
	if nil != err {
		return nil, errors.Wrapf(err, "could not parse %v", file)
	}
	return charts, nil
}

// ParseString reads every difficulty of a known style from simfile text.
func (p *DefaultParser) ParseString(data string) ([]*chart.Chart, error) {
	str := strings.ReplaceAll(data, "\r", "")
	sections := strings.Split(str, "#NOTES:")

	timing, err := p.parseTiming(sections[0])
	if nil != err {
		return nil, err
	}

	charts := []*chart.Chart{}
	for _, section := range sections[1:] {
		// type:description:difficulty:meter:radar:notes;
		fields := strings.SplitN(section, ":", 6)
		if len(fields) != 6 {
			return nil, errors.Errorf("notes section has %d fields, want 6", len(fields))
		}
		chartType := strings.TrimSpace(fields[0])
		nKeys, ok := game.NKeyMap[chartType]
		if !ok {
			continue
		}
		body := fields[5]
		if i := strings.Index(body, ";"); i >= 0 {
			body = body[:i]
		}
		difficulty := game.Difficulty{
			Name:    strings.TrimSpace(fields[2]),
			Msd:     strings.TrimSpace(fields[3]),
			Section: body,
			NKeys:   nKeys,
			Frets:   game.FretStyles[chartType],
		}
		c, err := p.parseNotes(difficulty, timing)
		if nil != err {
			return nil, errors.Wrapf(err, "%v %v", chartType, difficulty.Name)
		}
		charts = append(charts, c)
	}
	return charts, nil
}

func (p *DefaultParser) parseTiming(meta string) (*game.TimingData, error) {
	td := &game.TimingData{}
	for _, mdl := range strings.Split(meta, "#") {
		mdl = strings.TrimSpace(mdl)
		key, value, ok := strings.Cut(mdl, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ";"))
		value = strings.ReplaceAll(value, "\n", "")
		switch strings.ToUpper(key) {
		case "OFFSET":
			offs, err := strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, errors.Wrap(err, "bad #OFFSET")
			}
			td.FirstBeatSeconds = -offs
		case "BPMS":
			pairs, err := p.parsePairs(value, 2)
			if nil != err {
				return nil, errors.Wrap(err, "bad #BPMS")
			}
			for _, pr := range pairs {
				td.BPMs = append(td.BPMs, game.BPM{StartRow: game.BeatToRow(pr[0]), Value: pr[1]})
			}
		case "STOPS":
			pairs, err := p.parsePairs(value, 2)
			if nil != err {
				return nil, errors.Wrap(err, "bad #STOPS")
			}
			for _, pr := range pairs {
				td.Stops = append(td.Stops, game.Stop{StartRow: game.BeatToRow(pr[0]), Seconds: pr[1]})
			}
		case "TIMESIGNATURES":
			pairs, err := p.parsePairs(value, 3)
			if nil != err {
				return nil, errors.Wrap(err, "bad #TIMESIGNATURES")
			}
			for _, pr := range pairs {
				td.TimeSignatures = append(td.TimeSignatures, game.TimeSignature{
					StartRow:    game.BeatToRow(pr[0]),
					Numerator:   int(pr[1]),
					Denominator: int(pr[2]),
				})
			}
		}
	}
	if err := td.Validate(); nil != err {
		return nil, err
	}
	return td, nil
}

// parsePairs reads "a=b,c=d" lists with n values per entry.
func (p *DefaultParser) parsePairs(value string, n int) ([][]float64, error) {
	out := [][]float64{}
	if value == "" {
		return out, nil
	}
	for _, entry := range strings.Split(value, ",") {
		parts := strings.Split(strings.TrimSpace(entry), "=")
		if len(parts) != n {
			return nil, errors.Errorf("entry %q has %d values, want %d", entry, len(parts), n)
		}
		vals := make([]float64, n)
		for i, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if nil != err {
				return nil, err
			}
			vals[i] = v
		}
		out = append(out, vals)
	}
	return out, nil
}

func (p *DefaultParser) cellNote(c byte) (game.Note, bool) {
	switch c {
	case '1':
		return game.Note{Type: game.Tap}, true
	case 'M':
		return game.Note{Type: game.Mine}, true
	case 'L':
		return game.Note{Type: game.Lift}, true
	case 'F':
		return game.Note{Type: game.Fake}, true
	}
	return game.Note{}, false
}

func (p *DefaultParser) parseNotes(difficulty game.Difficulty, timing *game.TimingData) (*chart.Chart, error) {
	nKeys := int(difficulty.NKeys)
	grid := notegrid.New(nKeys)
	measures := []game.Measure{}

	type openHold struct {
		row int
		sub game.SubType
	}
	open := make([]*openHold, nKeys)

	for m, block := range strings.Split(difficulty.Section, ",") {
		lines := []string{}
		for _, l := range strings.Split(block, "\n") {
			if i := strings.Index(l, "//"); i >= 0 {
				l = l[:i]
			}
			l = strings.TrimSpace(l)
			if l != "" {
				lines = append(lines, l)
			}
		}
		measureRow := m * game.RowsPerMeasure
		measures = append(measures, game.Measure{Denom: 1, Row: measureRow})
		if len(lines) == 0 {
			continue
		}

		for i, line := range lines {
			if len(line) != nKeys {
				return nil, errors.Errorf("measure %d line %d has %d columns, want %d", m, i, len(line), nKeys)
			}
			row := measureRow + i*game.RowsPerMeasure/len(lines)
			denom := p.denomAt(row)
			if denom == 1 && i != 0 {
				measures = append(measures, game.Measure{Denom: 4, Row: row})
			}
			if denom == 2 {
				measures = append(measures, game.Measure{Denom: 8, Row: row})
			}

			for col := 0; col < nKeys; col++ {
				c := line[col]
				switch c {
				case '0', 'K':
				case '2', '4':
					sub := game.Hold
					if c == '4' {
						sub = game.Roll
					}
					open[col] = &openHold{row: row, sub: sub}
				case '3':
					h := open[col]
					if h == nil {
						return nil, errors.Errorf("hold tail without a head at row %d column %d", row, col)
					}
					grid.AddHold(col, h.row, row, h.sub)
					grid.Cell(col, h.row).Denom = p.denomAt(h.row)
					open[col] = nil
				default:
					n, ok := p.cellNote(c)
					if !ok {
						return nil, errors.Errorf("unknown note %q at row %d column %d", c, row, col)
					}
					n.Denom = denom
					grid.SetNote(col, row, n)
				}
			}
		}
	}
	for col, h := range open {
		if h != nil {
			return nil, errors.Errorf("hold at row %d column %d never ends", h.row, col)
		}
	}

	c := chart.New(grid, timing, difficulty)
	c.Measures = measures
	c.Hash = hashChart(difficulty)
	return c, nil
}

// denomAt is the beat quantisation of a row, 1 for quarter notes, 2 for
// eighths and so on.
func (p *DefaultParser) denomAt(row int) int {
	return int(big.NewRat(int64(row%game.RowsPerMeasure), game.RowsPerBeat).Denom().Int64())
}

func hashChart(d game.Difficulty) string {
	sum := sha256.Sum256([]byte(d.Section))
	return base64.StdEncoding.EncodeToString(sum[:])
}
