package testdata

import (
	"git.lost.host/meutraa/stepjudge/internal/chart"
	"git.lost.host/meutraa/stepjudge/internal/parser"
)

// GetCharts parses Simfile.
func GetCharts() ([]*chart.Chart, error) {
	p := parser.DefaultParser{}
	return p.ParseString(Simfile)
}

// GetChart is the dance-single chart of Simfile.
func GetChart() (*chart.Chart, error) {
	charts, err := GetCharts()
	if nil != err {
		return nil, err
	}
	return charts[0], nil
}

// Simfile is at 125 bpm, so a beat is 0.48s and a measure 1.92s.
const Simfile = `#TITLE:Test;
#ARTIST:meutraa;
#MUSIC:test.ogg;
#OFFSET:0.000;
#BPMS:0.000=125.000;
#STOPS:;
#TIMESIGNATURES:0.000=4=4;

//---------------dance-single - ----------------
#NOTES:
     dance-single:
     test:
     Easy:
     2:
     0.0,0.0,0.0,0.0,0.0:
1000
0100
0010
0001
,
2004
0000
3000
00M0
,
1100
0000
0000
0003
;

//---------------lights-cabinet - ----------------
#NOTES:
     lights-cabinet:
     :
     Easy:
     1:
     :
1000
0000
0000
0000
;

//---------------guitar-five - ----------------
#NOTES:
     guitar-five:
     :
     Medium:
     3:
     :
10000
01000
00100
00010
;
`
