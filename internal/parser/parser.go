package parser

import "git.lost.host/meutraa/stepjudge/internal/chart"

type Parser interface {
	Parse(file string) ([]*chart.Chart, error)
}
