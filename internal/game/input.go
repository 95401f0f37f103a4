package game

type ActionKind uint8

const (
	Press ActionKind = iota
	Release
	Strum
	// Hopo is a hammer-on or pull-off, a note chained from a held fret.
	Hopo
)

func (k ActionKind) String() string {
	switch k {
	case Press:
		return "press"
	case Release:
		return "release"
	case Strum:
		return "strum"
	case Hopo:
		return "hopo"
	}
	return "invalid"
}

// Action is a timestamped player input against the music clock.
type Action struct {
	Column  int
	Kind    ActionKind
	Seconds float64
}
