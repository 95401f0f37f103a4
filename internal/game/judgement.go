package game

// TapNoteScore is ordered from worst to best, so "at least as good as"
// comparisons are plain >=.
type TapNoteScore int

const (
	None TapNoteScore = iota
	HitMine
	AvoidMine
	CheckpointMiss
	Miss
	W5
	W4
	W3
	W2
	W1
	CheckpointHit
)

var tapNoteScoreNames = [...]string{
	None:           "None",
	HitMine:        "HitMine",
	AvoidMine:      "AvoidMine",
	CheckpointMiss: "CheckpointMiss",
	Miss:           "Miss",
	W5:             "W5",
	W4:             "W4",
	W3:             "W3",
	W2:             "W2",
	W1:             "W1",
	CheckpointHit:  "CheckpointHit",
}

func (s TapNoteScore) String() string {
	if s < 0 || int(s) >= len(tapNoteScoreNames) {
		return "Invalid"
	}
	return tapNoteScoreNames[s]
}

// Graded is true for the five timing tiers.
func (s TapNoteScore) Graded() bool {
	return s >= W5 && s <= W1
}

// ParseTapNoteScore is the inverse of String.
func ParseTapNoteScore(name string) (TapNoteScore, bool) {
	for i, n := range tapNoteScoreNames {
		if n == name {
			return TapNoteScore(i), true
		}
	}
	return None, false
}

type HoldNoteScore int

const (
	HoldNone HoldNoteScore = iota
	LetGo
	Held
)

func (s HoldNoteScore) String() string {
	switch s {
	case HoldNone:
		return "None"
	case LetGo:
		return "LetGo"
	case Held:
		return "Held"
	}
	return "Invalid"
}
