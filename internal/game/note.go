package game

type NoteType uint8

const (
	Empty NoteType = iota
	Tap
	HoldHead
	// HoldTail only exists while loading a chart; a grid stores the
	// length of a hold on its head.
	HoldTail
	Mine
	Lift
	Attack
	Fake
)

func (t NoteType) String() string {
	switch t {
	case Empty:
		return "empty"
	case Tap:
		return "tap"
	case HoldHead:
		return "hold_head"
	case HoldTail:
		return "hold_tail"
	case Mine:
		return "mine"
	case Lift:
		return "lift"
	case Attack:
		return "attack"
	case Fake:
		return "fake"
	}
	return "invalid"
}

type SubType uint8

const (
	Hold SubType = iota
	Roll
)

func (s SubType) String() string {
	if s == Roll {
		return "roll"
	}
	return "hold"
}

type TapResult struct {
	Score  TapNoteScore
	Offset float64 // seconds, actual - expected; negative is early
	Hidden bool    // resolved, can not be matched or reported again
}

type HoldResult struct {
	Score             HoldNoteScore
	Life              float64
	OverlappedTime    float64
	LastHeldRow       int
	CheckpointsHit    int
	CheckpointsMissed int
	Initiated         bool // the head was stepped on

	// presentation only
	Held   bool
	Active bool
}

type AttackInfo struct {
	Modifiers       string
	DurationSeconds float64
}

type Note struct {
	Type     NoteType
	SubType  SubType
	Duration int // rows, hold heads only
	Denom    int // The beat length, as a denominator, 4 = 1/4 beat
	Attack   AttackInfo

	// This is state
	Result     TapResult
	HoldResult HoldResult
}

// EndRow is the last row a hold head covers.
func (n *Note) EndRow(row int) int {
	return row + n.Duration
}

// Steppable notes can be matched by an input.
func (n *Note) Steppable() bool {
	switch n.Type {
	case Tap, HoldHead, Mine, Lift, Attack:
		return true
	}
	return false
}

// NeedsTapJudging is true for cells that still wait for a tap result.
func (n *Note) NeedsTapJudging() bool {
	switch n.Type {
	case Tap, HoldHead, Mine, Lift:
		return n.Result.Score == None
	}
	return false
}

// NeedsHoldJudging is true for hold heads without a hold result.
func (n *Note) NeedsHoldJudging() bool {
	return n.Type == HoldHead && n.HoldResult.Score == HoldNone
}

// Scored notes take part in the row verdict.
func (n *Note) Scored() bool {
	switch n.Type {
	case Tap, HoldHead, Lift:
		return true
	}
	return false
}

// ResetResults returns the note to its pre-session state.
func (n *Note) ResetResults() {
	n.Result = TapResult{}
	n.HoldResult = HoldResult{Life: 1, LastHeldRow: -1}
}
