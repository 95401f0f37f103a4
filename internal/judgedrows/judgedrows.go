// Package judgedrows records which chart rows already produced their row
// verdict, so no row is counted twice.
package judgedrows

const minSize = 32

// Tracker is a ring of flags over the rows [start, start+len(rows)).
// Every row below start is judged. Judged rows at the front of the ring
// are dropped as start moves forward, so memory follows the number of
// rows that are open at once, not the length of the chart.
type Tracker struct {
	rows   []bool
	start  int
	offset int
}

func New() *Tracker {
	return &Tracker{rows: make([]bool, minSize)}
}

func (t *Tracker) Start() int {
	return t.start
}

// Reset forgets every row and treats the rows before start as judged.
func (t *Tracker) Reset(start int) {
	t.start = start
	t.offset = 0
	for i := range t.rows {
		t.rows[i] = false
	}
}

// grow unrolls the ring into a slice of at least min flags.
func (t *Tracker) grow(min int) {
	size := 2 * len(t.rows)
	if min > size {
		size = min
	}
	rows := make([]bool, 0, size)
	rows = append(rows, t.rows[t.offset:]...)
	rows = append(rows, t.rows[:t.offset]...)
	t.rows = rows[:size]
	t.offset = 0
}

// JudgeRow marks row judged and reports whether it already was.
func (t *Tracker) JudgeRow(row int) bool {
	if row < t.start {
		return true
	}
	if row >= t.start+len(t.rows) {
		t.grow(row + 1 - t.start)
	}
	i := (row - t.start + t.offset) % len(t.rows)
	judged := t.rows[i]
	t.rows[i] = true
	for t.rows[t.offset] {
		t.rows[t.offset] = false
		t.start++
		t.offset++
		if t.offset == len(t.rows) {
			t.offset = 0
		}
	}
	return judged
}

// Advance treats every row before row as judged. Rows without notes are
// never passed to JudgeRow, so callers advance over them once everything
// before row is known to be complete.
func (t *Tracker) Advance(row int) {
	if row <= t.start {
		return
	}
	if row >= t.start+len(t.rows) {
		t.Reset(row)
		return
	}
	for t.start < row {
		t.rows[t.offset] = false
		t.start++
		t.offset++
		if t.offset == len(t.rows) {
			t.offset = 0
		}
	}
	for t.rows[t.offset] {
		t.rows[t.offset] = false
		t.start++
		t.offset++
		if t.offset == len(t.rows) {
			t.offset = 0
		}
	}
}
