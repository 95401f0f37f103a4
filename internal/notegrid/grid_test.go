package notegrid

import (
	"testing"

	"git.lost.host/meutraa/stepjudge/internal/game"
)

func tapGrid(tracks int, notes map[int][]int) *Grid {
	g := New(tracks)
	for col, rows := range notes {
		for _, row := range rows {
			g.SetNote(col, row, game.Note{Type: game.Tap})
		}
	}
	return g
}

func TestSetNoteKeepsOrder(t *testing.T) {
	g := tapGrid(1, map[int][]int{0: {300, 100, 200, 0}})
	rows := []int{}
	g.ForEach(0, 0, MaxRow, func(row int, n *game.Note) bool {
		rows = append(rows, row)
		return true
	})
	expected := []int{0, 100, 200, 300}
	if len(rows) != len(expected) {
		t.Fatal("rows", rows)
	}
	for i := range rows {
		if rows[i] != expected[i] {
			t.Log("out     ", rows)
			t.Log("expected", expected)
			t.Fail()
		}
	}

	g.SetNote(0, 100, game.Note{})
	if g.Note(0, 100).Type != game.Empty {
		t.Error("empty note did not clear the cell")
	}
}

func TestForEachReverse(t *testing.T) {
	g := tapGrid(1, map[int][]int{0: {10, 20, 30, 40}})
	rows := []int{}
	g.ForEachReverse(0, 20, 40, func(row int, n *game.Note) bool {
		rows = append(rows, row)
		return true
	})
	if len(rows) != 2 || rows[0] != 30 || rows[1] != 20 {
		t.Error("rows", rows)
	}
}

type closestTest struct {
	Rows     []int
	Row      int
	Ahead    int
	Behind   int
	Expected int
}

var closestTests = []closestTest{
	{Rows: []int{100}, Row: 100, Ahead: 10, Behind: 10, Expected: 100},
	{Rows: []int{90, 110}, Row: 100, Ahead: 10, Behind: 10, Expected: 90},
	{Rows: []int{91, 110}, Row: 100, Ahead: 10, Behind: 10, Expected: 91},
	{Rows: []int{89, 110}, Row: 100, Ahead: 10, Behind: 10, Expected: 110},
	{Rows: []int{89, 111}, Row: 100, Ahead: 10, Behind: 10, Expected: NotFound},
	{Rows: []int{89, 111}, Row: 100, Ahead: 11, Behind: 0, Expected: 111},
	{Rows: []int{}, Row: 100, Ahead: 10, Behind: 10, Expected: NotFound},
	{Rows: []int{50, 95}, Row: 100, Ahead: 0, Behind: 50, Expected: 95},
}

func TestClosestNote(t *testing.T) {
	for _, test := range closestTests {
		g := tapGrid(1, map[int][]int{0: test.Rows})
		out := g.ClosestNote(0, test.Row, test.Ahead, test.Behind, false)
		if out != test.Expected {
			t.Log("test    ", test)
			t.Log("out     ", out)
			t.Fail()
		}
	}
}

func TestClosestNoteSkips(t *testing.T) {
	g := New(1)
	g.SetNote(0, 95, game.Note{Type: game.Fake})
	g.SetNote(0, 98, game.Note{Type: game.Tap})
	g.Cell(0, 98).Result.Score = game.W1
	g.SetNote(0, 110, game.Note{Type: game.Mine})

	if out := g.ClosestNote(0, 100, 20, 20, false); out != 110 {
		t.Error("judged and fake cells should be skipped, got", out)
	}
	if out := g.ClosestNote(0, 100, 20, 20, true); out != 98 {
		t.Error("graded cells should match when allowed, got", out)
	}

	g.Cell(0, 110).Result.Hidden = true
	if out := g.ClosestNote(0, 100, 20, 20, false); out != NotFound {
		t.Error("hidden cell matched", out)
	}
}

func TestClosestNonEmptyRow(t *testing.T) {
	g := tapGrid(4, map[int][]int{0: {90}, 3: {108}, 2: {90}})
	if out := g.ClosestNonEmptyRow(100, 10, 10); out != 108 {
		t.Error("expected 108, got", out)
	}
	g.Cell(3, 108).Result.Score = game.W2
	if out := g.ClosestNonEmptyRow(100, 10, 10); out != 90 {
		t.Error("expected 90, got", out)
	}
	g.Cell(0, 90).Result.Score = game.W2
	g.Cell(2, 90).Result.Score = game.W2
	if out := g.ClosestNonEmptyRow(100, 10, 10); out != NotFound {
		t.Error("expected nothing, got", out)
	}
}

func TestWorstTapResult(t *testing.T) {
	g := tapGrid(3, map[int][]int{0: {48}, 1: {48}, 2: {48}})
	g.SetNote(1, 48, game.Note{Type: game.Mine})
	if g.IsRowCompletelyJudged(48) {
		t.Error("row judged before any result")
	}
	g.Cell(0, 48).Result = game.TapResult{Score: game.W1, Offset: -0.01}
	g.Cell(2, 48).Result = game.TapResult{Score: game.W4, Offset: 0.1}
	if !g.IsRowCompletelyJudged(48) {
		t.Error("mines should not hold a row open")
	}
	res, track, ok := g.WorstTapResult(48)
	if !ok || res.Score != game.W4 || track != 2 {
		t.Error("worst", res, track, ok)
	}
	if n := g.NumTapNotesInRow(48); n != 2 {
		t.Error("tap notes", n)
	}
	if _, _, ok := g.WorstTapResult(49); ok {
		t.Error("empty row has a verdict")
	}
}

func TestHoldAt(t *testing.T) {
	g := New(2)
	g.AddHold(0, 100, 140, game.Hold)
	g.SetNote(0, 200, game.Note{Type: game.Tap})

	for row, expected := range map[int]int{99: NotFound, 100: 100, 120: 100, 140: 100, 141: NotFound, 200: NotFound} {
		if start, _ := g.HoldAt(0, row); start != expected {
			t.Log("row     ", row)
			t.Log("out     ", start)
			t.Log("expected", expected)
			t.Fail()
		}
	}
	if start, _ := g.HoldAt(1, 120); start != NotFound {
		t.Error("hold in empty track")
	}
	if g.LastRow() != 200 {
		t.Error("last row", g.LastRow())
	}
	g.RemoveNote(0, 200)
	if g.LastRow() != 140 {
		t.Error("last row should count the hold end", g.LastRow())
	}
}

func TestIteratorOrder(t *testing.T) {
	g := tapGrid(3, map[int][]int{0: {10, 30}, 1: {10, 20}, 2: {5, 30}})
	type cell struct{ row, track int }
	expected := []cell{{5, 2}, {10, 0}, {10, 1}, {20, 1}, {30, 0}, {30, 2}}

	it := g.All(0, MaxRow)
	var fork *Iterator
	for i := 0; !it.AtEnd(); i++ {
		if i >= len(expected) || (cell{it.Row(), it.Track()}) != expected[i] {
			t.Fatal("unexpected cell", i, it.Row(), it.Track())
		}
		if i == 2 {
			fork = it.Clone()
		}
		it.Next()
	}
	if fork.AtEnd() || fork.Row() != 10 || fork.Track() != 1 {
		t.Error("clone moved with the original")
	}

	it = g.All(11, 30)
	if it.Row() != 20 {
		t.Error("range start", it.Row())
	}
	it.Next()
	if !it.AtEnd() {
		t.Error("range end is exclusive")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	g := New(1)
	g.AddHold(0, 0, 96, game.Roll)
	cells := g.Snapshot(48, 96)
	if len(cells) != 1 || cells[0].Row != 0 {
		t.Fatal("running hold missing from snapshot", cells)
	}
	cells[0].Note.Result.Score = game.W1
	if g.Note(0, 0).Result.Score != game.None {
		t.Error("snapshot shares cells with the grid")
	}
}

var closest int

func BenchmarkClosestNote(b *testing.B) {
	g := New(4)
	for row := 0; row < 48*1000; row += 12 {
		g.SetNote(row/12%4, row, game.Note{Type: game.Tap})
	}
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		closest = g.ClosestNote(n%4, (n*7)%(48*1000), 24, 24, false)
	}
}

func TestPrevTapNoteRow(t *testing.T) {
	g := tapGrid(2, map[int][]int{0: {10, 40}, 1: {24}})
	g.SetNote(1, 30, game.Note{Type: game.Mine})
	for row, expected := range map[int]int{40: 24, 24: 10, 25: 24, 10: NotFound} {
		if out := g.PrevTapNoteRow(row); out != expected {
			t.Log("row     ", row)
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}
