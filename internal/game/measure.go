package game

// Measure is a bar or beat line drawn across the note field.
type Measure struct {
	Denom int // 1 = bar, 4 = beat, 8 = half beat
	Row   int
}
