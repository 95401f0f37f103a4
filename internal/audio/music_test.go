package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "song.ogg")
	if err := os.WriteFile(garbage, []byte("not a song"), 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []string{
		filepath.Join(dir, "song.flac"),
		filepath.Join(dir, "missing.mp3"),
		garbage,
	}
	for _, path := range tests {
		if _, _, err := decode(path); err == nil {
			t.Log(path, "decoded")
			t.Fail()
		}
	}
}

func TestStepClock(t *testing.T) {
	c := NewStepClock(-1, 0.25)
	var clock Clock = c
	expected := []float64{-1, -0.75, -0.5, -0.25, 0, 0.25}
	for i, want := range expected {
		if got := clock.Seconds(); math.Abs(got-want) > 1e-12 {
			t.Log("frame", i, "got", got, "want", want)
			t.Fail()
		}
		c.Tick()
	}
}

func TestMusicClockBeforeStart(t *testing.T) {
	m := &Music{rate: 2, offset: 0.1}
	if s := m.Seconds(); s != 0.1 {
		t.Error("unstarted clock at", s)
	}
}
