// Package audio plays the song and keeps the music clock the session is
// judged against.
package audio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// Clock reports the current music time in seconds.
type Clock interface {
	Seconds() float64
}

// Extensions lists the song formats Open understands.
var Extensions = []string{".mp3", ".ogg", ".wav"}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3", ".ogg", ".wav":
	default:
		return nil, beep.Format{}, errors.Errorf("unsupported audio format %q", ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, errors.Wrapf(err, "could not open %v", path)
	}
	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "could not decode %v", path)
	}
	return streamer, format, nil
}

// Music is a song played through the speaker at a playback rate. Its
// clock runs before the song starts, counting up to zero over the start
// delay.
type Music struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	rate     float64
	offset   float64

	mu      sync.Mutex
	start   time.Time
	playing bool
}

// Open decodes path and sets the speaker up for it. rate scales the
// playback speed; offset is added to every music time.
func Open(path string, rate float64, offset time.Duration) (*Music, error) {
	streamer, format, err := decode(path)
	if err != nil {
		return nil, err
	}
	err = speaker.Init(beep.SampleRate(math.Round(float64(format.SampleRate)*rate)), format.SampleRate.N(time.Second/60))
	if err != nil {
		streamer.Close()
		return nil, errors.Wrap(err, "unable to initialise speaker")
	}
	return &Music{
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer},
		rate:     rate,
		offset:   offset.Seconds(),
	}, nil
}

// PlayAfter starts the song once delay has passed.
func (m *Music) PlayAfter(delay time.Duration) {
	m.mu.Lock()
	m.start = time.Now().Add(delay)
	m.mu.Unlock()
	go func() {
		time.Sleep(delay)
		m.mu.Lock()
		m.playing = true
		m.mu.Unlock()
		speaker.Play(m.ctrl)
	}()
}

func (m *Music) SetPaused(paused bool) {
	speaker.Lock()
	m.ctrl.Paused = paused
	speaker.Unlock()
}

func (m *Music) Seconds() float64 {
	m.mu.Lock()
	playing, start := m.playing, m.start
	m.mu.Unlock()
	if !playing {
		if start.IsZero() {
			return m.offset
		}
		return m.offset - time.Until(start).Seconds()*m.rate
	}
	speaker.Lock()
	pos := m.streamer.Position()
	speaker.Unlock()
	return m.format.SampleRate.D(pos).Seconds() + m.offset
}

// Length is the song length in music seconds.
func (m *Music) Length() float64 {
	return m.format.SampleRate.D(m.streamer.Len()).Seconds()
}

func (m *Music) Close() error {
	speaker.Lock()
	m.ctrl.Streamer = nil
	speaker.Unlock()
	return m.streamer.Close()
}

// StepClock advances a fixed step every Tick, for sessions that do not
// follow a song.
type StepClock struct {
	start float64
	step  float64
	frame int
}

func NewStepClock(start, step float64) *StepClock {
	return &StepClock{start: start, step: step}
}

func (c *StepClock) Seconds() float64 {
	return c.start + float64(c.frame)*c.step
}

func (c *StepClock) Tick() {
	c.frame++
}
