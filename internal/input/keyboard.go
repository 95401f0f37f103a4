// Package input turns key presses into timed column actions.
package input

import (
	"sort"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/stepjudge/internal/game"
)

// Keyboard reads keys from the terminal. Terminals only report presses
// and key repeats, so a column counts as released ReleaseAfter seconds
// after its last press or repeat.
type Keyboard struct {
	events       <-chan keyboard.KeyEvent
	keys         []rune
	strum        rune
	frets        bool
	releaseAfter float64

	// last press or repeat, per column
	down    map[int]float64
	pause   bool
	closer  func() error
	actions []game.Action
}

// Open starts reading the terminal. keys maps runes to columns by index.
func Open(keys []rune, strum rune, frets bool, releaseAfter time.Duration) (*Keyboard, error) {
	events, err := keyboard.GetKeys(128)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	k := newKeyboard(events, keys, strum, frets, releaseAfter)
	k.closer = keyboard.Close
	return k, nil
}

func newKeyboard(events <-chan keyboard.KeyEvent, keys []rune, strum rune, frets bool, releaseAfter time.Duration) *Keyboard {
	return &Keyboard{
		events:       events,
		keys:         keys,
		strum:        strum,
		frets:        frets,
		releaseAfter: releaseAfter.Seconds(),
		down:         map[int]float64{},
	}
}

func (k *Keyboard) Close() error {
	if k.closer == nil {
		return nil
	}
	return k.closer()
}

// PauseToggled reports whether tab was pressed an odd number of times
// since it was last asked.
func (k *Keyboard) PauseToggled() bool {
	p := k.pause
	k.pause = false
	return p
}

func (k *Keyboard) column(r rune) int {
	for i, c := range k.keys {
		if r == c {
			return i
		}
	}
	return -1
}

// Poll returns the actions since the last poll, stamped with the music
// time now, in time order. quit is set once escape was pressed. The
// returned slice is reused by the next Poll.
func (k *Keyboard) Poll(now float64) (actions []game.Action, quit bool, err error) {
	k.actions = k.actions[:0]
	for {
		select {
		case ev, ok := <-k.events:
			if !ok {
				return k.flush(now), true, nil
			}
			if ev.Err != nil {
				return k.flush(now), true, errors.Wrap(ev.Err, "keyboard")
			}
			if ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC {
				return k.flush(now), true, nil
			}
			if ev.Key == keyboard.KeyTab {
				k.pause = !k.pause
				continue
			}
			k.key(ev, now)
		default:
			return k.flush(now), false, nil
		}
	}
}

func (k *Keyboard) key(ev keyboard.KeyEvent, now float64) {
	r := ev.Rune
	if ev.Key == keyboard.KeySpace {
		r = ' '
	}
	if k.frets && r == k.strum {
		k.actions = append(k.actions, game.Action{Column: -1, Kind: game.Strum, Seconds: now})
		return
	}
	col := k.column(r)
	if col < 0 {
		return
	}
	if last, ok := k.down[col]; ok && now-last <= k.releaseAfter {
		// key repeat
		k.down[col] = now
		return
	}
	k.release(col)
	k.down[col] = now
	k.actions = append(k.actions, game.Action{Column: col, Kind: game.Press, Seconds: now})
}

func (k *Keyboard) release(col int) {
	last, ok := k.down[col]
	if !ok {
		return
	}
	delete(k.down, col)
	k.actions = append(k.actions, game.Action{Column: col, Kind: game.Release, Seconds: last + k.releaseAfter})
}

func (k *Keyboard) flush(now float64) []game.Action {
	for col, last := range k.down {
		if now-last > k.releaseAfter {
			k.release(col)
		}
	}
	sort.SliceStable(k.actions, func(i, j int) bool {
		if k.actions[i].Seconds != k.actions[j].Seconds {
			return k.actions[i].Seconds < k.actions[j].Seconds
		}
		return k.actions[i].Column < k.actions[j].Column
	})
	return k.actions
}
