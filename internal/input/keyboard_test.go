package input

import (
	"testing"
	"time"

	"github.com/eiannone/keyboard"

	"git.lost.host/meutraa/stepjudge/internal/game"
)

func send(ch chan keyboard.KeyEvent, runes ...rune) {
	for _, r := range runes {
		ch <- keyboard.KeyEvent{Rune: r}
	}
}

func poll(t *testing.T, k *Keyboard, now float64) []game.Action {
	t.Helper()
	actions, quit, err := k.Poll(now)
	if err != nil || quit {
		t.Fatal("poll", quit, err)
	}
	return append([]game.Action(nil), actions...)
}

func equal(p, q []game.Action) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i].Column != q[i].Column || p[i].Kind != q[i].Kind {
			return false
		}
		if d := p[i].Seconds - q[i].Seconds; d > 1e-9 || d < -1e-9 {
			return false
		}
	}
	return true
}

func TestKeyboardPressAndRelease(t *testing.T) {
	ch := make(chan keyboard.KeyEvent, 16)
	k := newKeyboard(ch, []rune("dfjk"), ' ', false, 100*time.Millisecond)

	send(ch, 'd', 'k', 'x')
	got := poll(t, k, 1.0)
	expected := []game.Action{
		{Column: 0, Kind: game.Press, Seconds: 1.0},
		{Column: 3, Kind: game.Press, Seconds: 1.0},
	}
	if !equal(got, expected) {
		t.Log("got     ", got)
		t.Log("expected", expected)
		t.Fail()
	}

	// a repeat keeps d down, k is released 100ms after its press
	send(ch, 'd')
	got = poll(t, k, 1.05)
	if len(got) != 0 {
		t.Error("repeat produced", got)
	}
	got = poll(t, k, 1.12)
	expected = []game.Action{{Column: 3, Kind: game.Release, Seconds: 1.1}}
	if !equal(got, expected) {
		t.Log("got     ", got)
		t.Log("expected", expected)
		t.Fail()
	}
	got = poll(t, k, 1.2)
	expected = []game.Action{{Column: 0, Kind: game.Release, Seconds: 1.15}}
	if !equal(got, expected) {
		t.Log("got     ", got)
		t.Log("expected", expected)
		t.Fail()
	}
}

func TestKeyboardPressAfterRelease(t *testing.T) {
	ch := make(chan keyboard.KeyEvent, 16)
	k := newKeyboard(ch, []rune("dfjk"), ' ', false, 100*time.Millisecond)
	send(ch, 'f')
	poll(t, k, 1.0)
	// the release is found when the key comes back
	send(ch, 'f')
	got := poll(t, k, 1.5)
	expected := []game.Action{
		{Column: 1, Kind: game.Release, Seconds: 1.1},
		{Column: 1, Kind: game.Press, Seconds: 1.5},
	}
	if !equal(got, expected) {
		t.Log("got     ", got)
		t.Log("expected", expected)
		t.Fail()
	}
}

func TestKeyboardStrum(t *testing.T) {
	ch := make(chan keyboard.KeyEvent, 16)
	k := newKeyboard(ch, []rune("zxcvb"), ' ', true, 100*time.Millisecond)
	ch <- keyboard.KeyEvent{Key: keyboard.KeySpace}
	send(ch, 'z')
	got := poll(t, k, 2.0)
	expected := []game.Action{
		{Column: -1, Kind: game.Strum, Seconds: 2.0},
		{Column: 0, Kind: game.Press, Seconds: 2.0},
	}
	if !equal(got, expected) {
		t.Log("got     ", got)
		t.Log("expected", expected)
		t.Fail()
	}
}

func TestKeyboardQuit(t *testing.T) {
	ch := make(chan keyboard.KeyEvent, 16)
	k := newKeyboard(ch, []rune("dfjk"), ' ', false, 100*time.Millisecond)
	send(ch, 'j')
	ch <- keyboard.KeyEvent{Key: keyboard.KeyEsc}
	actions, quit, err := k.Poll(3)
	if !quit || err != nil || len(actions) != 1 {
		t.Error("quit", quit, err, actions)
	}
	if err := k.Close(); err != nil {
		t.Error(err)
	}
}

func TestKeyboardPause(t *testing.T) {
	ch := make(chan keyboard.KeyEvent, 16)
	k := newKeyboard(ch, []rune("dfjk"), ' ', false, 100*time.Millisecond)
	ch <- keyboard.KeyEvent{Key: keyboard.KeyTab}
	send(ch, 'd')
	if got := poll(t, k, 1); len(got) != 1 {
		t.Error("actions", got)
	}
	if !k.PauseToggled() || k.PauseToggled() {
		t.Error("pause toggle not reported once")
	}
}
