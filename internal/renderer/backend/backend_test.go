package backend

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
	if b.Row(0) != strings.Repeat(" ", 80) {
		t.Error("rows should start blank")
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := NewCell('X', Style{Attributes: AttrReverse})
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); got != cell {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	if got := b.GetCell(-1, 0); got != EmptyCell() {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendClear(t *testing.T) {
	b := NewNullBackend(4, 2)
	b.Init()
	b.SetCell(0, 0, NewCell('a', DefaultStyle()))
	b.Clear()
	if b.Row(0) != "    " {
		t.Errorf("Row(0) = %q after Clear", b.Row(0))
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.ShowCursor(10, 5)
	x, y, visible := b.CursorPosition()
	if x != 10 || y != 5 || !visible {
		t.Errorf("cursor = (%d, %d, %v), expected (10, 5, true)", x, y, visible)
	}

	b.HideCursor()
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'a'})
	ev := b.PollEvent()
	if ev.Type != EventKey || ev.Rune != 'a' {
		t.Errorf("PollEvent() = %+v", ev)
	}

	b.Resize(40, 10)
	ev = b.PollEvent()
	if ev.Type != EventResize || ev.Width != 40 || ev.Height != 10 {
		t.Errorf("resize event = %+v", ev)
	}
	if w, h := b.Size(); w != 40 || h != 10 {
		t.Errorf("Size() = (%d, %d) after resize", w, h)
	}
}

func TestNullBackendPollAfterShutdown(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	done := make(chan Event)
	go func() { done <- b.PollEvent() }()

	b.Shutdown()
	b.Shutdown()

	select {
	case ev := <-done:
		if ev.Type != EventClosed {
			t.Errorf("PollEvent() = %+v, expected EventClosed", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("PollEvent did not unblock on Shutdown")
	}
}

func TestSessionShutsDown(t *testing.T) {
	b := NewNullBackend(10, 2)
	errBoom := errors.New("boom")

	err := Session(b, func() error { return errBoom })
	if !errors.Is(err, errBoom) {
		t.Errorf("Session() = %v, expected boom", err)
	}
	if !b.IsShutdown() {
		t.Error("backend not shut down after fn returned")
	}
}

func TestSessionRecoversPanic(t *testing.T) {
	b := NewNullBackend(10, 2)

	err := Session(b, func() error { panic("kaboom") })
	if err == nil || err.Error() != "panic: kaboom" {
		t.Errorf("Session() = %v, expected panic error", err)
	}
	if !b.IsShutdown() {
		t.Error("backend not shut down after panic")
	}
}

func TestModMask(t *testing.T) {
	m := ModCtrl | ModAlt
	if !m.Has(ModCtrl) || !m.Has(ModAlt) || m.Has(ModShift) {
		t.Errorf("unexpected mask %b", m)
	}
}
