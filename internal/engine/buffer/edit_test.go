package buffer

import (
	"errors"
	"testing"

	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/engine/viewport"
)

func TestInsertChar(t *testing.T) {
	b := newTestBuffer(t, []string{"ac"}, cursor.Position{X: 1})

	b.InsertChar('b')
	assertLines(t, b, "abc")
	assertCursor(t, b, 2, 0)

	b.Move(cursor.Move(cursor.LineEnd))
	b.InsertChar('d')
	assertLines(t, b, "abcd")
	assertCursor(t, b, 4, 0)

	if !b.IsModified() {
		t.Error("buffer should be modified after insert")
	}
}

func TestInsertCharMultibyte(t *testing.T) {
	b := New(testSize)
	b.InsertChar('é')
	b.InsertChar('x')
	assertLines(t, b, "éx")
	assertCursor(t, b, 2, 0)
}

func TestInsertCharNewlineSplits(t *testing.T) {
	for _, r := range []rune{'\n', '\r'} {
		b := newTestBuffer(t, []string{"ab"}, cursor.Position{X: 1})
		b.InsertChar(r)
		assertLines(t, b, "a", "b")
		assertCursor(t, b, 0, 1)
	}
}

func TestInsertCharScrollsViewport(t *testing.T) {
	b := NewFromString("", viewport.Size{Width: 3, Height: 1})
	for _, r := range "abcd" {
		b.InsertChar(r)
	}
	if v := b.Viewport(); v.X != 2 {
		t.Errorf("column offset = %d, expected 2", v.X)
	}
}

func TestInsertString(t *testing.T) {
	b := newTestBuffer(t, []string{"hello world"}, cursor.Position{X: 5})

	b.InsertString(", big")
	assertLines(t, b, "hello, big world")
	assertCursor(t, b, 10, 0)
}

func TestInsertStringEmpty(t *testing.T) {
	b := newTestBuffer(t, []string{"abc"}, cursor.Position{X: 1})
	b.InsertString("")
	assertLines(t, b, "abc")
	assertCursor(t, b, 1, 0)
	if b.IsModified() {
		t.Error("empty insert should not modify the buffer")
	}
}

func TestInsertStringMultiline(t *testing.T) {
	b := newTestBuffer(t, []string{"start end"}, cursor.Position{X: 6})

	b.InsertString("one\r\ntwo\nthree ")
	assertLines(t, b, "start one", "two", "three end")
	assertCursor(t, b, 6, 2)
}

func TestInsertStringTrailingNewline(t *testing.T) {
	b := newTestBuffer(t, []string{"ab"}, cursor.Position{X: 1})
	b.InsertString("x\n")
	assertLines(t, b, "ax", "b")
	assertCursor(t, b, 0, 1)
}

func TestRemoveChar(t *testing.T) {
	b := newTestBuffer(t, []string{"abc"}, cursor.Position{X: 1})

	b.RemoveChar()
	assertLines(t, b, "ac")
	assertCursor(t, b, 1, 0)
}

func TestRemoveCharJoinsNextLine(t *testing.T) {
	b := newTestBuffer(t, []string{"abc", "de"}, cursor.Position{X: 3, Y: 0})

	b.RemoveChar()
	assertLines(t, b, "abcde")
	assertCursor(t, b, 3, 0)
}

func TestRemoveCharAtEndOfLastLine(t *testing.T) {
	b := newTestBuffer(t, []string{"abc", "de"}, cursor.Position{X: 2, Y: 1})

	b.RemoveChar()
	assertLines(t, b, "abc", "de")
	assertCursor(t, b, 2, 1)
	if b.IsModified() {
		t.Error("no-op delete should not modify the buffer")
	}
}

func TestBackspace(t *testing.T) {
	b := newTestBuffer(t, []string{"abc", "de"}, cursor.Position{X: 2, Y: 1})

	b.Backspace()
	assertLines(t, b, "abc", "d")
	assertCursor(t, b, 1, 1)

	b.Backspace()
	b.Backspace()
	assertLines(t, b, "abc")
	assertCursor(t, b, 3, 0)

	b.MoveTo(cursor.Position{})
	b.Backspace()
	assertLines(t, b, "abc")
	assertCursor(t, b, 0, 0)
}

func TestInsertLine(t *testing.T) {
	b := newTestBuffer(t, []string{"abc"}, cursor.Position{X: 1})

	b.InsertLine()
	assertLines(t, b, "a", "bc")
	assertCursor(t, b, 0, 1)
}

func TestInsertLineAtBounds(t *testing.T) {
	b := newTestBuffer(t, []string{"abc"}, cursor.Position{X: 3})
	b.InsertLine()
	assertLines(t, b, "abc", "")
	assertCursor(t, b, 0, 1)

	b.MoveTo(cursor.Position{})
	b.InsertLine()
	assertLines(t, b, "", "abc", "")
	assertCursor(t, b, 0, 1)
}

func TestInsertLineIndependentLines(t *testing.T) {
	b := newTestBuffer(t, []string{"abcd"}, cursor.Position{X: 2})
	b.InsertLine()

	// Typing on the first half must not leak into the second.
	b.MoveTo(cursor.Position{X: 2, Y: 0})
	b.InsertChar('X')
	assertLines(t, b, "abX", "cd")
}

func TestInsertLineScrollsViewport(t *testing.T) {
	b := NewFromString("a", viewport.Size{Width: 5, Height: 2})
	b.Move(cursor.Move(cursor.LineEnd))
	b.InsertLine()
	b.InsertLine()
	if v := b.Viewport(); v.Y != 1 {
		t.Errorf("row offset = %d, expected 1", v.Y)
	}
	assertInvariants(t, b)
}

func TestRemoveLine(t *testing.T) {
	b := newTestBuffer(t, []string{"one", "two", "three"}, cursor.Position{X: 2, Y: 1})

	b.RemoveLine()
	assertLines(t, b, "one", "three")
	assertCursor(t, b, 0, 1)
}

func TestRemoveLastLine(t *testing.T) {
	b := newTestBuffer(t, []string{"one", "two", "three"}, cursor.Position{X: 4, Y: 2})

	b.RemoveLine()
	assertLines(t, b, "one", "two")
	assertCursor(t, b, 0, 1)
}

func TestRemoveOnlyLine(t *testing.T) {
	b := newTestBuffer(t, []string{"only"}, cursor.Position{X: 2})

	b.RemoveLine()
	if b.LineCount() != 1 {
		t.Fatalf("line count = %d, expected 1", b.LineCount())
	}
	assertLines(t, b, "")
	assertCursor(t, b, 0, 0)

	b.RemoveLine()
	assertLines(t, b, "")
	assertInvariants(t, b)
}

func TestRemoveLineScrollsViewportBack(t *testing.T) {
	b := NewFromString("0\n1\n2\n3", viewport.Size{Width: 5, Height: 2})
	b.Move(cursor.Move(cursor.LastLine))
	b.RemoveLine()
	b.RemoveLine()
	b.RemoveLine()
	assertCursor(t, b, 0, 0)
	if v := b.Viewport(); v.Y != 0 {
		t.Errorf("row offset = %d, expected 0", v.Y)
	}
}

func TestJoinLines(t *testing.T) {
	b := newTestBuffer(t, []string{"a", "b", "c", "d"}, cursor.Position{})

	if err := b.JoinLines(1, 3); err != nil {
		t.Fatalf("JoinLines failed: %v", err)
	}
	assertLines(t, b, "a", "bcd")

	if err := b.JoinLines(0, 0); err != nil {
		t.Fatalf("JoinLines single row failed: %v", err)
	}
	assertLines(t, b, "a", "bcd")
}

func TestJoinLinesClampsCursor(t *testing.T) {
	b := newTestBuffer(t, []string{"a", "b", "c"}, cursor.Position{Y: 2})

	if err := b.JoinLines(0, 2); err != nil {
		t.Fatalf("JoinLines failed: %v", err)
	}
	assertLines(t, b, "abc")
	assertCursor(t, b, 0, 0)
}

func TestJoinLinesInvalidRange(t *testing.T) {
	b := newTestBuffer(t, []string{"a", "b"}, cursor.Position{})

	for _, r := range [][2]int{{-1, 0}, {1, 0}, {0, 2}, {2, 2}} {
		if err := b.JoinLines(r[0], r[1]); !errors.Is(err, ErrRangeInvalid) {
			t.Errorf("JoinLines(%d, %d) = %v, expected ErrRangeInvalid", r[0], r[1], err)
		}
	}
	assertLines(t, b, "a", "b")
}
