package buffer

import (
	"testing"

	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/engine/viewport"
)

func TestMoveVertical(t *testing.T) {
	tests := []struct {
		name  string
		start cursor.Position
		kind  cursor.Kind
		wantX int
		wantY int
	}{
		{"up from first row", cursor.Position{X: 2, Y: 0}, cursor.Up, 2, 0},
		{"down from last row", cursor.Position{X: 1, Y: 2}, cursor.Down, 1, 2},
		{"down onto shorter line", cursor.Position{X: 5, Y: 0}, cursor.Down, 2, 1},
		{"up onto longer line", cursor.Position{X: 2, Y: 1}, cursor.Up, 2, 0},
		{"down onto empty line", cursor.Position{X: 2, Y: 1}, cursor.Down, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuffer(t, []string{"abcdef", "gh", ""}, tt.start)
			b.Move(cursor.Move(tt.kind))
			assertCursor(t, b, tt.wantX, tt.wantY)
		})
	}
}

func TestMoveNoStickyColumn(t *testing.T) {
	b := newTestBuffer(t, []string{"abcdef", "gh", "ijklmn"}, cursor.Position{X: 5, Y: 0})

	b.Move(cursor.Move(cursor.Down))
	assertCursor(t, b, 2, 1)

	b.Move(cursor.Move(cursor.Down))
	assertCursor(t, b, 2, 2)
}

func TestMoveLeft(t *testing.T) {
	tests := []struct {
		name  string
		start cursor.Position
		wantX int
		wantY int
	}{
		{"interior", cursor.Position{X: 2, Y: 1}, 1, 1},
		{"line start wraps to previous line end", cursor.Position{X: 0, Y: 1}, 3, 0},
		{"origin is a no-op", cursor.Position{X: 0, Y: 0}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuffer(t, []string{"abc", "de"}, tt.start)
			b.Move(cursor.Move(cursor.Left))
			assertCursor(t, b, tt.wantX, tt.wantY)
		})
	}
}

func TestMoveRight(t *testing.T) {
	tests := []struct {
		name  string
		start cursor.Position
		wantX int
		wantY int
	}{
		{"interior", cursor.Position{X: 1, Y: 0}, 2, 0},
		{"onto end of line", cursor.Position{X: 2, Y: 0}, 3, 0},
		{"line end wraps to next line start", cursor.Position{X: 3, Y: 0}, 0, 1},
		{"end of last line is a no-op", cursor.Position{X: 2, Y: 1}, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuffer(t, []string{"abc", "de"}, tt.start)
			b.Move(cursor.Move(cursor.Right))
			assertCursor(t, b, tt.wantX, tt.wantY)
		})
	}
}

func TestLeftRightInverse(t *testing.T) {
	b := newTestBuffer(t, []string{"abc", "de"}, cursor.Position{X: 1, Y: 0})
	b.Move(cursor.Move(cursor.Left))
	b.Move(cursor.Move(cursor.Right))
	assertCursor(t, b, 1, 0)

	// Across the join: Right from end of line, then Left, returns to the end.
	b.MoveTo(cursor.Position{X: 3, Y: 0})
	b.Move(cursor.Move(cursor.Right))
	assertCursor(t, b, 0, 1)
	b.Move(cursor.Move(cursor.Left))
	assertCursor(t, b, 3, 0)
}

func TestMoveLineBounds(t *testing.T) {
	b := newTestBuffer(t, []string{"   indented", "\t \t", ""}, cursor.Position{X: 5, Y: 0})

	b.Move(cursor.Move(cursor.LineStart))
	assertCursor(t, b, 0, 0)

	b.Move(cursor.Move(cursor.LineEnd))
	assertCursor(t, b, 11, 0)

	b.Move(cursor.Move(cursor.TextStart))
	assertCursor(t, b, 3, 0)

	b.MoveTo(cursor.Position{X: 3, Y: 1})
	b.Move(cursor.Move(cursor.TextStart))
	assertCursor(t, b, 0, 1)

	b.MoveTo(cursor.Position{Y: 2})
	b.Move(cursor.Move(cursor.TextStart))
	assertCursor(t, b, 0, 2)
}

func TestMoveFirstLastLine(t *testing.T) {
	b := newTestBuffer(t, []string{"one", "two", "three"}, cursor.Position{X: 2, Y: 1})

	b.Move(cursor.Move(cursor.LastLine))
	assertCursor(t, b, 0, 2)

	b.Move(cursor.Move(cursor.LineEnd))
	b.Move(cursor.Move(cursor.FirstLine))
	assertCursor(t, b, 0, 0)
}

func TestMoveToLine(t *testing.T) {
	b := newTestBuffer(t, []string{"a", "b", "c", "d", "e"}, cursor.Position{X: 1, Y: 0})

	b.Move(cursor.GotoLine(2))
	assertCursor(t, b, 0, 2)

	b.Move(cursor.GotoLine(100))
	assertCursor(t, b, 0, 4)

	b.Move(cursor.GotoLine(-3))
	assertCursor(t, b, 0, 0)
}

func TestMoveScrollsViewport(t *testing.T) {
	b := NewFromString("0\n1\n2\n3\n4\n5", viewport.Size{Width: 2, Height: 3})

	for i := 0; i < 3; i++ {
		b.Move(cursor.Move(cursor.Down))
	}
	if v := b.Viewport(); v.Y != 1 {
		t.Errorf("row offset = %d, expected 1", v.Y)
	}

	b.Move(cursor.Move(cursor.LastLine))
	if v := b.Viewport(); v.Y != 3 {
		t.Errorf("row offset = %d, expected 3", v.Y)
	}

	// Moving back inside the window does not scroll.
	b.Move(cursor.Move(cursor.Up))
	if v := b.Viewport(); v.Y != 3 {
		t.Errorf("row offset = %d, expected 3", v.Y)
	}

	b.Move(cursor.Move(cursor.FirstLine))
	if v := b.Viewport(); v.Y != 0 {
		t.Errorf("row offset = %d, expected 0", v.Y)
	}
}

func TestMoveScrollsViewportHorizontally(t *testing.T) {
	b := NewFromString("abcdefgh", viewport.Size{Width: 3, Height: 1})

	b.Move(cursor.Move(cursor.LineEnd))
	if v := b.Viewport(); v.X != 6 {
		t.Errorf("column offset = %d, expected 6", v.X)
	}

	b.Move(cursor.Move(cursor.LineStart))
	if v := b.Viewport(); v.X != 0 {
		t.Errorf("column offset = %d, expected 0", v.X)
	}
}
