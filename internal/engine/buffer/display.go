package buffer

import "github.com/dshills/keyline/internal/engine/cursor"

// Screen is the read-only render projection of a buffer.
type Screen struct {
	// Lines holds exactly viewport-height rows, each cropped to the
	// viewport's columns. Rows past the end of the buffer are empty.
	Lines []string

	// Cursor is relative to the viewport's top-left corner.
	Cursor cursor.Position
}

// Display returns the viewport's window onto the buffer.
func (b *TextBuffer) Display() Screen {
	v := b.view
	lines := make([]string, v.Height)

	for i := range lines {
		row := v.Y + i
		if row < len(b.lines) {
			lines[i] = crop(b.lines[row], v.X, v.Width)
		}
	}

	return Screen{
		Lines:  lines,
		Cursor: v.ToView(b.cursor),
	}
}

// crop returns at most width runes of line starting at column from.
func crop(line []rune, from, width int) string {
	if from >= len(line) || width <= 0 {
		return ""
	}
	end := min(from+width, len(line))
	return string(line[from:end])
}
