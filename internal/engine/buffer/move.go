package buffer

import "github.com/dshills/keyline/internal/engine/cursor"

// Move applies a movement request to the cursor. Line content is never
// changed. Vertical moves keep the current column when the target line is
// long enough and clamp it otherwise; there is no remembered column.
func (b *TextBuffer) Move(m cursor.Movement) {
	c := b.cursor
	last := len(b.lines) - 1

	switch m.Kind {
	case cursor.Up:
		if c.Y > 0 {
			c.Y--
		}
	case cursor.Down:
		if c.Y < last {
			c.Y++
		}
	case cursor.Left:
		if c.X > 0 {
			c.X--
		} else if c.Y > 0 {
			c.Y--
			c.X = len(b.lines[c.Y])
		}
	case cursor.Right:
		if c.X < len(b.lines[c.Y]) {
			c.X++
		} else if c.Y < last {
			c.Y++
			c.X = 0
		}
	case cursor.LineStart:
		c.X = 0
	case cursor.LineEnd:
		c.X = len(b.lines[c.Y])
	case cursor.TextStart:
		c.X = firstNonBlank(b.lines[c.Y])
	case cursor.FirstLine:
		c = cursor.Position{}
	case cursor.LastLine:
		c = cursor.Position{Y: last}
	case cursor.ToLine:
		c = cursor.Position{Y: m.Line}
	}

	b.cursor = c
	b.settle()
}
