package buffer

import (
	"slices"
	"strings"

	"github.com/dshills/keyline/internal/engine/cursor"
)

// InsertChar inserts r at the cursor and advances the cursor one column.
// A newline or carriage return splits the line instead, as in InsertString.
func (b *TextBuffer) InsertChar(r rune) {
	if r == '\n' || r == '\r' {
		b.InsertLine()
		return
	}

	y := b.cursor.Y
	b.lines[y] = slices.Insert(b.lines[y], b.cursor.X, r)
	b.cursor.X++
	b.modified = true
	b.settle()
}

// InsertString inserts s at the cursor as one edit and leaves the cursor
// after the last inserted rune. Line breaks in s split the current line.
func (b *TextBuffer) InsertString(s string) {
	if s == "" {
		return
	}

	parts := strings.Split(normalizeLineEndings(s), "\n")
	y, x := b.cursor.Y, b.cursor.X
	line := b.lines[y]

	if len(parts) == 1 {
		ins := []rune(parts[0])
		b.lines[y] = slices.Insert(line, x, ins...)
		b.cursor.X += len(ins)
	} else {
		head := slices.Clone(line[:x])
		tail := slices.Clone(line[x:])

		added := make([][]rune, len(parts))
		added[0] = append(head, []rune(parts[0])...)
		for i := 1; i < len(parts)-1; i++ {
			added[i] = []rune(parts[i])
		}
		lastPart := []rune(parts[len(parts)-1])
		added[len(parts)-1] = append(lastPart, tail...)

		b.lines = slices.Replace(b.lines, y, y+1, added...)
		b.cursor.Y = y + len(parts) - 1
		b.cursor.X = len(lastPart)
	}

	b.modified = true
	b.settle()
}

// RemoveChar deletes the rune under the cursor without moving it. At the end
// of a line the next line is joined onto this one; at the end of the last
// line nothing happens.
func (b *TextBuffer) RemoveChar() {
	y, x := b.cursor.Y, b.cursor.X
	line := b.lines[y]

	switch {
	case x < len(line):
		b.lines[y] = slices.Delete(line, x, x+1)
		b.modified = true
	case y < len(b.lines)-1:
		// Range is valid by construction.
		_ = b.JoinLines(y, y+1)
	}

	b.settle()
}

// Backspace deletes the rune before the cursor, joining with the previous
// line at column 0. Nothing happens at the start of the buffer.
func (b *TextBuffer) Backspace() {
	if b.cursor.IsZero() {
		return
	}
	b.Move(cursor.Move(cursor.Left))
	b.RemoveChar()
}

// InsertLine splits the current line at the cursor. The text from the
// cursor onward moves to a new line below and the cursor goes to its start.
func (b *TextBuffer) InsertLine() {
	y, x := b.cursor.Y, b.cursor.X
	line := b.lines[y]

	tail := slices.Clone(line[x:])
	b.lines[y] = line[:x]
	b.lines = slices.Insert(b.lines, y+1, tail)

	b.cursor.Y = y + 1
	b.cursor.X = 0
	b.modified = true
	b.settle()
}

// RemoveLine deletes the current line and moves the cursor to column 0 of
// the line that takes its place, or of the new last line when the last line
// was removed. Removing the only line leaves one empty line.
func (b *TextBuffer) RemoveLine() {
	y := b.cursor.Y
	b.lines = slices.Delete(b.lines, y, y+1)

	// settle refills an emptied store and pulls the row back in range.
	b.cursor.X = 0
	b.modified = true
	b.settle()
}

// JoinLines concatenates the lines first..last (inclusive) into one line at
// row first. The cursor is not moved except to keep it valid.
func (b *TextBuffer) JoinLines(first, last int) error {
	if first < 0 || first > last || last >= len(b.lines) {
		return ErrRangeInvalid
	}

	var joined []rune
	for _, l := range b.lines[first : last+1] {
		joined = append(joined, l...)
	}
	b.lines = slices.Replace(b.lines, first, last+1, joined)

	b.modified = true
	b.settle()
	return nil
}
