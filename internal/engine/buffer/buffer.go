package buffer

import (
	"strings"
	"unicode"

	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/engine/viewport"
)

// TextBuffer is an ordered sequence of lines with a cursor and a viewport.
// The line store is never empty, the cursor always addresses a valid slot
// and the viewport always contains the cursor.
type TextBuffer struct {
	lines  [][]rune
	cursor cursor.Position
	view   viewport.Viewport

	path            string
	lineEnding      LineEnding
	trailingNewline bool
	modified        bool
}

// New creates a scratch buffer with one empty line and the cursor at the origin.
func New(size viewport.Size, opts ...Option) *TextBuffer {
	b := &TextBuffer{
		lines:      [][]rune{{}},
		view:       viewport.New(size),
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromString creates a scratch buffer holding text.
// Line endings are detected the same way Load does.
func NewFromString(text string, size viewport.Size, opts ...Option) *TextBuffer {
	b := New(size)
	b.setContent(text)

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// setContent replaces the line store with the parsed text and resets the
// cursor and viewport offsets. Text with one line ending style is split on
// it and saved with it. Mixed text is split on LF alone and any CR bytes
// stay in the lines, so saving writes the same bytes back.
func (b *TextBuffer) setContent(text string) {
	le, uniform := DetectLineEnding(text)
	if uniform {
		b.lineEnding = le
		text = normalizeLineEndings(text)
	} else {
		b.lineEnding = LineEndingLF
	}
	b.lines, b.trailingNewline = splitLines(text)
	b.cursor = cursor.Position{}
	b.view = viewport.New(b.view.Size())
	b.modified = false
}

// splitLines splits LF-normalized text into lines. A synthetic newline is
// appended unless the text already ends with one, and the empty remainder
// after the final newline is dropped; an empty text yields one empty line.
func splitLines(text string) ([][]rune, bool) {
	terminated := strings.HasSuffix(text, "\n")
	if !terminated {
		text += "\n"
	}

	parts := strings.Split(text, "\n")
	parts = parts[:len(parts)-1]

	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines, terminated
}

// Read Operations

// LineCount returns the number of lines. Always at least 1.
func (b *TextBuffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of a line, or "" if the row is out of range.
func (b *TextBuffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

// LineLen returns the length of a line in runes, or 0 if out of range.
func (b *TextBuffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

// Lines returns a copy of every line.
func (b *TextBuffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// Text returns the content exactly as Save would write it.
func (b *TextBuffer) Text() string {
	seq := b.lineEnding.Sequence()
	text := strings.Join(b.Lines(), seq)
	if b.trailingNewline {
		text += seq
	}
	return text
}

// Cursor returns the cursor position in buffer coordinates.
func (b *TextBuffer) Cursor() cursor.Position {
	return b.cursor
}

// Viewport returns the current viewport.
func (b *TextBuffer) Viewport() viewport.Viewport {
	return b.view
}

// Path returns the associated file path, or "" for a scratch buffer.
func (b *TextBuffer) Path() string {
	return b.path
}

// IsScratch returns true if the buffer has no associated path.
func (b *TextBuffer) IsScratch() bool {
	return b.path == ""
}

// IsModified returns true if the buffer changed since it was loaded or saved.
func (b *TextBuffer) IsModified() bool {
	return b.modified
}

// LineEnding returns the line ending used when saving.
func (b *TextBuffer) LineEnding() LineEnding {
	return b.lineEnding
}

// Cursor and viewport

// MoveTo places the cursor at p, clamped into the line store.
func (b *TextBuffer) MoveTo(p cursor.Position) {
	b.cursor = p
	b.settle()
}

// Resize changes the viewport dimensions, then scrolls as little as needed
// to keep the cursor visible. Edits and movements never resize.
func (b *TextBuffer) Resize(size viewport.Size) {
	v := viewport.New(size)
	v.X, v.Y = b.view.X, b.view.Y
	b.view = v
	b.settle()
}

// settle restores the buffer invariants. It runs at the end of every public
// movement and mutation: the line store gets an empty line if it was emptied,
// the cursor is clamped to a valid row and to 0..len(line), and the viewport
// follows the cursor.
func (b *TextBuffer) settle() {
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
	}
	b.cursor.Y = clamp(b.cursor.Y, 0, len(b.lines)-1)
	b.cursor.X = clamp(b.cursor.X, 0, len(b.lines[b.cursor.Y]))
	b.view = b.view.Follow(b.cursor)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// firstNonBlank returns the column of the first non-whitespace rune, or 0.
func firstNonBlank(line []rune) int {
	for i, r := range line {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}
