package cursor

import "fmt"

// Position is a zero-based column/row location.
type Position struct {
	X int // column, in runes
	Y int // row
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Y, p.X)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
// Rows are compared first.
func (p Position) Compare(other Position) int {
	if p.Y < other.Y {
		return -1
	}
	if p.Y > other.Y {
		return 1
	}
	if p.X < other.X {
		return -1
	}
	if p.X > other.X {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// IsZero returns true if this is the origin.
func (p Position) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Kind identifies a movement request.
type Kind uint8

const (
	Up Kind = iota
	Down
	Left
	Right
	LineStart // column 0
	LineEnd   // one past the last rune
	TextStart // first non-whitespace rune
	FirstLine
	LastLine
	ToLine // row given by Movement.Line
)

// String returns the movement name.
func (k Kind) String() string {
	switch k {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case LineStart:
		return "line-start"
	case LineEnd:
		return "line-end"
	case TextStart:
		return "text-start"
	case FirstLine:
		return "first-line"
	case LastLine:
		return "last-line"
	case ToLine:
		return "to-line"
	default:
		return "unknown"
	}
}

// Movement is a single cursor movement request.
// Line is only meaningful for ToLine and is zero-based.
type Movement struct {
	Kind Kind
	Line int
}

// Move returns a movement of the given kind.
func Move(kind Kind) Movement {
	return Movement{Kind: kind}
}

// GotoLine returns a movement to the given zero-based row.
// Out-of-range rows are clamped by the buffer, not rejected.
func GotoLine(line int) Movement {
	return Movement{Kind: ToLine, Line: line}
}

// String returns a string representation of the movement.
func (m Movement) String() string {
	if m.Kind == ToLine {
		return fmt.Sprintf("to-line(%d)", m.Line)
	}
	return m.Kind.String()
}
