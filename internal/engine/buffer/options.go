package buffer

import "strings"

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the status-line name of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "dos"
	case LineEndingCR:
		return "mac"
	default:
		return "unix"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// DetectLineEnding returns the most common line ending in the text and
// whether it is the only one used. Text without line endings is uniform LF.
func DetectLineEnding(text string) (le LineEnding, uniform bool) {
	var lfCount, crlfCount, crCount int

	i := 0
	for i < len(text) {
		if i+1 < len(text) && text[i] == '\r' && text[i+1] == '\n' {
			crlfCount++
			i += 2
		} else if text[i] == '\r' {
			crCount++
			i++
		} else if text[i] == '\n' {
			lfCount++
			i++
		} else {
			i++
		}
	}

	kinds := 0
	for _, n := range []int{lfCount, crlfCount, crCount} {
		if n > 0 {
			kinds++
		}
	}
	uniform = kinds <= 1

	if crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount {
		return LineEndingCRLF, uniform
	}
	if crCount > 0 && crCount >= lfCount && crCount >= crlfCount {
		return LineEndingCR, uniform
	}
	return LineEndingLF, uniform
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Option is a functional option for configuring a TextBuffer.
type Option func(*TextBuffer)

// WithLineEnding sets the line ending used when saving.
func WithLineEnding(le LineEnding) Option {
	return func(b *TextBuffer) {
		b.lineEnding = le
	}
}

// WithTrailingNewline makes Save terminate the last line.
func WithTrailingNewline(enabled bool) Option {
	return func(b *TextBuffer) {
		b.trailingNewline = enabled
	}
}
