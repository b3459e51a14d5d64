// Package statusline provides the status line and command line UI components.
package statusline

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/keyline/internal/renderer/backend"
)

// StatusLine renders the bottom row: mode, file and position, or the command
// being typed, or a transient message.
type StatusLine struct {
	// Display state
	mode       string // Current mode name (e.g., "NORMAL", "INSERT")
	filename   string // Current filename (empty for scratch)
	modified   bool   // Buffer has unsaved changes
	line       int    // Current line (1-indexed for display)
	col        int    // Current column (1-indexed for display)
	totalLines int    // Total lines in buffer

	// Command line state
	commandActive bool
	commandPrompt rune
	commandBuffer string

	// Message display
	message     string
	messageType MessageType
}

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{
		mode:          "NORMAL",
		commandPrompt: ':',
	}
}

// SetMode updates the displayed mode.
func (s *StatusLine) SetMode(mode string) {
	s.mode = mode
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetPosition updates the cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line
	s.col = col
}

// SetTotalLines updates the total line count.
func (s *StatusLine) SetTotalLines(total int) {
	s.totalLines = total
}

// SetCommandMode activates command line display.
func (s *StatusLine) SetCommandMode(active bool) {
	s.commandActive = active
	if !active {
		s.commandBuffer = ""
	}
}

// SetCommandBuffer updates the command being typed.
func (s *StatusLine) SetCommandBuffer(buffer string) {
	s.commandBuffer = buffer
}

// SetMessage displays a status message until ClearMessage is called.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage removes the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Text returns the row contents and, in command mode, the column the
// terminal cursor belongs in (-1 otherwise).
func (s *StatusLine) Text() (string, int) {
	if s.commandActive {
		text := string(s.commandPrompt) + s.commandBuffer
		return text, len([]rune(text))
	}
	if s.message != "" {
		return s.message, -1
	}

	name := "[scratch]"
	if s.filename != "" {
		name = filepath.Base(s.filename)
	}
	if s.modified {
		name += " [+]"
	}
	return fmt.Sprintf(" %s  %s  %d:%d  %d lines", s.mode, name, s.line, s.col, s.totalLines), -1
}

// Render draws the status line on row y and returns the cursor column as
// Text does.
func (s *StatusLine) Render(b backend.Backend, y, width int) int {
	text, cursorCol := s.Text()

	style := backend.Style{Attributes: backend.AttrReverse}
	switch {
	case s.commandActive:
		style = backend.DefaultStyle()
	case s.messageType == MessageError:
		style = backend.Style{Attributes: backend.AttrBold}
	case s.messageType == MessageInfo:
		style = backend.DefaultStyle()
	}

	runes := []rune(text)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		b.SetCell(x, y, backend.NewCell(r, style))
	}

	if cursorCol >= width {
		cursorCol = width - 1
	}
	return cursorCol
}
