package app

import (
	"errors"
	"strings"

	"github.com/dshills/keyline/internal/command"
	"github.com/dshills/keyline/internal/engine/cursor"
	"github.com/dshills/keyline/internal/renderer/backend"
)

// Mode is the modal editing state.
type Mode uint8

const (
	// ModeNormal maps keys to movements and line commands.
	ModeNormal Mode = iota
	// ModeInsert types runes into the buffer.
	ModeInsert
	// ModeCommand edits the ':' command line.
	ModeCommand
)

// String returns the name shown on the status line.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommand:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}

// normalMotions maps normal-mode runes to movements.
var normalMotions = map[rune]cursor.Kind{
	'h': cursor.Left,
	'j': cursor.Down,
	'k': cursor.Up,
	'l': cursor.Right,
	'0': cursor.LineStart,
	'$': cursor.LineEnd,
	'^': cursor.TextStart,
	'G': cursor.LastLine,
}

// keyMotions maps special keys to movements in normal and insert mode.
var keyMotions = map[backend.Key]cursor.Kind{
	backend.KeyLeft:  cursor.Left,
	backend.KeyRight: cursor.Right,
	backend.KeyUp:    cursor.Up,
	backend.KeyDown:  cursor.Down,
	backend.KeyHome:  cursor.LineStart,
	backend.KeyEnd:   cursor.LineEnd,
}

// handleSpecialMotion applies arrow, home/end and paging keys.
// Returns false if ev is not one of them.
func (app *Application) handleSpecialMotion(ev backend.Event) bool {
	if kind, ok := keyMotions[ev.Key]; ok {
		app.buf.Move(cursor.Move(kind))
		return true
	}

	page := max(app.buf.Viewport().Height, 1)
	switch ev.Key {
	case backend.KeyPageUp:
		app.buf.Move(cursor.GotoLine(app.buf.Cursor().Y - page))
	case backend.KeyPageDown:
		app.buf.Move(cursor.GotoLine(app.buf.Cursor().Y + page))
	default:
		return false
	}
	return true
}

// handleNormalKey processes a key in normal mode. Two-key commands (gg, dd)
// keep their first key in pending; any other second key cancels them.
func (app *Application) handleNormalKey(ev backend.Event) {
	if ev.Key == backend.KeyEscape || ev.Key == backend.KeyCtrlC {
		app.pending = 0
		return
	}
	if app.handleSpecialMotion(ev) {
		app.pending = 0
		return
	}
	if ev.Key != backend.KeyRune {
		return
	}

	if first := app.pending; first != 0 {
		app.pending = 0
		switch {
		case first == 'g' && ev.Rune == 'g':
			app.buf.Move(cursor.Move(cursor.FirstLine))
		case first == 'd' && ev.Rune == 'd':
			app.buf.RemoveLine()
		}
		return
	}

	if kind, ok := normalMotions[ev.Rune]; ok {
		app.buf.Move(cursor.Move(kind))
		return
	}

	b := app.buf
	switch ev.Rune {
	case 'g', 'd':
		app.pending = ev.Rune
	case 'i':
		app.setMode(ModeInsert)
	case 'a':
		if b.Cursor().X < b.LineLen(b.Cursor().Y) {
			b.Move(cursor.Move(cursor.Right))
		}
		app.setMode(ModeInsert)
	case 'A':
		b.Move(cursor.Move(cursor.LineEnd))
		app.setMode(ModeInsert)
	case 'I':
		b.Move(cursor.Move(cursor.TextStart))
		app.setMode(ModeInsert)
	case 'o':
		b.Move(cursor.Move(cursor.LineEnd))
		b.InsertLine()
		app.setMode(ModeInsert)
	case 'O':
		b.Move(cursor.Move(cursor.LineStart))
		b.InsertLine()
		b.Move(cursor.Move(cursor.Up))
		app.setMode(ModeInsert)
	case 'x':
		// Only within the line; joining lines is J.
		if b.Cursor().X < b.LineLen(b.Cursor().Y) {
			b.RemoveChar()
		}
	case 'J':
		if y := b.Cursor().Y; y+1 < b.LineCount() {
			if err := b.JoinLines(y, y+1); err != nil {
				app.notifyError(err)
			}
		}
	case ':':
		app.setMode(ModeCommand)
	}
}

// handleInsertKey processes a key in insert mode.
func (app *Application) handleInsertKey(ev backend.Event) {
	if app.handleSpecialMotion(ev) {
		return
	}

	b := app.buf
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		app.setMode(ModeNormal)
	case backend.KeyRune:
		b.InsertChar(ev.Rune)
	case backend.KeyEnter:
		b.InsertLine()
	case backend.KeyBackspace:
		b.Backspace()
	case backend.KeyDelete:
		b.RemoveChar()
	case backend.KeyTab:
		app.insertTab()
	}
}

// insertTab inserts a tab, or spaces up to the next tab stop when
// editor.expand_tabs is set.
func (app *Application) insertTab() {
	if !app.cfg.Editor.ExpandTabs {
		app.buf.InsertChar('\t')
		return
	}
	width := max(app.cfg.Editor.TabWidth, 1)
	n := width - app.buf.Cursor().X%width
	app.buf.InsertString(strings.Repeat(" ", n))
}

// handleCommandKey processes a key while the command line is open.
func (app *Application) handleCommandKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		app.setMode(ModeNormal)
	case backend.KeyRune:
		app.cmdline = append(app.cmdline, ev.Rune)
	case backend.KeyTab:
		app.cmdline = append(app.cmdline, ' ')
	case backend.KeyBackspace:
		if len(app.cmdline) == 0 {
			app.setMode(ModeNormal)
			break
		}
		app.cmdline = app.cmdline[:len(app.cmdline)-1]
	case backend.KeyEnter:
		line := string(app.cmdline)
		app.setMode(ModeNormal)
		return app.runCommandLine(line)
	}
	return nil
}

// runCommandLine parses and executes one command line. Parse and execution
// failures are shown on the status line; only ErrQuit is returned.
func (app *Application) runCommandLine(line string) error {
	cmd, err := command.Parse(line)
	if err != nil {
		app.notifyError(err)
		return nil
	}

	app.logger.WithComponent("command").Debug("execute %s %q", cmd.Kind, cmd.Arg)
	if err := app.Execute(cmd); err != nil {
		if errors.Is(err, ErrQuit) {
			return err
		}
		app.notifyError(err)
	}
	return nil
}

// setMode switches modes. Entering or leaving the command line resets it.
func (app *Application) setMode(m Mode) {
	if m != app.mode {
		app.logger.Debug("mode %s -> %s", app.mode, m)
	}
	app.mode = m
	app.pending = 0
	app.cmdline = app.cmdline[:0]
}
