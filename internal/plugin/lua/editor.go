package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/cursor"
)

// Host is the editor side of the kl API.
type Host interface {
	// Buffer returns the buffer scripts operate on. It may change between
	// calls when another file is opened.
	Buffer() *buffer.TextBuffer

	// Notify shows a message to the user.
	Notify(msg string)
}

// editorModule implements the kl table.
type editorModule struct {
	host Host
}

// RegisterEditor installs the kl table on s.
func RegisterEditor(s *State, host Host) {
	m := &editorModule{host: host}
	s.RegisterModule("kl", map[string]lua.LGFunction{
		"line_count":  m.lineCount,
		"line":        m.line,
		"cursor":      m.cursor,
		"set_cursor":  m.setCursor,
		"insert":      m.insert,
		"newline":     m.newline,
		"delete_line": m.deleteLine,
		"join":        m.join,
		"path":        m.path,
		"modified":    m.modified,
		"message":     m.message,
	})
}

// line_count() -> number
func (m *editorModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.host.Buffer().LineCount()))
	return 1
}

// line(n) -> string | nil
func (m *editorModule) line(L *lua.LState) int {
	n := L.CheckInt(1)
	b := m.host.Buffer()
	if n < 1 || n > b.LineCount() {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(b.Line(n - 1)))
	return 1
}

// cursor() -> line, col
func (m *editorModule) cursor(L *lua.LState) int {
	c := m.host.Buffer().Cursor()
	L.Push(lua.LNumber(c.Y + 1))
	L.Push(lua.LNumber(c.X + 1))
	return 2
}

// set_cursor(line [, col])
func (m *editorModule) setCursor(L *lua.LState) int {
	line := L.CheckInt(1)
	col := L.OptInt(2, 1)
	m.host.Buffer().MoveTo(cursor.Position{X: col - 1, Y: line - 1})
	return 0
}

// insert(text)
func (m *editorModule) insert(L *lua.LState) int {
	m.host.Buffer().InsertString(L.CheckString(1))
	return 0
}

// newline()
func (m *editorModule) newline(L *lua.LState) int {
	m.host.Buffer().InsertLine()
	return 0
}

// delete_line()
func (m *editorModule) deleteLine(L *lua.LState) int {
	m.host.Buffer().RemoveLine()
	return 0
}

// join(first, last)
func (m *editorModule) join(L *lua.LState) int {
	first := L.CheckInt(1)
	last := L.CheckInt(2)
	if err := m.host.Buffer().JoinLines(first-1, last-1); err != nil {
		L.RaiseError("join: %v", err)
	}
	return 0
}

// path() -> string | nil
func (m *editorModule) path(L *lua.LState) int {
	b := m.host.Buffer()
	if b.IsScratch() {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(b.Path()))
	return 1
}

// modified() -> bool
func (m *editorModule) modified(L *lua.LState) int {
	L.Push(lua.LBool(m.host.Buffer().IsModified()))
	return 1
}

// message(text)
func (m *editorModule) message(L *lua.LState) int {
	m.host.Notify(L.CheckString(1))
	return 0
}
