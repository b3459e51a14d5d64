// Package renderer draws the editor onto a terminal backend.
//
// The engine produces a buffer.Screen, a viewport-sized window of text with a
// view-relative cursor. Renderer copies it cell by cell to the backend, adds
// the status line below it and positions the terminal cursor. Control
// characters such as tabs are drawn as blanks.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r := renderer.New(term)
//	buf.Resize(r.TextArea())
//	r.Render(buf.Display(), false)
package renderer
