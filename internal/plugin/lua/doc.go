// Package lua runs user scripts against the editor with gopher-lua.
//
// # State
//
// State owns a sandboxed interpreter. Only the base, table, string and math
// libraries are opened, and every call runs under a timeout:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	if err := state.DoFile("init.lua"); err != nil {
//	    return err
//	}
//
// # Sandbox
//
// The Sandbox removes dofile, loadfile, load and loadstring, limits require
// to the opened libraries and redirects print to the state's output writer.
//
// # Editor API
//
// RegisterEditor exposes the current buffer as the global table kl. Lines
// and columns are 1-based on the Lua side:
//
//	kl.line_count()          number of lines
//	kl.line(n)               text of line n, or nil
//	kl.cursor()              line, column
//	kl.set_cursor(line [, col]) move the cursor, clamped
//	kl.insert(text)          insert at the cursor; "\n" splits lines
//	kl.newline()             split the line at the cursor
//	kl.delete_line()         remove the cursor line
//	kl.join(first, last)     join an inclusive line range
//	kl.path()                file path, or nil for a scratch buffer
//	kl.modified()            unsaved changes
//	kl.message(text)         show text on the status line
package lua
