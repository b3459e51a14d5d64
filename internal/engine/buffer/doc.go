// Package buffer provides the editing core: a line-oriented text buffer that
// owns its cursor and viewport.
//
// The buffer package provides:
//
//   - A line store that is never empty (at least one, possibly empty, line)
//   - Cursor movement across line boundaries via cursor.Movement requests
//   - Text mutation at the cursor (insert, forward delete, split, join)
//   - A minimal-motion viewport that always contains the cursor
//   - A read-only Display projection for the painter
//   - Load/Save with line ending and trailing newline preservation
//
// Basic usage:
//
//	buf, err := buffer.Load("notes.txt", viewport.Size{Width: 80, Height: 24})
//	if err != nil {
//	    return err
//	}
//	buf.Move(cursor.Move(cursor.LastLine))
//	buf.InsertString("appended")
//	screen := buf.Display()
//	if err := buf.Save(); err != nil {
//	    // state is unchanged; the caller may retry
//	}
//
// Coordinates:
//
// Columns count runes. The cursor may rest one past the last rune of its
// line, so X ranges over 0..len(line) inclusive.
//
// Thread Safety:
//
// A TextBuffer has exactly one owner and is not safe for concurrent use.
package buffer
