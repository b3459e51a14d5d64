// Package cursor provides the cursor position type and the closed set of
// movement requests understood by the text buffer.
//
// A Position addresses a column within a line or the slot immediately after
// its last rune, so X ranges over 0..len(line) inclusive. Columns count
// runes, not display cells.
//
// Movements are plain values:
//
//	buf.Move(cursor.Move(cursor.Down))
//	buf.Move(cursor.GotoLine(41))
//
// The buffer interprets them; this package carries no line knowledge.
package cursor
