// Package viewport provides the visible rectangle into a text buffer and the
// scrolling policy that keeps the cursor inside it.
package viewport

import (
	"fmt"

	"github.com/dshills/keyline/internal/engine/cursor"
)

// Size is a viewport's dimensions in cells.
type Size struct {
	Width  int
	Height int
}

// Viewport is the visible portion of the line store, in storage coordinates.
// X and Y are the column and row offsets; Width and Height never change
// after construction, only the offsets move.
type Viewport struct {
	X      int
	Y      int
	Width  int
	Height int
}

// New creates a viewport at the origin with the given size.
// Negative dimensions are clamped to zero.
func New(size Size) Viewport {
	return Viewport{
		Width:  max(size.Width, 0),
		Height: max(size.Height, 0),
	}
}

// Size returns the viewport dimensions.
func (v Viewport) Size() Size {
	return Size{Width: v.Width, Height: v.Height}
}

// MinX returns the first visible column.
func (v Viewport) MinX() int {
	return v.X
}

// MaxX returns the last visible column.
// A zero-width viewport saturates to MinX.
func (v Viewport) MaxX() int {
	return v.X + max(v.Width-1, 0)
}

// MinY returns the first visible row.
func (v Viewport) MinY() int {
	return v.Y
}

// MaxY returns the last visible row.
// A zero-height viewport saturates to MinY.
func (v Viewport) MaxY() int {
	return v.Y + max(v.Height-1, 0)
}

// Contains reports whether the position lies within the bounds on both axes.
func (v Viewport) Contains(p cursor.Position) bool {
	return v.MinX() <= p.X && p.X <= v.MaxX() &&
		v.MinY() <= p.Y && p.Y <= v.MaxY()
}

// Follow returns the viewport translated by the minimum amount needed to
// bring p inside it. Each axis is adjusted independently; a position that is
// already visible leaves the viewport unchanged.
func (v Viewport) Follow(p cursor.Position) Viewport {
	v.X = follow(v.X, v.MinX(), v.MaxX(), p.X)
	v.Y = follow(v.Y, v.MinY(), v.MaxY(), p.Y)
	return v
}

// follow applies the minimal-motion policy on one axis.
func follow(offset, lo, hi, pos int) int {
	switch {
	case pos < lo:
		return pos
	case pos > hi:
		return offset + (pos - hi)
	default:
		return offset
	}
}

// ToView converts a buffer position into viewport-relative coordinates.
func (v Viewport) ToView(p cursor.Position) cursor.Position {
	return cursor.Position{X: p.X - v.MinX(), Y: p.Y - v.MinY()}
}

// String returns a string representation of the viewport.
func (v Viewport) String() string {
	return fmt.Sprintf("Viewport(x=%d y=%d %dx%d)", v.X, v.Y, v.Width, v.Height)
}
