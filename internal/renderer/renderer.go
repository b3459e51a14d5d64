package renderer

import (
	"unicode"

	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/viewport"
	"github.com/dshills/keyline/internal/renderer/backend"
	"github.com/dshills/keyline/internal/renderer/statusline"
)

// Renderer paints buffer projections and the status line onto a backend.
// Every buffer column occupies exactly one terminal cell.
type Renderer struct {
	backend    backend.Backend
	status     *statusline.StatusLine
	showStatus bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStatusLine shows or hides the status row. Shown by default.
func WithStatusLine(show bool) Option {
	return func(r *Renderer) {
		r.showStatus = show
	}
}

// New creates a renderer drawing on b.
func New(b backend.Backend, opts ...Option) *Renderer {
	r := &Renderer{
		backend:    b,
		status:     statusline.New(),
		showStatus: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// StatusLine returns the status line model.
func (r *Renderer) StatusLine() *statusline.StatusLine {
	return r.status
}

// SetStatusLineVisible shows or hides the status row.
func (r *Renderer) SetStatusLineVisible(show bool) {
	r.showStatus = show
}

// statusRows is the number of rows reserved below the text. The command
// line needs the row even when the status line is hidden.
func (r *Renderer) statusRows(commandActive bool) int {
	if r.showStatus || commandActive {
		return 1
	}
	return 0
}

// TextArea returns the size available to the buffer. The status row, when
// shown, is taken from the bottom of the terminal.
func (r *Renderer) TextArea() viewport.Size {
	w, h := r.backend.Size()
	return viewport.Size{Width: w, Height: max(h-r.statusRows(false), 0)}
}

// Render draws screen, then the status row, places the cursor and flushes.
// Rows of screen beyond the terminal are ignored and missing rows are blank.
// While a command is being typed the cursor sits on the command line.
func (r *Renderer) Render(screen buffer.Screen, commandActive bool) {
	width, height := r.backend.Size()
	r.status.SetCommandMode(commandActive)

	textRows := max(height-r.statusRows(false), 0)
	for y := 0; y < textRows; y++ {
		var line []rune
		if y < len(screen.Lines) {
			line = []rune(screen.Lines[y])
		}
		r.drawRow(y, width, line)
	}

	cursorX, cursorY := screen.Cursor.X, screen.Cursor.Y
	if r.statusRows(commandActive) > 0 && height > 0 {
		if col := r.status.Render(r.backend, height-1, width); col >= 0 {
			cursorX, cursorY = col, height-1
		}
	}

	if cursorX < width && cursorY < height {
		r.backend.ShowCursor(cursorX, cursorY)
	} else {
		r.backend.HideCursor()
	}
	r.backend.Show()
}

func (r *Renderer) drawRow(y, width int, line []rune) {
	style := backend.DefaultStyle()
	for x := 0; x < width; x++ {
		ch := ' '
		if x < len(line) && !unicode.IsControl(line[x]) {
			ch = line[x]
		}
		r.backend.SetCell(x, y, backend.NewCell(ch, style))
	}
}
