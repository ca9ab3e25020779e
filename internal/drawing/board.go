package drawing

import "github.com/abhisek/linedrill/internal/geometry"

// MaxVisibleLines is how many of the most recent lines the board shows.
// Every active line is still submitted for grading.
const MaxVisibleLines = 2

// Board is a capture device for grid drawings. Two placed points commit a
// line. Committed lines form a history that supports undo and redo; placing
// a new line after an undo discards the redo tail.
type Board struct {
	domain  geometry.Domain
	history []geometry.Segment
	index   int // history[:index] are the active lines
	pending *geometry.Point
	cursor  geometry.Point
}

// NewBoard returns an empty board on the default domain with the cursor at
// the origin.
func NewBoard() *Board {
	return &Board{domain: geometry.DefaultDomain}
}

// Domain returns the board's coordinate range.
func (b *Board) Domain() geometry.Domain { return b.domain }

// Cursor returns the grid point the next Place will use.
func (b *Board) Cursor() geometry.Point { return b.cursor }

// MoveCursor shifts the cursor, stopping at the domain edge.
func (b *Board) MoveCursor(dx, dy int) {
	b.cursor = b.domain.Clamp(geometry.Point{X: b.cursor.X + dx, Y: b.cursor.Y + dy})
}

// SetCursor moves the cursor to p, clamped to the domain.
func (b *Board) SetCursor(p geometry.Point) {
	b.cursor = b.domain.Clamp(p)
}

// Place puts a point at the cursor. It reports whether the point completed
// a line.
func (b *Board) Place() bool {
	return b.place(b.cursor)
}

// PlaceAt snaps a continuous position to the grid, moves the cursor there
// and places a point.
func (b *Board) PlaceAt(x, y float64) bool {
	b.cursor = b.domain.Snap(x, y)
	return b.place(b.cursor)
}

func (b *Board) place(p geometry.Point) bool {
	if b.pending == nil {
		b.pending = &p
		return false
	}
	line := geometry.Segment{P1: *b.pending, P2: p}
	b.history = append(b.history[:b.index], line)
	b.index++
	b.pending = nil
	return true
}

// Pending returns the first point of a line in progress.
func (b *Board) Pending() (geometry.Point, bool) {
	if b.pending == nil {
		return geometry.Point{}, false
	}
	return *b.pending, true
}

// CancelPending drops a line in progress. It reports whether there was one.
func (b *Board) CancelPending() bool {
	had := b.pending != nil
	b.pending = nil
	return had
}

func (b *Board) CanUndo() bool  { return b.index > 0 }
func (b *Board) CanRedo() bool  { return b.index < len(b.history) }
func (b *Board) CanReset() bool { return len(b.history) > 0 || b.pending != nil }

// Undo deactivates the most recent line.
func (b *Board) Undo() bool {
	if !b.CanUndo() {
		return false
	}
	b.index--
	return true
}

// Redo reactivates the most recently undone line.
func (b *Board) Redo() bool {
	if !b.CanRedo() {
		return false
	}
	b.index++
	return true
}

// Reset clears the history and any line in progress. The cursor stays put.
func (b *Board) Reset() {
	b.history = nil
	b.index = 0
	b.pending = nil
}

// LineCount returns the number of active lines.
func (b *Board) LineCount() int { return b.index }

// Active returns a copy of every active line, oldest first.
func (b *Board) Active() []geometry.Segment {
	out := make([]geometry.Segment, b.index)
	copy(out, b.history[:b.index])
	return out
}

// Visible returns the active lines the board displays.
func (b *Board) Visible() []geometry.Segment {
	active := b.Active()
	if len(active) > MaxVisibleLines {
		return active[len(active)-MaxVisibleLines:]
	}
	return active
}

// Snapshot returns the drawing to grade. Later edits to the board do not
// affect it.
func (b *Board) Snapshot() geometry.DrawingData {
	return geometry.DrawingData{Lines: b.Active(), Domain: b.domain}
}
