package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/linedrill/internal/geometry"
	"github.com/abhisek/linedrill/internal/ui/theme"
)

// lineHalfWidth is the distance from a line within which a grid point is
// drawn as part of it.
const lineHalfWidth = 0.5

// cellKind is what a grid point shows, in increasing priority.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellAxisX
	cellAxisY
	cellOrigin
	cellLine
	cellEndpoint
	cellPending
)

type cell struct {
	kind cellKind
	line int // index into Grid.Lines for line and endpoint cells
}

// Grid renders a drawing board as text. Each line is drawn across the whole
// domain since grading looks at the infinite line through its points.
type Grid struct {
	Domain     geometry.Domain
	Lines      []geometry.Segment
	Pending    *geometry.Point
	Cursor     geometry.Point
	ShowCursor bool
}

// Width is the rendered width in terminal cells.
func (g Grid) Width() int {
	return labelWidth + 2*g.Domain.Size() - 1
}

const labelWidth = 4

// cells rasterizes the board, indexed [row][col] with row 0 at Domain.Max.
func (g Grid) cells() [][]cell {
	n := g.Domain.Size()
	rows := make([][]cell, n)
	for r := range rows {
		rows[r] = make([]cell, n)
		y := g.Domain.Max - r
		for c := range rows[r] {
			x := g.Domain.Min + c
			switch {
			case x == 0 && y == 0:
				rows[r][c].kind = cellOrigin
			case y == 0:
				rows[r][c].kind = cellAxisX
			case x == 0:
				rows[r][c].kind = cellAxisY
			}
		}
	}

	set := func(p geometry.Point, k cellKind, line int) {
		if !g.Domain.Contains(p) {
			return
		}
		cl := &rows[g.Domain.Max-p.Y][p.X-g.Domain.Min]
		if k >= cl.kind {
			cl.kind = k
			cl.line = line
		}
	}

	for i, s := range g.Lines {
		if l, ok := s.Canonical(); ok {
			for r := range rows {
				for c := range rows[r] {
					p := geometry.Point{X: g.Domain.Min + c, Y: g.Domain.Max - r}
					if l.DistanceToPoint(p) < lineHalfWidth {
						set(p, cellLine, i)
					}
				}
			}
		}
		set(s.P1, cellEndpoint, i)
		set(s.P2, cellEndpoint, i)
	}
	if g.Pending != nil {
		set(*g.Pending, cellPending, 0)
	}
	return rows
}

// View renders the board with y labels on the left and x labels below.
func (g Grid) View() string {
	var b strings.Builder
	rows := g.cells()
	for r, row := range rows {
		y := g.Domain.Max - r
		label := ""
		if y%5 == 0 {
			label = fmt.Sprintf("%3d", y)
		}
		b.WriteString(theme.Axis.Render(fmt.Sprintf("%-*s", labelWidth, label)))
		for c, cl := range row {
			x := g.Domain.Min + c
			glyph := g.render(cl)
			if g.ShowCursor && g.Cursor == (geometry.Point{X: x, Y: y}) {
				glyph = theme.Cursor.Render(glyphFor(cl))
			}
			b.WriteString(glyph)
			if c < len(row)-1 {
				b.WriteString(g.gap(cl, row[c+1]))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(theme.Axis.Render(g.xLabels()))
	return b.String()
}

func (g Grid) xLabels() string {
	line := []rune(strings.Repeat(" ", g.Width()))
	for x := g.Domain.Min; x <= g.Domain.Max; x++ {
		if x%5 != 0 {
			continue
		}
		s := fmt.Sprint(x)
		col := labelWidth + 2*(x-g.Domain.Min) - (len(s) - 1)
		for i, ch := range s {
			if col+i >= 0 && col+i < len(line) {
				line[col+i] = ch
			}
		}
	}
	return strings.TrimRight(string(line), " ")
}

// gap is the filler between two horizontally adjacent cells.
func (g Grid) gap(left, right cell) string {
	onAxis := func(c cell) bool { return c.kind == cellOrigin || c.kind == cellAxisX }
	onLine := func(c cell) bool { return c.kind == cellLine || c.kind == cellEndpoint }
	switch {
	case onLine(left) && onLine(right) && left.line == right.line:
		return g.render(cell{kind: cellLine, line: left.line})
	case onAxis(left) && onAxis(right):
		return g.render(cell{kind: cellAxisX})
	}
	return " "
}

func (g Grid) render(cl cell) string {
	glyph := glyphFor(cl)
	switch cl.kind {
	case cellLine, cellEndpoint:
		return theme.LineColors[cl.line%len(theme.LineColors)].Render(glyph)
	case cellPending:
		return theme.PendingPoint.Render(glyph)
	case cellAxisX, cellAxisY, cellOrigin:
		return theme.Axis.Render(glyph)
	}
	return theme.Dot.Render(glyph)
}

func glyphFor(cl cell) string {
	switch cl.kind {
	case cellAxisX:
		return "─"
	case cellAxisY:
		return "│"
	case cellOrigin:
		return "┼"
	case cellLine:
		return "•"
	case cellEndpoint:
		return "●"
	case cellPending:
		return "◎"
	}
	return "·"
}
