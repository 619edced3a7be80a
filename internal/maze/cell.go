package maze

// Cell is one grid unit of the maze before conversion to pixel-space
// wall rectangles. Wall flags are written during carving and loop
// insertion only; the cells a Definition carries are never mutated again.
type Cell struct {
	Col    int
	Row    int
	Top    bool
	Right  bool
	Bottom bool
	Left   bool

	visited bool // carving scratch, cleared before the grid is published
}

// WallCount returns how many of the four walls are present.
func (c *Cell) WallCount() int {
	n := 0
	if c.Top {
		n++
	}
	if c.Right {
		n++
	}
	if c.Bottom {
		n++
	}
	if c.Left {
		n++
	}
	return n
}

// IsDeadEnd reports whether the cell has at most one opening.
func (c *Cell) IsDeadEnd() bool {
	return c.WallCount() >= 3
}

// direction indexes the four neighbor offsets in a fixed order so that
// random selection stays reproducible.
type direction int

const (
	dirTop direction = iota
	dirRight
	dirBottom
	dirLeft
)

var dirOffsets = [4]struct{ dc, dr int }{
	{0, -1}, // top
	{1, 0},  // right
	{0, 1},  // bottom
	{-1, 0}, // left
}

// grid is the generation-time cell matrix, row-major.
type grid struct {
	cols  int
	rows  int
	cells []Cell
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, cells: make([]Cell, cols*rows)}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := g.at(c, r)
			cell.Col = c
			cell.Row = r
			cell.Top = true
			cell.Right = true
			cell.Bottom = true
			cell.Left = true
		}
	}
	return g
}

func (g *grid) at(col, row int) *Cell {
	return &g.cells[row*g.cols+col]
}

func (g *grid) contains(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// neighbor returns the adjacent cell in the given direction, nil at the
// grid edge.
func (g *grid) neighbor(c *Cell, d direction) *Cell {
	off := dirOffsets[d]
	nc, nr := c.Col+off.dc, c.Row+off.dr
	if !g.contains(nc, nr) {
		return nil
	}
	return g.at(nc, nr)
}

// unvisitedNeighbors lists carve candidates in top/right/bottom/left
// order.
func (g *grid) unvisitedNeighbors(c *Cell) []*Cell {
	out := make([]*Cell, 0, 4)
	for d := dirTop; d <= dirLeft; d++ {
		if n := g.neighbor(c, d); n != nil && !n.visited {
			out = append(out, n)
		}
	}
	return out
}

// wallBetween reports whether the shared wall toward the neighbor in
// direction d is still present.
func (g *grid) wallBetween(c *Cell, d direction) bool {
	switch d {
	case dirTop:
		return c.Top
	case dirRight:
		return c.Right
	case dirBottom:
		return c.Bottom
	default:
		return c.Left
	}
}

// removeWallBetween opens the shared wall of two adjacent cells.
func (g *grid) removeWallBetween(a, b *Cell) {
	switch {
	case b.Row < a.Row:
		a.Top = false
		b.Bottom = false
	case b.Row > a.Row:
		a.Bottom = false
		b.Top = false
	case b.Col > a.Col:
		a.Right = false
		b.Left = false
	case b.Col < a.Col:
		a.Left = false
		b.Right = false
	}
}

// deadEnds returns pointers to all dead-end cells in row-major order.
func (g *grid) deadEnds() []*Cell {
	var out []*Cell
	for i := range g.cells {
		if g.cells[i].IsDeadEnd() {
			out = append(out, &g.cells[i])
		}
	}
	return out
}

// published returns a copy of the cells with carving scratch cleared,
// ready to be embedded in an immutable Definition.
func (g *grid) published() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	for i := range out {
		out[i].visited = false
	}
	return out
}
