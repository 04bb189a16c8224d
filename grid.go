package tablespan

import "slices"

// headerCell is one header label in a header grid row. Blank cells fill
// the columns no entry covers on that row.
type headerCell struct {
	label string
	col   int // 0-based, row name columns first
	span  int
	level int
	blank bool
}

// headerGrid is the header of a table flattened into rows. Row 0 is the
// top row; every leaf ends up on the last row.
type headerGrid struct {
	rows    [][]headerCell
	lhsCols int
	rhsCols int
}

func newHeaderGrid(h Header) headerGrid {
	g := headerGrid{}
	maxLevel := h.MaxLevel()
	n := max(maxLevel-1, 0)
	g.rows = make([][]headerCell, n)
	if h.LHS != nil {
		g.lhsCols = h.LHS.Width
		g.placeChildren(h.LHS, 0, maxLevel)
	}
	if h.RHS != nil {
		g.rhsCols = h.RHS.Width
		g.placeChildren(h.RHS, g.lhsCols, maxLevel)
	}
	for r := range g.rows {
		g.rows[r] = g.fill(g.rows[r])
	}
	return g
}

// place puts e and its descendants on the grid. An entry of level L sits
// on row maxLevel-L-1.
func (g *headerGrid) place(e *HeaderEntry, col, maxLevel int) {
	r := maxLevel - e.Level - 1
	g.rows[r] = append(g.rows[r], headerCell{
		label: e.Name,
		col:   col,
		span:  e.Width,
		level: e.Level,
	})
	g.placeChildren(e, col, maxLevel)
}

// placeChildren places the entries below e, the first one at col.
func (g *headerGrid) placeChildren(e *HeaderEntry, col, maxLevel int) {
	for _, child := range e.Entries {
		g.place(child, col, maxLevel)
		col += child.Width
	}
}

func (g *headerGrid) fill(cells []headerCell) []headerCell {
	slices.SortFunc(cells, func(a, b headerCell) int { return a.col - b.col })
	out := make([]headerCell, 0, g.width())
	next := 0
	for _, c := range cells {
		for ; next < c.col; next++ {
			out = append(out, headerCell{col: next, span: 1, blank: true})
		}
		out = append(out, c)
		next = c.col + c.span
	}
	for ; next < g.width(); next++ {
		out = append(out, headerCell{col: next, span: 1, blank: true})
	}
	return out
}

func (g headerGrid) width() int { return g.lhsCols + g.rhsCols }

// leaves returns the bottom row labels, one per column.
func (g headerGrid) leaves() []string {
	labels := make([]string, g.width())
	if len(g.rows) == 0 {
		return labels
	}
	for _, c := range g.rows[len(g.rows)-1] {
		labels[c.col] = c.label
	}
	return labels
}

// leafPaths returns, per leaf column, the names of the spanners above it
// followed by the leaf name.
func leafPaths(h Header) [][]string {
	var paths [][]string
	var walk func(e *HeaderEntry, prefix []string)
	walk = func(e *HeaderEntry, prefix []string) {
		prefix = append(slices.Clip(prefix), e.Name)
		if e.IsLeaf() {
			paths = append(paths, prefix)
			return
		}
		for _, child := range e.Entries {
			walk(child, prefix)
		}
	}
	for _, side := range []*HeaderEntry{h.LHS, h.RHS} {
		if side == nil {
			continue
		}
		for _, child := range side.Entries {
			walk(child, nil)
		}
	}
	return paths
}
