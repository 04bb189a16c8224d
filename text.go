package tablespan

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

const (
	cellGap  = "  "  // between columns of one block
	blockGap = "   " // between row names and data without borders
	ellipsis = "..."
)

// textCell is a label spanning one or more columns of the text layout.
type textCell struct {
	text  string
	col   int
	span  int
	align Alignment
}

// textLayout is a table reduced to aligned strings: the header rows and
// the data rows, plus the width of every column.
type textLayout struct {
	header  [][]textCell
	body    [][]textCell
	widths  []int
	lhsCols int
}

func newTextLayout(t *Table, cfg renderConfig) textLayout {
	g := newHeaderGrid(t.header)
	n := g.width()
	l := textLayout{widths: make([]int, n), lhsCols: g.lhsCols}

	aligns := make([]Alignment, n)
	for j := range n {
		if j >= g.lhsCols && numericColumn(t.column(j)) {
			aligns[j] = AlignRight
		}
	}

	rows := t.Len()
	if cfg.maxRows > 0 {
		rows = min(rows, cfg.maxRows)
	}
	for r := range rows {
		row := make([]textCell, n)
		for j, v := range t.dataRow(r) {
			row[j] = textCell{text: formatValue(v, cfg.decimals), col: j, span: 1, align: aligns[j]}
		}
		l.body = append(l.body, row)
	}
	if rows < t.Len() {
		row := make([]textCell, n)
		for j := range row {
			row[j] = textCell{text: ellipsis, col: j, span: 1, align: aligns[j]}
		}
		l.body = append(l.body, row)
	}

	var spanners []textCell
	for r, cells := range g.rows {
		row := make([]textCell, len(cells))
		for i, c := range cells {
			row[i] = textCell{text: c.label, col: c.col, span: c.span, align: AlignCenter}
			if r == len(g.rows)-1 && c.span == 1 {
				row[i].align = aligns[c.col]
			}
			if c.span > 1 || r < len(g.rows)-1 {
				spanners = append(spanners, row[i])
			}
		}
		l.header = append(l.header, row)
	}

	for _, row := range slices.Concat(l.header, l.body) {
		for _, c := range row {
			if c.span == 1 {
				l.widths[c.col] = max(l.widths[c.col], runewidth.StringWidth(c.text))
			}
		}
	}
	// Wide spanners grow the last column they cover.
	slices.SortStableFunc(spanners, func(a, b textCell) int { return a.span - b.span })
	for _, c := range spanners {
		if extra := runewidth.StringWidth(c.text) - l.spanWidth(c.col, c.span); extra > 0 {
			l.widths[c.col+c.span-1] += extra
		}
	}
	return l
}

// spanWidth returns the character width of span columns starting at col.
func (l textLayout) spanWidth(col, span int) int {
	w := 0
	for j := col; j < col+span; j++ {
		w += l.widths[j]
	}
	return w + len(cellGap)*(span-1)
}

// blocks returns the formatted row name block and data block of a row.
func (l textLayout) blocks(row []textCell) (lhs, rhs string) {
	var left, right []string
	for _, c := range row {
		s := alignCell(c.text, l.spanWidth(c.col, c.span), c.align)
		if c.col < l.lhsCols {
			left = append(left, s)
		} else {
			right = append(right, s)
		}
	}
	return strings.Join(left, cellGap), strings.Join(right, cellGap)
}

// blockWidths returns the widths of the row name block and the data block.
func (l textLayout) blockWidths() (lhs, rhs int) {
	if l.lhsCols > 0 {
		lhs = l.spanWidth(0, l.lhsCols)
	}
	if n := len(l.widths) - l.lhsCols; n > 0 {
		rhs = l.spanWidth(l.lhsCols, n)
	}
	return lhs, rhs
}

func writeText(w io.Writer, t *Table, cfg renderConfig) error {
	for _, line := range []string{t.title, t.subtitle} {
		if line == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if t.title != "" || t.subtitle != "" {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	l := newTextLayout(t, cfg)
	var err error
	if cfg.border == BorderNone {
		err = renderPlainText(w, l)
	} else {
		err = renderBorderedText(w, l, borderSets[cfg.border])
	}
	if err != nil {
		return err
	}

	if t.footnote != "" {
		if _, err := fmt.Fprintln(w, t.footnote); err != nil {
			return err
		}
	}
	return nil
}

// --- Plain table (BorderNone) ---

func renderPlainText(w io.Writer, l textLayout) error {
	for _, row := range l.header {
		if err := writePlainLine(w, l, row); err != nil {
			return err
		}
	}
	if err := writePlainSep(w, l); err != nil {
		return err
	}
	for _, row := range l.body {
		if err := writePlainLine(w, l, row); err != nil {
			return err
		}
	}
	return nil
}

func writePlainLine(w io.Writer, l textLayout, row []textCell) error {
	lhs, rhs := l.blocks(row)
	line := rhs
	if l.lhsCols > 0 {
		line = lhs + blockGap + rhs
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(line, " "))
	return err
}

func writePlainSep(w io.Writer, l textLayout) error {
	sep := make([]string, len(l.widths))
	for i, width := range l.widths {
		sep[i] = strings.Repeat("-", width)
	}
	line := strings.Join(sep, cellGap)
	if l.lhsCols > 0 {
		line = strings.Join(sep[:l.lhsCols], cellGap) + blockGap + strings.Join(sep[l.lhsCols:], cellGap)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// --- Bordered table ---

func renderBorderedText(w io.Writer, l textLayout, bc borderChars) error {
	if err := drawHLine(w, l, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}
	for _, row := range l.header {
		if err := drawBorderedLine(w, l, row, bc.vertical); err != nil {
			return err
		}
	}
	if err := drawHLine(w, l, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}
	for _, row := range l.body {
		if err := drawBorderedLine(w, l, row, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, l, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

func drawHLine(w io.Writer, l textLayout, left, fill, mid, right string) error {
	lhs, rhs := l.blockWidths()
	var sb strings.Builder
	sb.WriteString(left)
	if l.lhsCols > 0 {
		sb.WriteString(strings.Repeat(fill, lhs+2))
		sb.WriteString(mid)
	}
	sb.WriteString(strings.Repeat(fill, rhs+2))
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedLine(w io.Writer, l textLayout, row []textCell, vert string) error {
	lhs, rhs := l.blocks(row)
	var sb strings.Builder
	sb.WriteString(vert)
	if l.lhsCols > 0 {
		sb.WriteString(" ")
		sb.WriteString(lhs)
		sb.WriteString(" ")
		sb.WriteString(vert)
	}
	sb.WriteString(" ")
	sb.WriteString(rhs)
	sb.WriteString(" ")
	sb.WriteString(vert)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
