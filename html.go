package tablespan

import (
	"fmt"
	"html"
	"io"
	"strings"
)

func writeHTML(w io.Writer, t *Table, cfg renderConfig) error {
	g := newHeaderGrid(t.header)

	aligns := make([]Alignment, g.width())
	for j := range aligns {
		if j >= g.lhsCols && numericColumn(t.column(j)) {
			aligns[j] = AlignRight
		}
	}

	if _, err := fmt.Fprintln(w, "<table>"); err != nil {
		return err
	}

	if t.title != "" || t.subtitle != "" {
		caption := html.EscapeString(t.title)
		if t.subtitle != "" {
			if caption != "" {
				caption += "<br>"
			}
			caption += "<small>" + html.EscapeString(t.subtitle) + "</small>"
		}
		if _, err := fmt.Fprintf(w, "  <caption>%s</caption>\n", caption); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "  <thead>"); err != nil {
		return err
	}
	for r, cells := range g.rows {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for _, c := range cells {
			align := AlignCenter
			if r == len(g.rows)-1 && c.span == 1 {
				align = aligns[c.col]
			}
			attrs := cellStyle(align, g.lhsCols > 0 && c.col == g.lhsCols)
			if c.span > 1 {
				attrs = fmt.Sprintf(` colspan="%d"`, c.span) + attrs
			}
			if _, err := fmt.Fprintf(w, "      <th%s>%s</th>\n", attrs, html.EscapeString(c.label)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </thead>"); err != nil {
		return err
	}

	// spans[j][r] is the rowspan of the row name cell at (r, j); 0 means
	// the cell is covered by a cell above.
	var spans [][]int
	if cfg.mergeRowNames && t.rowData != nil {
		runs := RowNameRuns(t.rowData)
		spans = make([][]int, len(runs))
		for j, col := range runs {
			spans[j] = make([]int, t.Len())
			for _, run := range col {
				spans[j][run.Start] = run.Span
			}
		}
	}

	if _, err := fmt.Fprintln(w, "  <tbody>"); err != nil {
		return err
	}
	for r := range t.Len() {
		if _, err := fmt.Fprintln(w, "    <tr>"); err != nil {
			return err
		}
		for j, v := range t.dataRow(r) {
			attrs := cellStyle(aligns[j], g.lhsCols > 0 && j == g.lhsCols)
			if j < len(spans) {
				switch span := spans[j][r]; {
				case span == 0:
					continue
				case span > 1:
					attrs = fmt.Sprintf(` rowspan="%d"`, span) + cellStyle(AlignLeft, false) + ` valign="top"`
				}
			}
			tag := "td"
			if j < g.lhsCols {
				tag = "th"
			}
			if _, err := fmt.Fprintf(w, "      <%s%s>%s</%s>\n", tag, attrs, html.EscapeString(formatValue(v, cfg.decimals)), tag); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, "    </tr>"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, "  </tbody>"); err != nil {
		return err
	}

	if t.footnote != "" {
		if _, err := fmt.Fprintf(w, "  <tfoot>\n    <tr>\n      <td colspan=\"%d\">%s</td>\n    </tr>\n  </tfoot>\n",
			g.width(), html.EscapeString(t.footnote)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "</table>")
	return err
}

// cellStyle returns the style attribute of a cell. sep marks the first
// data column, which carries the line between row names and data.
func cellStyle(align Alignment, sep bool) string {
	var rules []string
	switch align {
	case AlignRight:
		rules = append(rules, "text-align: right")
	case AlignCenter:
		rules = append(rules, "text-align: center")
	}
	if sep {
		rules = append(rules, "border-left: 1px solid gray")
	}
	if len(rules) == 0 {
		return ""
	}
	return ` style="` + strings.Join(rules, "; ") + `"`
}
