package tablespan

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// writeMarkdown writes a GitHub table. Markdown has no column spans, so a
// leaf header carries the names of its spanners: "Sepal / Length".
func writeMarkdown(w io.Writer, t *Table, cfg renderConfig) error {
	paths := leafPaths(t.header)
	numCols := len(paths)
	lhsCols := t.lhsWidth()

	header := make([]string, numCols)
	for i, p := range paths {
		header[i] = escapeMarkdown(strings.Join(p, " / "))
	}

	rows := make([][]string, t.Len())
	for r := range rows {
		rows[r] = make([]string, numCols)
		for j, v := range t.dataRow(r) {
			rows[r][j] = escapeMarkdown(formatValue(v, cfg.decimals))
		}
	}

	// Calculate column widths (minimum 3 for alignment markers).
	widths := make([]int, numCols)
	for i, col := range header {
		widths[i] = max(3, runewidth.StringWidth(col))
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	aligns := make([]Alignment, numCols)
	for j := lhsCols; j < numCols; j++ {
		if numericColumn(t.column(j)) {
			aligns[j] = AlignRight
		}
	}

	if t.title != "" {
		if _, err := fmt.Fprintf(w, "**%s**\n\n", escapeMarkdown(t.title)); err != nil {
			return err
		}
	}
	if t.subtitle != "" {
		if _, err := fmt.Fprintf(w, "_%s_\n\n", escapeMarkdown(t.subtitle)); err != nil {
			return err
		}
	}

	if err := writeMarkdownRow(w, header, widths, aligns); err != nil {
		return err
	}

	sep := make([]string, numCols)
	for i, width := range widths {
		switch aligns[i] {
		case AlignRight:
			sep[i] = strings.Repeat("-", width-1) + ":"
		case AlignCenter:
			sep[i] = ":" + strings.Repeat("-", width-2) + ":"
		default:
			sep[i] = strings.Repeat("-", width)
		}
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}

	for _, row := range rows {
		if err := writeMarkdownRow(w, row, widths, aligns); err != nil {
			return err
		}
	}

	if t.footnote != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", escapeMarkdown(t.footnote)); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdownRow(w io.Writer, cells []string, widths []int, aligns []Alignment) error {
	padded := make([]string, len(widths))
	for i, width := range widths {
		padded[i] = alignCell(cells[i], width, aligns[i])
	}
	_, err := fmt.Fprintf(w, "| %s |\n", strings.Join(padded, " | "))
	return err
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }
