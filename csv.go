package tablespan

import (
	"encoding/csv"
	"io"
)

// writeCSV writes one record per header row, a spanner label sitting in
// the first column it covers, followed by one record per data row. Title,
// subtitle and footnote are not part of the output.
func writeCSV(w io.Writer, t *Table, cfg renderConfig, comma rune) error {
	g := newHeaderGrid(t.header)
	cw := csv.NewWriter(w)
	cw.Comma = comma

	for _, cells := range g.rows {
		record := make([]string, g.width())
		for _, c := range cells {
			record[c.col] = c.label
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	for r := range t.Len() {
		if err := writeCSVRow(cw, t.dataRow(r), cfg.decimals); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeCSVRow(cw *csv.Writer, values []any, decimals int) error {
	record := make([]string, len(values))
	for i, v := range values {
		record[i] = formatValue(v, decimals)
	}
	return cw.Write(record)
}
