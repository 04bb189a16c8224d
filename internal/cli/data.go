package cli

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/bjaus/tablespan"
)

// getEncoding returns the decoder of encName; nil means UTF-8.
func getEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

// sniffSeparator returns the first of , ; tab or | on the first line of
// head, comma if there is none.
func sniffSeparator(head []byte) rune {
	line, _, _ := strings.Cut(string(head), "\n")
	if i := strings.IndexAny(line, ",;\t|"); i >= 0 {
		return rune(line[i])
	}
	return ','
}

// readCSV reads a CSV document with a header line into a data frame.
// Columns whose cells all parse as integers become int64 columns, columns
// of numbers become float64, or decimal.Decimal when exact is set. Empty
// cells are nil.
func readCSV(r io.Reader, charset string, exact bool) (*tablespan.DataFrame, error) {
	enc, err := getEncoding(charset)
	if err != nil {
		return nil, err
	}
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<16)
	head, err := br.Peek(1024)
	if err != nil && len(head) == 0 {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty input", tablespan.ErrShape)
		}
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffSeparator(head)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty input", tablespan.ErrShape)
	}

	names := records[0]
	cols := make([][]any, len(names))
	for j := range names {
		cells := make([]string, len(records)-1)
		for i, rec := range records[1:] {
			cells[i] = strings.TrimSpace(rec[j])
		}
		cols[j] = convertColumn(cells, exact)
	}
	return tablespan.NewDataFrame(names, cols)
}

func convertColumn(cells []string, exact bool) []any {
	out := make([]any, len(cells))
	if parsed, ok := parseColumn(cells, func(s string) (any, error) { return strconv.ParseInt(s, 10, 64) }); ok {
		return parsed
	}
	parse := func(s string) (any, error) { return strconv.ParseFloat(s, 64) }
	if exact {
		parse = func(s string) (any, error) { return decimal.NewFromString(s) }
	}
	if parsed, ok := parseColumn(cells, parse); ok {
		return parsed
	}
	for i, s := range cells {
		if s != "" {
			out[i] = s
		}
	}
	return out
}

// parseColumn parses every non-empty cell with parse. It fails if any cell
// does not parse or all cells are empty.
func parseColumn(cells []string, parse func(string) (any, error)) ([]any, bool) {
	out := make([]any, len(cells))
	seen := false
	for i, s := range cells {
		if s == "" {
			continue
		}
		v, err := parse(s)
		if err != nil {
			return nil, false
		}
		out[i] = v
		seen = true
	}
	return out, seen
}
