package tablespan

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInternalWrite = errors.New("write failed")

type errWriterInternal struct{}

func (e *errWriterInternal) Write([]byte) (int, error) {
	return 0, errInternalWrite
}

func TestAlignCell(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		s     string
		width int
		align Alignment
		want  string
	}{
		"left":         {s: "ab", width: 5, align: AlignLeft, want: "ab   "},
		"right":        {s: "ab", width: 5, align: AlignRight, want: "   ab"},
		"center":       {s: "ab", width: 5, align: AlignCenter, want: " ab  "},
		"too wide":     {s: "abcdef", width: 3, align: AlignRight, want: "abcdef"},
		"wide runes":   {s: "日本", width: 6, align: AlignLeft, want: "日本  "},
		"exact width":  {s: "abc", width: 3, align: AlignCenter, want: "abc"},
		"empty center": {s: "", width: 2, align: AlignCenter, want: "  "},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, alignCell(tt.s, tt.width, tt.align))
		})
	}
}

type celsius float64

func (c celsius) String() string { return "warm" }

func TestFormatValue(t *testing.T) {
	t.Parallel()
	day := time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC)
	tests := map[string]struct {
		v        any
		decimals int
		want     string
	}{
		"nil":              {v: nil, decimals: -1, want: ""},
		"string":           {v: "x", decimals: 2, want: "x"},
		"int":              {v: 42, decimals: 2, want: "42"},
		"uint8":            {v: uint8(7), decimals: -1, want: "7"},
		"float shortest":   {v: 1.25, decimals: -1, want: "1.25"},
		"float fixed":      {v: 1.255, decimals: 1, want: "1.3"},
		"float32":          {v: float32(0.5), decimals: -1, want: "0.5"},
		"bool":             {v: true, decimals: -1, want: "true"},
		"bytes":            {v: []byte("raw"), decimals: -1, want: "raw"},
		"decimal":          {v: decimal.RequireFromString("3.10"), decimals: -1, want: "3.1"},
		"decimal fixed":    {v: decimal.RequireFromString("3.1"), decimals: 3, want: "3.100"},
		"null decimal":     {v: decimal.NullDecimal{}, decimals: -1, want: ""},
		"time":             {v: day, decimals: -1, want: "2024-03-01"},
		"null string":      {v: sql.NullString{}, decimals: -1, want: ""},
		"valid null int64": {v: sql.NullInt64{Int64: 9, Valid: true}, decimals: -1, want: "9"},
		"stringer":         {v: celsius(21), decimals: -1, want: "warm"},
		"other":            {v: []int{1, 2}, decimals: -1, want: "[1 2]"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatValue(tt.v, tt.decimals))
		})
	}
}

func TestNumericColumn(t *testing.T) {
	t.Parallel()
	assert.True(t, numericColumn([]any{1, 2.5, nil, decimal.NewFromInt(3)}))
	assert.True(t, numericColumn([]any{sql.NullFloat64{Float64: 1, Valid: true}}))
	assert.False(t, numericColumn([]any{1, "2"}))
	assert.False(t, numericColumn([]any{nil, nil}))
	assert.False(t, numericColumn(nil))
}

func TestSameValue(t *testing.T) {
	t.Parallel()
	assert.True(t, sameValue(nil, nil))
	assert.True(t, sameValue("a", "a"))
	assert.True(t, sameValue(int64(3), 3))
	assert.False(t, sameValue(nil, ""))
	assert.False(t, sameValue("a", "b"))
}

func TestFragment(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", fragment("abc", 3))
	assert.Equal(t, "c", fragment("abc  ", 2))
	assert.Equal(t, "0123456789abcdef...", fragment("0123456789abcdefghij", 0))
}

func TestSplitVariable(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		in       string
		name     string
		item     string
		wantErrT error
	}{
		"plain":          {in: "a", name: "a", item: "a"},
		"renamed":        {in: "a:b", name: "a", item: "b"},
		"quoted colon":   {in: "`a:b`", name: "a:b", item: "a:b"},
		"quoted both":    {in: "`A b`:`c d`", name: "A b", item: "c d"},
		"escaped quote":  {in: "`a\\`b`", name: "a`b", item: "a`b"},
		"one":            {in: "1", name: "1", item: "1"},
		"empty name":     {in: ":b", wantErrT: errEmptyPart},
		"empty item":     {in: "a:", wantErrT: errEmptyPart},
		"empty quoted":   {in: "``", wantErrT: errEmptyPart},
		"unterminated":   {in: "`ab", wantErrT: errUnterminated},
		"second colon":   {in: "a:b:c", name: "a", item: "b:c"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			gotName, gotItem, err := splitVariable(tt.in)
			if tt.wantErrT != nil {
				assert.ErrorIs(t, err, tt.wantErrT)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, gotName)
			assert.Equal(t, tt.item, gotItem)
		})
	}
}

func TestUnquote(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc", unquote("abc"))
	assert.Equal(t, "a b", unquote("`a b`"))
	assert.Equal(t, `a\b`, unquote("`a\\\\b`"))
	assert.Equal(t, "`", unquote("`"))
}

func TestHeaderGrid(t *testing.T) {
	t.Parallel()
	h, err := ParseHeader("a + (L = b) ~ (S = c + (T = d + e)) + f")
	require.NoError(t, err)
	g := newHeaderGrid(h)

	assert.Equal(t, 2, g.lhsCols)
	assert.Equal(t, 4, g.rhsCols)
	require.Len(t, g.rows, 3)

	labels := func(r int) []string {
		var out []string
		for _, c := range g.rows[r] {
			if c.blank {
				out = append(out, "")
				continue
			}
			out = append(out, c.label)
		}
		return out
	}
	assert.Equal(t, []string{"", "", "S", ""}, labels(0))
	assert.Equal(t, []string{"", "L", "", "T", ""}, labels(1))
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, labels(2))
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, g.leaves())

	for r, row := range g.rows {
		cols := 0
		for _, c := range row {
			assert.Equal(t, cols, c.col, "row %d", r)
			cols += c.span
		}
		assert.Equal(t, g.width(), cols, "row %d", r)
	}
}

func TestLeafPaths(t *testing.T) {
	t.Parallel()
	h, err := ParseHeader("a ~ (S = c + (T = d)) + f")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"a"},
		{"S", "c"},
		{"S", "T", "d"},
		{"f"},
	}, leafPaths(h))

	h, err = ParseHeader("1 ~ f")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"f"}}, leafPaths(h))
}

func TestWriteCSVRowSuccess(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	require.NoError(t, writeCSVRow(cw, []any{"a", 1, 2.5, nil}, -1))
	cw.Flush()
	require.NoError(t, cw.Error())
	assert.Equal(t, "a,1,2.5,\n", buf.String())
}

func TestWriteCSVRowLargeDataError(t *testing.T) {
	t.Parallel()
	cw := csv.NewWriter(&errWriterInternal{})
	// Large data exceeds the bufio buffer (4096 bytes), so Write itself fails.
	err := writeCSVRow(cw, []any{strings.Repeat("x", 5000)}, -1)
	assert.Error(t, err)
}

func TestRecordKeys(t *testing.T) {
	t.Parallel()
	df, err := NewDataFrame([]string{"a", "b", "a_2"}, [][]any{{1}, {2}, {3}})
	require.NoError(t, err)
	tests := map[string]struct {
		formula string
		want    []string
	}{
		"distinct":     {formula: "a ~ b", want: []string{"a", "b"}},
		"both sides":   {formula: "b ~ X:b", want: []string{"b", "b_2"}},
		"three times":  {formula: "1 ~ b + (S = b) + B:b", want: []string{"b", "b_2", "b_3"}},
		"suffix taken": {formula: "a ~ a + a_2", want: []string{"a", "a_3", "a_2"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			tbl, err := New(df, tt.formula)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tbl.recordKeys())
		})
	}
}

func TestTableRecord(t *testing.T) {
	t.Parallel()
	df, err := NewDataFrame([]string{"k", "v"}, [][]any{{"a"}, {sql.NullInt64{}}})
	require.NoError(t, err)
	tbl, err := New(df, "Key:k ~ Value:v")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": "a", "v": nil}, tbl.record(tbl.recordKeys(), 0))
	assert.Equal(t, []string{"k", "v"}, tbl.recordKeys())
	assert.Equal(t, 1, tbl.lhsWidth())
	assert.Equal(t, []any{"a"}, tbl.column(0))
}
