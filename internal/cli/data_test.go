package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tablespan"
)

func TestSniffSeparator(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		head string
		want rune
	}{
		"comma":       {head: "a,b\n1,2", want: ','},
		"semicolon":   {head: "a;b,c\n", want: ';'},
		"tab":         {head: "a\tb", want: '\t'},
		"pipe":        {head: "a|b", want: '|'},
		"single":      {head: "a\n1;2", want: ','},
		"first wins":  {head: "a|b;c", want: '|'},
		"empty input": {head: "", want: ','},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sniffSeparator([]byte(tt.head)))
		})
	}
}

func TestReadCSV(t *testing.T) {
	t.Parallel()
	in := "name;age;score;note\nAlice;30;1.5;x\nBob;;2;\n"
	df, err := readCSV(strings.NewReader(in), "", false)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "score", "note"}, df.Columns())
	assert.Equal(t, 2, df.Len())
	assert.Equal(t, []any{"Alice", int64(30), 1.5, "x"}, df.Row(0))
	assert.Equal(t, []any{"Bob", nil, 2.0, nil}, df.Row(1))
}

func TestReadCSVExact(t *testing.T) {
	t.Parallel()
	df, err := readCSV(strings.NewReader("v\n0.1\n0.2\n"), "utf-8", true)
	require.NoError(t, err)
	col, ok := df.Column("v")
	require.True(t, ok)
	require.Len(t, col, 2)
	d, ok := col[0].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("0.1")))
}

func TestReadCSVCharset(t *testing.T) {
	t.Parallel()
	df, err := readCSV(strings.NewReader("city\ncaf\xe9\n"), "windows-1252", false)
	require.NoError(t, err)
	assert.Equal(t, []any{"café"}, df.Row(0))

	_, err = readCSV(strings.NewReader("a\n1\n"), "no-such-charset", false)
	assert.Error(t, err)
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()
	_, err := readCSV(strings.NewReader(""), "", false)
	assert.ErrorIs(t, err, tablespan.ErrShape)

	_, err = readCSV(strings.NewReader("a,b\n1,2,3\n"), "", false)
	assert.Error(t, err)
}

func TestConvertColumn(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []any{int64(1), nil, int64(-3)}, convertColumn([]string{"1", "", "-3"}, false))
	assert.Equal(t, []any{1.0, 2.5}, convertColumn([]string{"1", "2.5"}, false))
	assert.Equal(t, []any{"1", "a"}, convertColumn([]string{"1", "a"}, false))
	assert.Equal(t, []any{nil, nil}, convertColumn([]string{"", ""}, false))
}
