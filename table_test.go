package tablespan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tablespan"
)

func sampleFrame(t *testing.T) *tablespan.DataFrame {
	t.Helper()
	df, err := tablespan.NewDataFrame(
		[]string{"name", "age", "score"},
		[][]any{
			{"Alice", "Bob"},
			{30, 25},
			{1.5, 2.0},
		},
	)
	require.NoError(t, err)
	return df
}

func newSampleTable(t *testing.T, formula string, opts ...tablespan.TableOption) *tablespan.Table {
	t.Helper()
	tbl, err := tablespan.New(sampleFrame(t), formula, opts...)
	require.NoError(t, err)
	return tbl
}

func TestNew(t *testing.T) {
	t.Parallel()
	tbl := newSampleTable(t, "Name:name ~ (Stats = Age:age + Score:score)",
		tablespan.WithTitle("People"),
		tablespan.WithSubtitle("A sample"),
		tablespan.WithFootnote("made up"),
	)

	assert.Equal(t, "Name:name ~ (Stats = Age:age + Score:score)", tbl.Formula())
	assert.Equal(t, "People", tbl.Title())
	assert.Equal(t, "A sample", tbl.Subtitle())
	assert.Equal(t, "made up", tbl.Footnote())
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, tablespan.VariableSet{LHS: []string{"name"}, RHS: []string{"age", "score"}}, tbl.Variables())

	assert.Equal(t, []string{"name"}, tbl.RowData().Columns())
	assert.Equal(t, []string{"age", "score"}, tbl.ColData().Columns())
	assert.Equal(t, []any{25, 2.0}, tbl.ColData().Row(1))

	h := tbl.Header()
	assert.Equal(t, 3, h.RHS.Level)
	assert.Equal(t, 2, h.RHS.Width)
	assert.Equal(t, "Stats", h.RHS.Entries[0].Name)
}

func TestNewNoRowSide(t *testing.T) {
	t.Parallel()
	tbl := newSampleTable(t, "1 ~ age + score")
	assert.Nil(t, tbl.RowData())
	assert.Nil(t, tbl.Variables().LHS)
	assert.Equal(t, []string{"age", "score"}, tbl.Variables().RHS)
	assert.Equal(t, 2, tbl.Len())
}

func TestNewErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		formula string
		want    error
	}{
		"syntax":          {formula: "name ~~ age", want: tablespan.ErrSyntax},
		"unnamed spanner": {formula: "(name + age) ~ score", want: tablespan.ErrSpanner},
		"unknown rhs":     {formula: "name ~ height", want: tablespan.ErrUnknownColumn},
		"unknown lhs":     {formula: "Name:first ~ age", want: tablespan.ErrUnknownColumn},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := tablespan.New(sampleFrame(t), tt.formula)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := tablespan.New(nil, "a ~ b")
	assert.ErrorIs(t, err, tablespan.ErrShape)
}

func TestNewReusesColumn(t *testing.T) {
	t.Parallel()
	tbl := newSampleTable(t, "name ~ Years:age + (Again = Age:age)")
	assert.Equal(t, []string{"age", "age"}, tbl.Variables().RHS)
	assert.Equal(t, []any{30, 30}, tbl.ColData().Row(0))
}

func TestNewColumnNamedLikeRoot(t *testing.T) {
	t.Parallel()
	df, err := tablespan.FromRecords([]string{tablespan.BaseLevel, "y"}, [][]any{{"x", 1}, {"z", 2}})
	require.NoError(t, err)
	tbl, err := tablespan.New(df, tablespan.BaseLevel+" ~ y")
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.RowData().Width())
	assert.Equal(t, tbl.Header().LHS.Width, tbl.RowData().Width())

	out, err := tablespan.Marshal(tablespan.CSV, tbl)
	require.NoError(t, err)
	assert.Equal(t, "_BASE_LEVEL_,y\nx,1\nz,2\n", string(out))

	for _, f := range []tablespan.Format{tablespan.Text, tablespan.HTML, tablespan.Markdown, tablespan.XLSX} {
		out, err := tablespan.Marshal(f, tbl)
		require.NoError(t, err, f)
		if !f.Binary() {
			assert.Contains(t, string(out), tablespan.BaseLevel, f)
		}
	}
}
