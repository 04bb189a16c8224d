package tablespan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tablespan"
)

func TestNewDataFrame(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		names   []string
		cols    [][]any
		rows    int
		wantErr require.ErrorAssertionFunc
	}{
		"ok": {
			names:   []string{"a", "b"},
			cols:    [][]any{{1, 2}, {"x", "y"}},
			rows:    2,
			wantErr: require.NoError,
		},
		"empty": {
			wantErr: require.NoError,
		},
		"name count mismatch": {
			names: []string{"a"},
			cols:  [][]any{{1}, {2}},
			wantErr: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, tablespan.ErrShape)
			},
		},
		"ragged columns": {
			names: []string{"a", "b"},
			cols:  [][]any{{1, 2}, {3}},
			wantErr: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, tablespan.ErrShape)
				require.ErrorContains(t, err, `"b"`)
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			df, err := tablespan.NewDataFrame(tt.names, tt.cols)
			tt.wantErr(t, err)
			if err == nil {
				assert.Equal(t, tt.rows, df.Len())
				assert.Equal(t, len(tt.names), df.Width())
			}
		})
	}
}

func TestFromRecords(t *testing.T) {
	t.Parallel()
	df, err := tablespan.FromRecords([]string{"a", "b"}, [][]any{{1, "x"}, {2, "y"}, {3, "z"}})
	require.NoError(t, err)
	assert.Equal(t, 3, df.Len())
	assert.Equal(t, []string{"a", "b"}, df.Columns())
	col, ok := df.Column("b")
	require.True(t, ok)
	assert.Equal(t, []any{"x", "y", "z"}, col)
	assert.Equal(t, []any{2, "y"}, df.Row(1))
	assert.Equal(t, 3, df.Value(2, 0))

	_, err = tablespan.FromRecords([]string{"a", "b"}, [][]any{{1}})
	assert.ErrorIs(t, err, tablespan.ErrShape)
}

func TestDataFrameDuplicateNames(t *testing.T) {
	t.Parallel()
	df, err := tablespan.NewDataFrame([]string{"a", "a"}, [][]any{{1}, {2}})
	require.NoError(t, err)
	col, ok := df.Column("a")
	require.True(t, ok)
	assert.Equal(t, []any{1}, col)
}

func TestNilDataFrame(t *testing.T) {
	t.Parallel()
	var df *tablespan.DataFrame
	assert.Zero(t, df.Len())
	assert.Zero(t, df.Width())
}

func TestSelect(t *testing.T) {
	t.Parallel()
	df, err := tablespan.NewDataFrame([]string{"a", "b", "c"}, [][]any{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)

	got, err := df.Select("c", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, got.Columns())
	assert.Equal(t, []any{5, 1}, got.Row(0))

	src, _ := df.Column("c")
	dst, _ := got.Column("c")
	dst[0] = 99
	assert.Equal(t, 5, src[0], "selected columns are copies")

	_, err = tablespan.Select(df, []string{"a", "zzz"})
	require.ErrorIs(t, err, tablespan.ErrUnknownColumn)
	var uc *tablespan.UnknownColumnError
	require.ErrorAs(t, err, &uc)
	assert.Equal(t, "zzz", uc.Column)
	assert.Equal(t, []string{"a", "b", "c"}, uc.Available)
	assert.Contains(t, err.Error(), `"zzz"`)
}

// raggedFrame reports more rows than some of its columns hold.
type raggedFrame map[string][]any

func (f raggedFrame) Columns() []string { return []string{"a", "y"} }

func (f raggedFrame) Column(name string) ([]any, bool) {
	col, ok := f[name]
	return col, ok
}

func (f raggedFrame) Len() int { return 3 }

func TestSelectRaggedFrame(t *testing.T) {
	t.Parallel()
	f := raggedFrame{"a": {1}, "y": {1, 2, 3}}

	got, err := tablespan.Select(f, []string{"y"})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())

	_, err = tablespan.Select(f, []string{"y", "a"})
	require.ErrorIs(t, err, tablespan.ErrShape)
	assert.ErrorContains(t, err, `"a"`)

	_, err = tablespan.New(f, "a ~ y")
	assert.ErrorIs(t, err, tablespan.ErrShape)
}
