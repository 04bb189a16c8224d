package tablespan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tablespan"
)

func TestRowNameRuns(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		cols [][]any
		want [][]tablespan.Run
	}{
		"single column": {
			cols: [][]any{{"a", "a", "b", "a"}},
			want: [][]tablespan.Run{{{0, 2}, {2, 1}, {3, 1}}},
		},
		"prefix boundary": {
			cols: [][]any{
				{"x", "x", "y", "y"},
				{"1", "1", "1", "2"},
			},
			want: [][]tablespan.Run{
				{{0, 2}, {2, 2}},
				{{0, 2}, {2, 1}, {3, 1}},
			},
		},
		"formatted equality": {
			cols: [][]any{{int64(1), 1, 1.5}},
			want: [][]tablespan.Run{{{0, 2}, {2, 1}}},
		},
		"nils": {
			cols: [][]any{{nil, nil, "", "a"}},
			want: [][]tablespan.Run{{{0, 2}, {2, 1}, {3, 1}}},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			names := make([]string, len(tt.cols))
			for i := range names {
				names[i] = string(rune('a' + i))
			}
			df, err := tablespan.NewDataFrame(names, tt.cols)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tablespan.RowNameRuns(df))
		})
	}
}

func TestRowNameRunsEmpty(t *testing.T) {
	t.Parallel()
	assert.Nil(t, tablespan.RowNameRuns(nil))
	df, err := tablespan.NewDataFrame([]string{"a"}, [][]any{{}})
	require.NoError(t, err)
	assert.Nil(t, tablespan.RowNameRuns(df))
}

func TestRunEnd(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 4, tablespan.Run{Start: 2, Span: 3}.End())
	assert.Equal(t, 0, tablespan.Run{Start: 0, Span: 1}.End())
}
