package tablespan

// Run is a block of adjacent data rows whose row name cells merge into
// one. Start is the 0-based first row; Span is at least 1.
type Run struct {
	Start int
	Span  int
}

// End returns the last row of the run.
func (r Run) End() int { return r.Start + r.Span - 1 }

// RowNameRuns groups the rows of each row name column into runs.
//
// Row i joins the run above it in column j only if columns 0 through j all
// hold the same values as row i-1. Merging is by prefix so that a name
// never merges across a boundary of the column to its left. A nil or
// empty frame yields nil.
func RowNameRuns(rows *DataFrame) [][]Run {
	if rows.Len() == 0 || rows.Width() == 0 {
		return nil
	}
	runs := make([][]Run, rows.Width())
	// same[i] reports whether row i matched row i-1 on every column so far.
	same := make([]bool, rows.Len())
	for i := 1; i < len(same); i++ {
		same[i] = true
	}
	for j := range rows.Width() {
		col := rows.values(j)
		current := Run{Start: 0, Span: 1}
		for i := 1; i < len(col); i++ {
			same[i] = same[i] && sameValue(col[i], col[i-1])
			if same[i] {
				current.Span++
				continue
			}
			runs[j] = append(runs[j], current)
			current = Run{Start: i, Span: 1}
		}
		runs[j] = append(runs[j], current)
	}
	return runs
}

func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return formatValue(a, -1) == formatValue(b, -1)
}
