package tablespan

import "fmt"

// Table is a formula applied to a data frame: the annotated header trees
// plus the selected row name and data columns. A Table never changes after
// [New] and may be rendered from several goroutines at once.
type Table struct {
	formula  string
	title    string
	subtitle string
	footnote string
	header   Header
	vars     VariableSet
	rowData  *DataFrame
	colData  *DataFrame
}

// TableOption configures a [Table].
type TableOption func(*Table)

// WithTitle sets the line printed above the table.
func WithTitle(s string) TableOption {
	return func(t *Table) { t.title = s }
}

// WithSubtitle sets the line printed below the title.
func WithSubtitle(s string) TableOption {
	return func(t *Table) { t.subtitle = s }
}

// WithFootnote sets the line printed below the table.
func WithFootnote(s string) TableOption {
	return func(t *Table) { t.footnote = s }
}

// New parses formula, builds its header trees and selects the columns it
// names from data.
//
//	tbl, err := tablespan.New(df, "Species:species ~ (Sepal = Length:sl + Width:sw)",
//		tablespan.WithTitle("Iris"))
func New(data Frame, formula string, opts ...TableOption) (*Table, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil data frame", ErrShape)
	}
	header, err := ParseHeader(formula)
	if err != nil {
		return nil, err
	}
	t := &Table{
		formula: formula,
		header:  header,
		vars:    header.Variables(),
	}
	for _, o := range opts {
		o(t)
	}
	if header.HasRowSide() {
		if t.rowData, err = Select(data, t.vars.LHS); err != nil {
			return nil, err
		}
	}
	if t.colData, err = Select(data, t.vars.RHS); err != nil {
		return nil, err
	}
	return t, nil
}

// Formula returns the formula the table was built from.
func (t *Table) Formula() string { return t.formula }

// Title returns the title, empty if none was set.
func (t *Table) Title() string { return t.title }

// Subtitle returns the subtitle, empty if none was set.
func (t *Table) Subtitle() string { return t.subtitle }

// Footnote returns the footnote, empty if none was set.
func (t *Table) Footnote() string { return t.footnote }

// Header returns the annotated header trees. Callers must not modify them.
func (t *Table) Header() Header { return t.header }

// Variables returns the data columns referenced by each formula side.
func (t *Table) Variables() VariableSet { return t.vars }

// RowData returns the row name columns, nil when the formula has no row
// side.
func (t *Table) RowData() *DataFrame { return t.rowData }

// ColData returns the data columns.
func (t *Table) ColData() *DataFrame { return t.colData }

// Len returns the number of data rows.
func (t *Table) Len() int { return t.colData.Len() }

// Locations computes the grid rectangle of every region when the table
// starts at the given 1-based cell.
func (t *Table) Locations(startRow, startCol int) (Locations, error) {
	in := LayoutInput{
		HasTitle:    t.title != "",
		HasSubtitle: t.subtitle != "",
		HasLHS:      t.header.HasRowSide(),
		RHSLevel:    t.header.RHS.Level,
		RHSWidth:    t.header.RHS.Width,
		DataRows:    t.Len(),
		StartRow:    startRow,
		StartCol:    startCol,
	}
	if in.HasLHS {
		in.LHSLevel = t.header.LHS.Level
		in.LHSWidth = t.header.LHS.Width
	}
	return ComputeLocations(in)
}

// dataRow returns the row names followed by the data of row i.
func (t *Table) dataRow(i int) []any {
	var row []any
	if t.rowData != nil {
		row = t.rowData.Row(i)
	}
	return append(row, t.colData.Row(i)...)
}

// lhsWidth returns the number of row name columns.
func (t *Table) lhsWidth() int { return t.rowData.Width() }

// column returns row name and data columns by combined position.
func (t *Table) column(j int) []any {
	n := t.lhsWidth()
	if j < n {
		return t.rowData.values(j)
	}
	return t.colData.values(j - n)
}
