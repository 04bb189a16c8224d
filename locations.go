package tablespan

import "fmt"

// LayoutInput is everything the location engine needs to know about a
// table. Levels and widths are those of the annotated side roots, so a
// side with a single leaf has level 2 and width 1.
type LayoutInput struct {
	HasTitle    bool
	HasSubtitle bool
	HasLHS      bool
	LHSLevel    int
	RHSLevel    int
	LHSWidth    int
	RHSWidth    int
	DataRows    int
	StartRow    int
	StartCol    int
}

// Locations is the absolute, 1-based grid rectangle of every table region.
// Zero marks a region that does not exist: the rows of a missing title or
// subtitle, the columns of a missing row side. Column bounds of the
// full-width regions are always set.
type Locations struct {
	StartRowTitle    int `json:"start_row_title" yaml:"start_row_title"`
	EndRowTitle      int `json:"end_row_title" yaml:"end_row_title"`
	StartRowSubtitle int `json:"start_row_subtitle" yaml:"start_row_subtitle"`
	EndRowSubtitle   int `json:"end_row_subtitle" yaml:"end_row_subtitle"`
	StartRowHeader   int `json:"start_row_header" yaml:"start_row_header"`
	EndRowHeader     int `json:"end_row_header" yaml:"end_row_header"`
	StartRowData     int `json:"start_row_data" yaml:"start_row_data"`
	EndRowData       int `json:"end_row_data" yaml:"end_row_data"`
	StartRowFootnote int `json:"start_row_footnote" yaml:"start_row_footnote"`
	EndRowFootnote   int `json:"end_row_footnote" yaml:"end_row_footnote"`

	StartColTitle     int `json:"start_col_title" yaml:"start_col_title"`
	EndColTitle       int `json:"end_col_title" yaml:"end_col_title"`
	StartColSubtitle  int `json:"start_col_subtitle" yaml:"start_col_subtitle"`
	EndColSubtitle    int `json:"end_col_subtitle" yaml:"end_col_subtitle"`
	StartColHeaderLHS int `json:"start_col_header_lhs" yaml:"start_col_header_lhs"`
	EndColHeaderLHS   int `json:"end_col_header_lhs" yaml:"end_col_header_lhs"`
	StartColHeaderRHS int `json:"start_col_header_rhs" yaml:"start_col_header_rhs"`
	EndColHeaderRHS   int `json:"end_col_header_rhs" yaml:"end_col_header_rhs"`
	StartColFootnote  int `json:"start_col_footnote" yaml:"start_col_footnote"`
	EndColFootnote    int `json:"end_col_footnote" yaml:"end_col_footnote"`
}

// ComputeLocations lays the table regions out top to bottom starting at
// (StartRow, StartCol).
//
// The header takes max(LHSLevel, RHSLevel)-1 rows since side root levels
// count the synthetic root. The footnote row is always computed; renderers
// decide whether to fill it.
func ComputeLocations(in LayoutInput) (Locations, error) {
	if err := in.validate(); err != nil {
		return Locations{}, err
	}
	var loc Locations

	row := in.StartRow
	if in.HasTitle {
		loc.StartRowTitle, loc.EndRowTitle = row, row
		row++
	}
	if in.HasSubtitle {
		loc.StartRowSubtitle, loc.EndRowSubtitle = row, row
		row++
	}

	loc.StartRowHeader = row
	level := in.RHSLevel
	if in.HasLHS {
		level = max(in.LHSLevel, in.RHSLevel)
	}
	row += level - 1
	loc.EndRowHeader = row - 1

	loc.StartRowData = row
	loc.EndRowData = row + in.DataRows - 1
	row += in.DataRows

	loc.StartRowFootnote, loc.EndRowFootnote = row, row

	col := in.StartCol
	loc.StartColTitle, loc.StartColSubtitle, loc.StartColFootnote = col, col, col
	nCol := in.RHSWidth - 1
	loc.StartColHeaderRHS = col
	if in.HasLHS {
		nCol += in.LHSWidth
		loc.StartColHeaderLHS = col
		loc.EndColHeaderLHS = col + in.LHSWidth - 1
		loc.StartColHeaderRHS = col + in.LHSWidth
	}
	end := col + nCol
	loc.EndColTitle, loc.EndColSubtitle, loc.EndColFootnote, loc.EndColHeaderRHS = end, end, end, end
	return loc, nil
}

func (in LayoutInput) validate() error {
	if in.StartRow < 1 || in.StartCol < 1 {
		return fmt.Errorf("%w: start (%d, %d) must be at least (1, 1)", ErrLayout, in.StartRow, in.StartCol)
	}
	if in.RHSLevel < 1 || in.RHSWidth < 1 {
		return fmt.Errorf("%w: column side is not annotated (level %d, width %d)", ErrLayout, in.RHSLevel, in.RHSWidth)
	}
	if in.HasLHS && (in.LHSLevel < 1 || in.LHSWidth < 1) {
		return fmt.Errorf("%w: row side is not annotated (level %d, width %d)", ErrLayout, in.LHSLevel, in.LHSWidth)
	}
	if in.DataRows < 0 {
		return fmt.Errorf("%w: negative row count %d", ErrLayout, in.DataRows)
	}
	return nil
}

// HeaderRows returns the number of rows the header occupies.
func (l Locations) HeaderRows() int { return l.EndRowHeader - l.StartRowHeader + 1 }

// Map returns the locations keyed by region name, e.g. "end_col_header_rhs".
func (l Locations) Map() map[string]int {
	fields := l.fields()
	m := make(map[string]int, len(fields))
	for _, f := range fields {
		m[f.name] = *f.value
	}
	return m
}

// Get returns the location called name. The second result is false for an
// unknown name; an absent region yields (0, true).
func (l Locations) Get(name string) (int, bool) {
	for _, f := range l.fields() {
		if f.name == name {
			return *f.value, true
		}
	}
	return 0, false
}

// LocationNames lists every name accepted by [Locations.Get].
func LocationNames() []string {
	var l Locations
	fields := l.fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

type locationField struct {
	name  string
	value *int
}

func (l *Locations) fields() []locationField {
	return []locationField{
		{"start_row_title", &l.StartRowTitle},
		{"end_row_title", &l.EndRowTitle},
		{"start_row_subtitle", &l.StartRowSubtitle},
		{"end_row_subtitle", &l.EndRowSubtitle},
		{"start_row_header", &l.StartRowHeader},
		{"end_row_header", &l.EndRowHeader},
		{"start_row_data", &l.StartRowData},
		{"end_row_data", &l.EndRowData},
		{"start_row_footnote", &l.StartRowFootnote},
		{"end_row_footnote", &l.EndRowFootnote},
		{"start_col_title", &l.StartColTitle},
		{"end_col_title", &l.EndColTitle},
		{"start_col_subtitle", &l.StartColSubtitle},
		{"end_col_subtitle", &l.EndColSubtitle},
		{"start_col_header_lhs", &l.StartColHeaderLHS},
		{"end_col_header_lhs", &l.EndColHeaderLHS},
		{"start_col_header_rhs", &l.StartColHeaderRHS},
		{"end_col_header_rhs", &l.EndColHeaderRHS},
		{"start_col_footnote", &l.StartColFootnote},
		{"end_col_footnote", &l.EndColFootnote},
	}
}
