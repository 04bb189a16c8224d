package tablespan

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// CellStyler changes the style of a spreadsheet cell. Stylers are applied
// in order to a fresh style, so a later styler overrides an earlier one.
type CellStyler interface {
	Apply(s *excelize.Style)
}

// StyleFunc adapts a function to [CellStyler].
type StyleFunc func(s *excelize.Style)

// Apply calls f(s).
func (f StyleFunc) Apply(s *excelize.Style) { f(s) }

// DataTypePredicate decides whether a data column is of some type.
type DataTypePredicate interface {
	Matches(col []any) bool
}

// PredicateFunc adapts a function to [DataTypePredicate].
type PredicateFunc func(col []any) bool

// Matches calls f(col).
func (f PredicateFunc) Matches(col []any) bool { return f(col) }

// FloatColumn matches columns holding only floating point values (and
// nils).
var FloatColumn DataTypePredicate = PredicateFunc(func(col []any) bool {
	seen := false
	for _, v := range col {
		if plainValue(v) == nil {
			continue
		}
		if !isFloat(v) {
			return false
		}
		seen = true
	}
	return seen
})

// DataStyle styles every cell of the columns its test matches.
type DataStyle struct {
	Name  string
	Test  DataTypePredicate
	Style CellStyler
}

// CellStyle styles selected data cells. Rows are 1-based data row
// numbers; Cols name data columns.
type CellStyle struct {
	Rows  []int
	Cols  []string
	Style CellStyler
}

// XLSXStyles holds the stylers of every table region. A nil styler leaves
// the region unstyled.
type XLSXStyles struct {
	Background     CellStyler
	Title          CellStyler
	Subtitle       CellStyler
	HeaderLHS      CellStyler
	HeaderRHS      CellStyler
	RowNames       CellStyler
	Data           CellStyler
	Footnote       CellStyler
	MergedRowNames CellStyler
	VLine          CellStyler // left edge of the data block
	HLine          CellStyler // top edge of the footnote row

	// DataStyles is searched in order; the first style whose test matches
	// a column is applied to it.
	DataStyles []DataStyle
	CellStyles []CellStyle
}

const black = "FF000000"

// DefaultXLSXStyles returns the default styles: bold title and header,
// thin header borders and two decimals for float columns.
func DefaultXLSXStyles() *XLSXStyles {
	header := StyleFunc(func(s *excelize.Style) {
		s.Font = &excelize.Font{Size: 11, Bold: true}
		s.Border = []excelize.Border{
			{Type: "left", Color: black, Style: 1},
			{Type: "bottom", Color: black, Style: 1},
			{Type: "right", Color: black, Style: 1},
		}
	})
	plain := StyleFunc(func(s *excelize.Style) { s.Font = &excelize.Font{Size: 11} })
	twoDecimals := "0.00"
	return &XLSXStyles{
		Background: StyleFunc(func(s *excelize.Style) {
			s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFFFFF"}}
		}),
		Title:     StyleFunc(func(s *excelize.Style) { s.Font = &excelize.Font{Size: 14, Bold: true} }),
		Subtitle:  StyleFunc(func(s *excelize.Style) { s.Font = &excelize.Font{Size: 11, Bold: true} }),
		HeaderLHS: header,
		HeaderRHS: header,
		RowNames:  plain,
		Data:      plain,
		Footnote: StyleFunc(func(s *excelize.Style) {
			s.Font = &excelize.Font{Size: 11}
			s.Alignment = &excelize.Alignment{Horizontal: "left"}
		}),
		MergedRowNames: StyleFunc(func(s *excelize.Style) {
			if s.Alignment == nil {
				s.Alignment = &excelize.Alignment{}
			}
			s.Alignment.Vertical = "top"
		}),
		VLine: StyleFunc(func(s *excelize.Style) { setBorder(s, "left") }),
		HLine: StyleFunc(func(s *excelize.Style) { setBorder(s, "top") }),
		DataStyles: []DataStyle{{
			Name:  "double",
			Test:  FloatColumn,
			Style: StyleFunc(func(s *excelize.Style) { s.CustomNumFmt = &twoDecimals }),
		}},
	}
}

// setBorder adds a thin black border on one side, keeping the others.
func setBorder(s *excelize.Style, side string) {
	b := excelize.Border{Type: side, Color: black, Style: 1}
	for i := range s.Border {
		if s.Border[i].Type == side {
			s.Border[i] = b
			return
		}
	}
	s.Border = append(s.Border, b)
}

func writeXLSX(w io.Writer, t *Table, cfg renderConfig) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", cfg.sheet); err != nil {
		return err
	}
	if err := renderXLSX(f, t, cfg); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

// RenderXLSX writes t into f, creating the sheet chosen with [WithSheet]
// if f has none by that name. Several tables can share a sheet when they
// are placed with [WithStart].
func RenderXLSX(f *excelize.File, t *Table, opts ...RenderOption) error {
	if t == nil {
		return ErrNilTable
	}
	cfg := newRenderConfig(opts)
	idx, err := f.GetSheetIndex(cfg.sheet)
	if err != nil {
		return err
	}
	if idx == -1 {
		if _, err := f.NewSheet(cfg.sheet); err != nil {
			return err
		}
	}
	return renderXLSX(f, t, cfg)
}

func renderXLSX(f *excelize.File, t *Table, cfg renderConfig) error {
	loc, err := t.Locations(cfg.startRow, cfg.startCol)
	if err != nil {
		return err
	}
	c := &xlsxCanvas{f: f, sheet: cfg.sheet, chains: map[cellRef][]CellStyler{}, ids: map[string]int{}}
	st := cfg.styles

	endRow := loc.EndRowData
	if t.footnote != "" {
		endRow = loc.EndRowFootnote
	}
	firstRow := loc.StartRowHeader
	switch {
	case t.title != "":
		firstRow = loc.StartRowTitle
	case t.subtitle != "":
		firstRow = loc.StartRowSubtitle
	}
	c.region(firstRow, loc.StartColTitle, endRow, loc.EndColTitle, st.Background)

	if t.title != "" {
		if err := c.banner(loc.StartRowTitle, loc.StartColTitle, loc.EndColTitle, t.title, st.Title); err != nil {
			return err
		}
	}
	if t.subtitle != "" {
		if err := c.banner(loc.StartRowSubtitle, loc.StartColSubtitle, loc.EndColSubtitle, t.subtitle, st.Subtitle); err != nil {
			return err
		}
	}

	maxLevel := t.header.MaxLevel()
	if t.header.HasRowSide() {
		if err := c.headerChildren(t.header.LHS, maxLevel, loc.StartRowHeader, loc.StartColHeaderLHS, st.HeaderLHS); err != nil {
			return err
		}
	}
	if err := c.headerChildren(t.header.RHS, maxLevel, loc.StartRowHeader, loc.StartColHeaderRHS, st.HeaderRHS); err != nil {
		return err
	}

	if t.rowData != nil {
		if err := c.columns(t.rowData, loc.StartRowData, loc.StartColHeaderLHS, st.RowNames, st.DataStyles); err != nil {
			return err
		}
		if cfg.mergeRowNames {
			if err := c.mergeRowNames(t.rowData, loc, st.MergedRowNames); err != nil {
				return err
			}
		}
		c.region(loc.StartRowHeader, loc.StartColHeaderRHS, loc.EndRowData, loc.StartColHeaderRHS, st.VLine)
	}
	if err := c.columns(t.colData, loc.StartRowData, loc.StartColHeaderRHS, st.Data, st.DataStyles); err != nil {
		return err
	}
	if err := c.cellStyles(t.colData, loc, st.CellStyles); err != nil {
		return err
	}

	if t.footnote != "" {
		if err := c.banner(loc.StartRowFootnote, loc.StartColFootnote, loc.EndColFootnote, t.footnote, st.Footnote); err != nil {
			return err
		}
		c.region(loc.StartRowFootnote, loc.StartColFootnote, loc.EndRowFootnote, loc.EndColFootnote, st.HLine)
	}
	return c.flush()
}

type cellRef struct{ row, col int }

// xlsxCanvas collects the stylers of every cell and turns each distinct
// combination into one workbook style.
type xlsxCanvas struct {
	f      *excelize.File
	sheet  string
	chains map[cellRef][]CellStyler
	order  []cellRef
	ids    map[string]int
}

func (c *xlsxCanvas) style(row, col int, s CellStyler) {
	if s == nil {
		return
	}
	ref := cellRef{row, col}
	if _, ok := c.chains[ref]; !ok {
		c.order = append(c.order, ref)
	}
	c.chains[ref] = append(c.chains[ref], s)
}

func (c *xlsxCanvas) region(startRow, startCol, endRow, endCol int, s CellStyler) {
	for r := startRow; r <= endRow; r++ {
		for col := startCol; col <= endCol; col++ {
			c.style(r, col, s)
		}
	}
}

// banner writes a full width line such as the title.
func (c *xlsxCanvas) banner(row, startCol, endCol int, text string, s CellStyler) error {
	if err := c.set(row, startCol, text); err != nil {
		return err
	}
	if err := c.merge(row, startCol, row, endCol); err != nil {
		return err
	}
	c.region(row, startCol, row, endCol, s)
	return nil
}

// header writes e and its descendants. An entry of level L goes to row
// startRow+(maxLevel-L)-1 and is merged across its width.
func (c *xlsxCanvas) header(e *HeaderEntry, maxLevel, startRow, startCol int, s CellStyler) error {
	row := startRow + (maxLevel - e.Level) - 1
	if err := c.set(row, startCol, e.Name); err != nil {
		return err
	}
	if err := c.merge(row, startCol, row, startCol+e.Width-1); err != nil {
		return err
	}
	c.region(row, startCol, row, startCol+e.Width-1, s)
	return c.headerChildren(e, maxLevel, startRow, startCol, s)
}

// headerChildren writes the entries below e, the first one at startCol.
func (c *xlsxCanvas) headerChildren(e *HeaderEntry, maxLevel, startRow, startCol int, s CellStyler) error {
	col := startCol
	for _, child := range e.Entries {
		if err := c.header(child, maxLevel, startRow, col, s); err != nil {
			return err
		}
		col += child.Width
	}
	return nil
}

// columns writes the columns of df side by side. Each column gets base and
// the first data style whose test matches it.
func (c *xlsxCanvas) columns(df *DataFrame, startRow, startCol int, base CellStyler, dataStyles []DataStyle) error {
	for j := range df.Width() {
		values := df.values(j)
		var typed CellStyler
		for _, ds := range dataStyles {
			if ds.Test != nil && ds.Test.Matches(values) {
				typed = ds.Style
				break
			}
		}
		for i, v := range values {
			if err := c.set(startRow+i, startCol+j, v); err != nil {
				return err
			}
			c.style(startRow+i, startCol+j, base)
			c.style(startRow+i, startCol+j, typed)
		}
	}
	return nil
}

func (c *xlsxCanvas) mergeRowNames(rows *DataFrame, loc Locations, s CellStyler) error {
	for j, runs := range RowNameRuns(rows) {
		col := loc.StartColHeaderLHS + j
		for _, run := range runs {
			if run.Span < 2 {
				continue
			}
			top, bottom := loc.StartRowData+run.Start, loc.StartRowData+run.End()
			if err := c.merge(top, col, bottom, col); err != nil {
				return err
			}
			c.region(top, col, bottom, col, s)
		}
	}
	return nil
}

func (c *xlsxCanvas) cellStyles(data *DataFrame, loc Locations, styles []CellStyle) error {
	names := data.Columns()
	for _, cs := range styles {
		for _, name := range cs.Cols {
			j := slices.Index(names, name)
			if j < 0 {
				return &UnknownColumnError{Column: name, Available: names}
			}
			for _, r := range cs.Rows {
				if r < 1 || r > data.Len() {
					return fmt.Errorf("%w: cell style row %d outside of data rows 1..%d", ErrLayout, r, data.Len())
				}
				c.style(loc.StartRowData+r-1, loc.StartColHeaderRHS+j, cs.Style)
			}
		}
	}
	return nil
}

func (c *xlsxCanvas) merge(top, left, bottom, right int) error {
	if top == bottom && left == right {
		return nil
	}
	from, err := excelize.CoordinatesToCellName(left, top)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(right, bottom)
	if err != nil {
		return err
	}
	return c.f.MergeCell(c.sheet, from, to)
}

// set writes one value, unwrapping nullable SQL types.
func (c *xlsxCanvas) set(row, col int, v any) error {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("%d/%d: %w", col, row, err)
	}
	switch x := plainValue(v).(type) {
	case nil:
		return nil
	case time.Time:
		if x.IsZero() {
			return nil
		}
		err = c.f.SetCellStr(c.sheet, axis, x.Format(dateLayout))
	case float32:
		err = c.f.SetCellFloat(c.sheet, axis, float64(x), -1, 32)
	case float64:
		err = c.f.SetCellFloat(c.sheet, axis, x, -1, 64)
	case decimal.Decimal:
		err = c.f.SetCellFloat(c.sheet, axis, x.InexactFloat64(), -1, 64)
	case string:
		err = c.f.SetCellStr(c.sheet, axis, x)
	case fmt.Stringer:
		err = c.f.SetCellStr(c.sheet, axis, x.String())
	default:
		err = c.f.SetCellValue(c.sheet, axis, x)
	}
	if err != nil {
		return fmt.Errorf("%s[%s]: %w", c.sheet, axis, err)
	}
	return nil
}

// flush creates the workbook styles and assigns them to their cells.
func (c *xlsxCanvas) flush() error {
	for _, ref := range c.order {
		var style excelize.Style
		for _, s := range c.chains[ref] {
			s.Apply(&style)
		}
		key, err := json.Marshal(style)
		if err != nil {
			return err
		}
		id, ok := c.ids[string(key)]
		if !ok {
			if id, err = c.f.NewStyle(&style); err != nil {
				return err
			}
			c.ids[string(key)] = id
		}
		axis, err := excelize.CoordinatesToCellName(ref.col, ref.row)
		if err != nil {
			return err
		}
		if err := c.f.SetCellStyle(c.sheet, axis, axis, id); err != nil {
			return err
		}
	}
	return nil
}
