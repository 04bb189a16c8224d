// Package tablespan renders tabular data with hierarchical row and column
// headers described by a formula.
//
// A formula names the row name columns on the left of "~" and the data
// columns on the right. Columns are joined with "+", a column may be
// renamed with "display:column", and a parenthesized group "(name = ...)"
// becomes a spanner: a header label spanning the columns inside it.
// Backticks quote names that are not identifiers. The literal 1 on the
// left means the table has no row names.
//
//	Species:species ~ (Sepal = Length:sepal_length + Width:sepal_width) + `Petal length`
//	1 ~ (`Results 2024` = (Q1 = a + b) + (Q2 = c + d))
//
// # Pipeline
//
// [Parse] turns a formula into a [ParseTree]. [Build] turns each side into
// a [HeaderEntry] tree under a synthetic [BaseLevel] root, and [Annotate]
// returns a copy carrying the width (leaf count) and level (distance to
// the deepest leaf) of every entry. [ParseHeader] runs all three.
// [Variables] lists the data columns a tree refers to, and
// [ComputeLocations] places every region of the table (title, subtitle,
// header, row names, data, footnote) on a 1-based grid.
//
// [New] does all of the above for a [Frame]:
//
//	tbl, err := tablespan.New(df, formula, tablespan.WithTitle("Iris"))
//	if err != nil {
//		return err
//	}
//	tablespan.Write(os.Stdout, tablespan.Text, tbl)
//
// # Formats
//
//   - [Text]: bordered table, see [WithBorder] and [WithDecimals]
//   - [Markdown]: GitHub table, spanner names joined into the leaf header
//   - [HTML]: table with colspan headers and rowspan row names
//   - [CSV], [TSV]: one record per header row, then the data
//   - [XLSX]: workbook with merged headers, styled with [XLSXStyles]
//   - [YAML], [JSON]: the [Layout] of the table, without its data
//   - [JSONL]: one object per data row
//   - [GoTemplate]: a text/template executed per data row
//
// [WriteIter] writes several tables into one output; for xlsx they are
// stacked on one sheet. [RenderXLSX] renders into an existing workbook.
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrSyntax]: the formula does not match the grammar ([*ParseError])
//   - [ErrSpanner], [ErrVariable]: the formula parses but cannot form a header ([*TreeError])
//   - [ErrUnknownColumn]: the formula names a missing column ([*UnknownColumnError])
//   - [ErrInconsistent]: a header tree could not be annotated
//   - [ErrLayout]: invalid layout input or cell style
//   - [ErrShape]: columns of different lengths
//   - [ErrUnsupportedFormat]: unknown format string
//   - [ErrInvalidTemplate]: invalid go-template syntax
package tablespan
