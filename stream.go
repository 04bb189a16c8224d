package tablespan

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WriteIter writes several tables to w in format f.
//
// Text formats separate tables with a blank line. The xlsx format stacks
// the tables on one sheet with a blank row between them, starting at the
// cell chosen with [WithStart]. The yaml and json formats write a list of
// layouts.
func WriteIter(w io.Writer, f Format, seq iter.Seq[*Table], opts ...RenderOption) error {
	switch f {
	case Text, Markdown, HTML, CSV, TSV:
		return streamText(w, f, seq, opts)
	case XLSX:
		return streamXLSX(w, seq, newRenderConfig(opts))
	case YAML:
		return streamLayouts(w, seq, newRenderConfig(opts), encodeYAML)
	case JSON:
		return streamLayouts(w, seq, newRenderConfig(opts), encodeJSON)
	case JSONL:
		return streamRows(w, f, seq, opts)
	default:
		if _, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return streamRows(w, f, seq, opts)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// streamRows writes row oriented formats back to back.
func streamRows(w io.Writer, f Format, seq iter.Seq[*Table], opts []RenderOption) error {
	for tbl := range seq {
		if err := Write(w, f, tbl, opts...); err != nil {
			return err
		}
	}
	return nil
}

// WriteChan writes the tables received from ch. It is a thin wrapper
// around [WriteIter].
func WriteChan(w io.Writer, f Format, ch <-chan *Table, opts ...RenderOption) error {
	return WriteIter(w, f, chanToIter(ch), opts...)
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}

func streamText(w io.Writer, f Format, seq iter.Seq[*Table], opts []RenderOption) error {
	first := true
	for tbl := range seq {
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		if err := Write(w, f, tbl, opts...); err != nil {
			return err
		}
	}
	return nil
}

func streamXLSX(w io.Writer, seq iter.Seq[*Table], cfg renderConfig) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", cfg.sheet); err != nil {
		return err
	}
	for tbl := range seq {
		if tbl == nil {
			return ErrNilTable
		}
		if err := renderXLSX(f, tbl, cfg); err != nil {
			return err
		}
		loc, err := tbl.Locations(cfg.startRow, cfg.startCol)
		if err != nil {
			return err
		}
		cfg.startRow = loc.EndRowFootnote + 2
		if tbl.footnote == "" {
			cfg.startRow = loc.EndRowData + 2
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func streamLayouts(w io.Writer, seq iter.Seq[*Table], cfg renderConfig, encode func(io.Writer, any) error) error {
	layouts := []Layout{}
	for tbl := range seq {
		if tbl == nil {
			return ErrNilTable
		}
		layout, err := tbl.Layout(cfg.startRow, cfg.startCol)
		if err != nil {
			return err
		}
		layouts = append(layouts, layout)
	}
	return encode(w, layouts)
}
