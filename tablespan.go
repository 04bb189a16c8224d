package tablespan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"
)

// Sentinel errors for programmatic error handling.
var (
	ErrSyntax            = errors.New("formula syntax error")
	ErrSpanner           = errors.New("invalid spanner")
	ErrVariable          = errors.New("invalid variable")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrInconsistent      = errors.New("inconsistent header tree")
	ErrLayout            = errors.New("invalid layout")
	ErrShape             = errors.New("invalid data shape")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrNilTable          = errors.New("nil table")
	ErrInvalidTemplate   = errors.New("invalid template")
)

// Format represents an output format.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	HTML     Format = "html"
	CSV      Format = "csv"
	TSV      Format = "tsv"
	XLSX     Format = "xlsx"
	YAML     Format = "yaml"
	JSON     Format = "json"
	JSONL    Format = "jsonl"
)

var formats = []Format{Text, Markdown, HTML, CSV, TSV, XLSX, YAML, JSON, JSONL}

const goTemplatePrefix = "go-template="

// GoTemplate returns a format that executes tmpl once per data row. The
// template sees the row as a map from column name to value.
func GoTemplate(tmpl string) Format {
	return Format(goTemplatePrefix + tmpl)
}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Binary reports whether the format produces non-text output.
func (f Format) Binary() bool { return f == XLSX }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format string. Besides the names returned by
// [Formats] it accepts "go-template=<tmpl>".
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	if tmpl, ok := strings.CutPrefix(s, goTemplatePrefix); ok {
		if _, err := template.New("").Parse(tmpl); err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidTemplate, err)
		}
		return GoTemplate(tmpl), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// BorderStyle controls text table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated blocks
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

var borderNames = map[string]BorderStyle{
	"rounded": BorderRounded,
	"none":    BorderNone,
	"ascii":   BorderASCII,
	"heavy":   BorderHeavy,
	"double":  BorderDouble,
}

// ParseBorder parses a border style name (rounded, none, ascii, heavy,
// double).
func ParseBorder(s string) (BorderStyle, error) {
	b, ok := borderNames[s]
	if !ok {
		return 0, fmt.Errorf("unknown border style %q", s)
	}
	return b, nil
}

// Alignment controls cell text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

type renderConfig struct {
	border        BorderStyle
	startRow      int
	startCol      int
	sheet         string
	styles        *XLSXStyles
	decimals      int
	mergeRowNames bool
	maxRows       int
}

func newRenderConfig(opts []RenderOption) renderConfig {
	cfg := renderConfig{
		border:        BorderRounded,
		startRow:      1,
		startCol:      1,
		sheet:         "Table",
		decimals:      -1,
		mergeRowNames: true,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.styles == nil {
		cfg.styles = DefaultXLSXStyles()
	}
	return cfg
}

// RenderOption configures a single call to [Write] or [Marshal].
type RenderOption func(*renderConfig)

// WithBorder sets the border style of the text format.
// Default: BorderRounded.
func WithBorder(b BorderStyle) RenderOption {
	return func(c *renderConfig) { c.border = b }
}

// WithStart sets the 1-based cell at which the xlsx table starts.
// Default: row 1, column 1.
func WithStart(row, col int) RenderOption {
	return func(c *renderConfig) { c.startRow, c.startCol = row, col }
}

// WithSheet sets the xlsx sheet name. Default: "Table".
func WithSheet(name string) RenderOption {
	return func(c *renderConfig) { c.sheet = name }
}

// WithXLSXStyles replaces the xlsx styles. Default: [DefaultXLSXStyles].
func WithXLSXStyles(s *XLSXStyles) RenderOption {
	return func(c *renderConfig) { c.styles = s }
}

// WithDecimals rounds floating point cells of the text formats to n
// decimals. A negative n keeps the shortest representation (the default).
func WithDecimals(n int) RenderOption {
	return func(c *renderConfig) { c.decimals = n }
}

// WithMergeRowNames controls whether adjacent identical row names are
// merged in the html and xlsx formats. Default: true.
func WithMergeRowNames(merge bool) RenderOption {
	return func(c *renderConfig) { c.mergeRowNames = merge }
}

// WithMaxRows limits the text format to the first n data rows. A row of
// "..." marks the rows left out. Zero or less prints every row (the
// default).
func WithMaxRows(n int) RenderOption {
	return func(c *renderConfig) { c.maxRows = n }
}

// Write renders tbl in format f and writes it to w.
func Write(w io.Writer, f Format, tbl *Table, opts ...RenderOption) error {
	if tbl == nil {
		return ErrNilTable
	}
	cfg := newRenderConfig(opts)
	switch f {
	case Text:
		return writeText(w, tbl, cfg)
	case Markdown:
		return writeMarkdown(w, tbl, cfg)
	case HTML:
		return writeHTML(w, tbl, cfg)
	case CSV:
		return writeCSV(w, tbl, cfg, ',')
	case TSV:
		return writeCSV(w, tbl, cfg, '\t')
	case XLSX:
		return writeXLSX(w, tbl, cfg)
	case YAML:
		return writeYAML(w, tbl, cfg)
	case JSON:
		return writeJSON(w, tbl, cfg)
	case JSONL:
		return writeJSONL(w, tbl)
	default:
		if tmpl, ok := strings.CutPrefix(string(f), goTemplatePrefix); ok {
			return writeGoTemplate(w, tmpl, tbl)
		}
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Marshal renders tbl in format f and returns the bytes.
func Marshal(f Format, tbl *Table, opts ...RenderOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, tbl, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
