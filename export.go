package tablespan

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Layout is the structure of a table without its data: what the yaml and
// json formats export.
type Layout struct {
	Formula   string      `json:"formula" yaml:"formula"`
	Title     string      `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle  string      `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Footnote  string      `json:"footnote,omitempty" yaml:"footnote,omitempty"`
	Header    Header      `json:"header" yaml:"header"`
	Variables VariableSet `json:"variables" yaml:"variables"`
	Rows      int         `json:"rows" yaml:"rows"`
	Locations Locations   `json:"locations" yaml:"locations"`
}

// Layout describes t placed at the given 1-based cell.
func (t *Table) Layout(startRow, startCol int) (Layout, error) {
	loc, err := t.Locations(startRow, startCol)
	if err != nil {
		return Layout{}, err
	}
	return Layout{
		Formula:   t.formula,
		Title:     t.title,
		Subtitle:  t.subtitle,
		Footnote:  t.footnote,
		Header:    t.header,
		Variables: t.vars,
		Rows:      t.Len(),
		Locations: loc,
	}, nil
}

func writeYAML(w io.Writer, t *Table, cfg renderConfig) error {
	layout, err := t.Layout(cfg.startRow, cfg.startCol)
	if err != nil {
		return err
	}
	return Encode(w, YAML, layout)
}

// Encode writes v as an indented yaml or json document, the way the yaml
// and json formats write a [Layout]. Other formats yield
// [ErrUnsupportedFormat].
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case YAML:
		return encodeYAML(w, v)
	case JSON:
		return encodeJSON(w, v)
	default:
		return fmt.Errorf("%w: cannot encode a document as %q", ErrUnsupportedFormat, f)
	}
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeJSON(w io.Writer, t *Table, cfg renderConfig) error {
	layout, err := t.Layout(cfg.startRow, cfg.startCol)
	if err != nil {
		return err
	}
	return Encode(w, JSON, layout)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
