package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/tablespan"
)

// Config describes one table. It is read from a YAML or TOML file and
// overridden by command line flags.
type Config struct {
	Formula  string `yaml:"formula" toml:"formula"`
	Title    string `yaml:"title" toml:"title"`
	Subtitle string `yaml:"subtitle" toml:"subtitle"`
	Footnote string `yaml:"footnote" toml:"footnote"`
	Format   string `yaml:"format" toml:"format"`
	StartRow int    `yaml:"start_row" toml:"start_row"`
	StartCol int    `yaml:"start_col" toml:"start_col"`
	Sheet    string `yaml:"sheet" toml:"sheet"`
	Border   string `yaml:"border" toml:"border"`
	Decimals *int   `yaml:"decimals" toml:"decimals"`
	Merge    *bool  `yaml:"merge_row_names" toml:"merge_row_names"`
	Charset  string `yaml:"charset" toml:"charset"`
	MaxRows  int    `yaml:"max_rows" toml:"max_rows"`
}

// loadConfig reads path, choosing the decoder by extension: .toml for
// TOML, anything else for YAML.
func loadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(b, &cfg)
	default:
		err = yaml.Unmarshal(b, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// merge returns c with every non-zero field of o taking precedence.
func (c Config) merge(o Config) Config {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&c.Formula, o.Formula)
	set(&c.Title, o.Title)
	set(&c.Subtitle, o.Subtitle)
	set(&c.Footnote, o.Footnote)
	set(&c.Format, o.Format)
	set(&c.Sheet, o.Sheet)
	set(&c.Border, o.Border)
	set(&c.Charset, o.Charset)
	if o.StartRow != 0 {
		c.StartRow = o.StartRow
	}
	if o.StartCol != 0 {
		c.StartCol = o.StartCol
	}
	if o.MaxRows != 0 {
		c.MaxRows = o.MaxRows
	}
	if o.Decimals != nil {
		c.Decimals = o.Decimals
	}
	if o.Merge != nil {
		c.Merge = o.Merge
	}
	return c
}

// tableOptions returns the options of tablespan.New.
func (c Config) tableOptions() []tablespan.TableOption {
	return []tablespan.TableOption{
		tablespan.WithTitle(c.Title),
		tablespan.WithSubtitle(c.Subtitle),
		tablespan.WithFootnote(c.Footnote),
	}
}

// format returns the output format, text if none is set.
func (c Config) format() (tablespan.Format, error) {
	if c.Format == "" {
		return tablespan.Text, nil
	}
	return tablespan.ParseFormat(c.Format)
}

// renderOptions validates the render settings and returns them as
// tablespan options.
func (c Config) renderOptions() ([]tablespan.RenderOption, error) {
	var opts []tablespan.RenderOption
	if c.Border != "" {
		b, err := tablespan.ParseBorder(c.Border)
		if err != nil {
			return nil, err
		}
		opts = append(opts, tablespan.WithBorder(b))
	}
	if c.StartRow != 0 || c.StartCol != 0 {
		row, col := max(c.StartRow, 1), max(c.StartCol, 1)
		if c.StartRow < 0 || c.StartCol < 0 {
			return nil, fmt.Errorf("start cell (%d, %d) must be positive", c.StartRow, c.StartCol)
		}
		opts = append(opts, tablespan.WithStart(row, col))
	}
	if c.Sheet != "" {
		opts = append(opts, tablespan.WithSheet(c.Sheet))
	}
	if c.Decimals != nil {
		opts = append(opts, tablespan.WithDecimals(*c.Decimals))
	}
	if c.Merge != nil {
		opts = append(opts, tablespan.WithMergeRowNames(*c.Merge))
	}
	if c.MaxRows < 0 {
		return nil, fmt.Errorf("max rows %d must not be negative", c.MaxRows)
	}
	if c.MaxRows > 0 {
		opts = append(opts, tablespan.WithMaxRows(c.MaxRows))
	}
	return opts, nil
}
