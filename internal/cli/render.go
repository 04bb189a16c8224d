package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablespan"
)

type renderOpts struct {
	config   string
	output   string
	exact    bool
	decimals int
	noMerge  bool
	flags    Config
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [data.csv]",
		Short: "Render CSV data as a table with spanners",
		Long: `Render reads CSV data (from a file, or stdin when the file is "-" or
missing), applies the formula and writes the table in the chosen format.

Settings may come from a YAML or TOML file given with --config; flags
override the file.`,
		Example: `  tablespan render -F 'Name:name ~ (Size = Height:h + Weight:w)' people.csv
  tablespan render -c table.yaml -f xlsx -o table.xlsx people.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("decimals") {
				opts.flags.Decimals = &opts.decimals
			}
			if opts.noMerge {
				merge := false
				opts.flags.Merge = &merge
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runRender(cmd, input, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.config, "config", "c", "", "table settings file (.yaml or .toml)")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	f.StringVarP(&opts.flags.Formula, "formula", "F", "", "table formula, e.g. 'a ~ (S = b + c)'")
	f.StringVar(&opts.flags.Title, "title", "", "table title")
	f.StringVar(&opts.flags.Subtitle, "subtitle", "", "table subtitle")
	f.StringVar(&opts.flags.Footnote, "footnote", "", "table footnote")
	f.StringVarP(&opts.flags.Format, "format", "f", "", "output format (see 'tablespan formats', default text)")
	f.IntVar(&opts.flags.StartRow, "start-row", 0, "first row of the xlsx table (default 1)")
	f.IntVar(&opts.flags.StartCol, "start-col", 0, "first column of the xlsx table (default 1)")
	f.StringVar(&opts.flags.Sheet, "sheet", "", "xlsx sheet name (default Table)")
	f.StringVar(&opts.flags.Border, "border", "", "text border: rounded, ascii, heavy, double or none")
	f.IntVar(&opts.decimals, "decimals", -1, "decimals of floating point cells")
	f.IntVar(&opts.flags.MaxRows, "max-rows", 0, "text format: print at most this many data rows")
	f.BoolVar(&opts.noMerge, "no-merge", false, "do not merge identical adjacent row names")
	f.StringVar(&opts.flags.Charset, "charset", "", "input character set (default utf-8)")
	f.BoolVar(&opts.exact, "exact", false, "read non-integer numbers as exact decimals")

	return cmd
}

func runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	logger := loggerFromContext(cmd.Context())
	st := startStages(logger)

	var cfg Config
	if opts.config != "" {
		var err error
		if cfg, err = loadConfig(opts.config); err != nil {
			return err
		}
		st.step("loaded config", "path", opts.config)
	}
	cfg = cfg.merge(opts.flags)
	if cfg.Formula == "" {
		return errors.New("no formula: use --formula or a config file")
	}

	format, err := cfg.format()
	if err != nil {
		return err
	}
	renderOptions, err := cfg.renderOptions()
	if err != nil {
		return err
	}

	df, err := readInput(cmd, input, cfg.Charset, opts.exact)
	if err != nil {
		return err
	}
	st.step("read data", "rows", df.Len(), "columns", df.Width())

	tbl, err := tablespan.New(df, cfg.Formula, cfg.tableOptions()...)
	if err != nil {
		return err
	}
	vars := tbl.Variables()
	st.step("built table", "row_names", vars.LHS, "columns", vars.RHS)

	var w io.Writer = cmd.OutOrStdout()
	var fh *os.File
	if opts.output != "" && opts.output != "-" {
		if fh, err = os.Create(opts.output); err != nil {
			return err
		}
		defer fh.Close()
		w = fh
	} else if format.Binary() {
		logger.Warn("writing binary output to stdout", "format", format)
	}

	if err := tablespan.Write(w, format, tbl, renderOptions...); err != nil {
		return err
	}
	if fh != nil {
		if err := fh.Close(); err != nil {
			return err
		}
	}
	st.finish(fmt.Sprintf("Rendered %d rows as %s", tbl.Len(), format), "output", outputName(opts.output))
	return nil
}

func readInput(cmd *cobra.Command, input, charset string, exact bool) (*tablespan.DataFrame, error) {
	if input == "" || input == "-" {
		return readCSV(cmd.InOrStdin(), charset, exact)
	}
	fh, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	df, err := readCSV(fh, charset, exact)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	return df, nil
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
