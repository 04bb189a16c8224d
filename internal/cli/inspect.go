package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjaus/tablespan"
)

func newInspectCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <formula>",
		Short: "Show the header tree and columns of a formula",
		Long: `Inspect parses a formula and prints its annotated header trees and the
data columns each side refers to. The default output is a tree; yaml and
json print the same information as a document.`,
		Example: `  tablespan inspect 'Name:name ~ (Size = Height:h + Weight:w)'
  tablespan inspect --format json '1 ~ a + b'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			formula := args[0]

			tree, err := tablespan.Parse(formula)
			if err != nil {
				return err
			}
			logger.Debug("parsed formula", "tree", tree.String())

			header, err := tablespan.BuildHeader(tree)
			if err != nil {
				return err
			}
			doc := inspection{Formula: formula, Header: header, Variables: header.Variables()}

			out := cmd.OutOrStdout()
			switch format {
			case "", "tree":
				fmt.Fprintln(out, headerTree("rows", header.LHS))
				fmt.Fprintln(out, headerTree("columns", header.RHS))
				return nil
			case "yaml", "json":
				return tablespan.Encode(out, tablespan.Format(format), doc)
			default:
				return fmt.Errorf("%w: %q (want tree, yaml or json)", tablespan.ErrUnsupportedFormat, format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tree", "output format: tree, yaml or json")
	return cmd
}

type inspection struct {
	Formula   string                `json:"formula" yaml:"formula"`
	Header    tablespan.Header      `json:"header" yaml:"header"`
	Variables tablespan.VariableSet `json:"variables" yaml:"variables"`
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(tablespan.Formats())+1)
			for _, f := range tablespan.Formats() {
				names = append(names, f.String())
			}
			names = append(names, "go-template=<template>")
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return err
		},
	}
}
