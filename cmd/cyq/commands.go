package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seuros/cypherkit/src/cypher"
	"github.com/seuros/cypherkit/src/logging"
	"github.com/seuros/cypherkit/src/lsp"
	"github.com/seuros/cypherkit/src/proptypes"
)

// readSource reads a file, or stdin for "-".
func readSource(cmd *cobra.Command, path string) (name, content string, err error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return "<stdin>", string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return path, string(b), nil
}

func newFmtCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file|->",
		Short: "Print a statement in canonical form",
		Args:  exactArgs(1, "cyq fmt <file|->"),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, content, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := a.compile(content)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Text)
			return err
		},
	}
}

func newLintCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file|->",
		Short: "Validate a statement",
		Args:  exactArgs(1, "cyq lint <file|->"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, content, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			if _, err := a.compile(content); err != nil {
				return usageErrorf(1, "Syntax error in %s: %v", name, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", name)
			return err
		},
	}
}

func newInspectCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect <file|->",
		Short: "Show the compiled statement and its variable table",
		Args:  exactArgs(1, "cyq inspect <file|->"),
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "table" && format != "json" {
				return usageErrorf(2, "Unknown --format %q (expected table|json)", format)
			}
			name, content, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := a.compile(content)
			if err != nil {
				return err
			}
			report := newInspectReport(name, res)
			if format == "json" {
				return writeInspectJSON(cmd.OutOrStdout(), report)
			}
			return writeInspectTable(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format (table|json)")
	return cmd
}

func newLiteralCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "literal <json>",
		Short: "Render a JSON value as a Cypher literal",
		Args:  exactArgs(1, "cyq literal <json>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decodeJSONValue(args[0])
			if err != nil {
				return err
			}
			expr, err := cypher.Literal(value)
			if err != nil {
				return err
			}
			text, err := cypher.Render(expr)
			if err != nil {
				return err
			}
			logging.ForCategory(a.config.Logging.Logger, logging.CategoryCLI).Debug("rendered literal", "input", args[0], "type", fmt.Sprintf("%T", value))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func newLSPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server on stdin and stdout",
		Args:  exactArgs(0, "cyq lsp"),
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := lsp.NewServer(
				lsp.WithParser(a.parser),
				lsp.WithLogger(a.config.Logging.Logger),
				lsp.WithCompileOptions(cypher.WithConfig(a.config)),
			)
			if err != nil {
				return err
			}
			return server.Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the built-in Go type to prop type mappings",
		Args:  exactArgs(0, "cyq types"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeTypes(cmd.OutOrStdout(), proptypes.Default().Types())
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  exactArgs(0, "cyq version"),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "cyq version %s\n", cypher.Version())
			return err
		},
	}
}
