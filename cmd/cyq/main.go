package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/seuros/cypherkit/src/cypher"
	"github.com/seuros/cypherkit/src/logging"
	"github.com/seuros/cypherkit/src/parser"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if shutdownErr := a.close(context.Background()); shutdownErr != nil {
		fmt.Fprintf(stderr, "telemetry shutdown: %v\n", shutdownErr)
	}
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		if exitErr.Error() != "" {
			fmt.Fprintln(stderr, exitErr.Error())
		}
		return exitErr.code
	}
	fmt.Fprintln(stderr, err)
	return 1
}

// app holds global flags and the state built from them before each command.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	trace      bool

	config    *cypher.Config
	parser    *parser.Parser
	telemetry *telemetry
}

func newRootCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cyq",
		Short: "cyq - Cypher query tool",
		Long: `Parse, validate and format MATCH ... RETURN Cypher statements.

Statements are parsed into the cypherkit AST and compiled back to
canonical Cypher text.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf(2, "%v", err)
	})

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "off", "log level (debug|info|warn|error|off)")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", logging.FormatConsole, "log format (console|json|logrus)")
	cmd.PersistentFlags().BoolVar(&a.trace, "trace", false, "export compile spans and metrics to stderr")

	cmd.AddCommand(newFmtCommand(a))
	cmd.AddCommand(newLintCommand(a))
	cmd.AddCommand(newInspectCommand(a))
	cmd.AddCommand(newLiteralCommand(a))
	cmd.AddCommand(newLSPCommand(a))
	cmd.AddCommand(newTypesCommand())
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// setup builds the configuration. Flags override the config file.
func (a *app) setup(cmd *cobra.Command) error {
	stderr := cmd.ErrOrStderr()

	cfg := cypher.DefaultConfig()
	if a.configPath != "" {
		loaded, err := cypher.LoadConfigFile(a.configPath, stderr)
		if err != nil {
			return usageErrorf(2, "%v", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") || flags.Changed("log-format") {
		level, format := cfg.Logging.Level, cfg.Logging.Format
		if flags.Changed("log-level") {
			level = logging.ParseLogLevel(a.logLevel)
		}
		if flags.Changed("log-format") {
			format = a.logFormat
		}
		lc, err := logging.NewConfig(format, level, stderr)
		if err != nil {
			return usageErrorf(2, "%v", err)
		}
		cfg.Logging = lc
	}

	if a.trace {
		t, err := setupTelemetry(stderr)
		if err != nil {
			return err
		}
		a.telemetry = t
		cfg.Observability.EnableTracing = true
		cfg.Observability.EnableMetrics = true
	}

	p, err := parser.New(parser.WithLogger(cfg.Logging.Logger))
	if err != nil {
		return err
	}
	a.config = cfg
	a.parser = p
	logging.ForCategory(cfg.Logging.Logger, logging.CategoryCLI).Debug("command started", "command", cmd.Name())
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.telemetry == nil {
		return nil
	}
	return a.telemetry.Shutdown(ctx)
}

// compile parses and compiles one statement with the CLI configuration.
func (a *app) compile(input string) (*cypher.Result, error) {
	q, err := a.parser.Parse(input)
	if err != nil {
		return nil, err
	}
	return cypher.Compile(q, cypher.WithConfig(a.config))
}
