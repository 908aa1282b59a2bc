// Package cli implements the cobra command tree for survivorpie.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/survivorpie/internal/config"
	"github.com/hupe1980/survivorpie/internal/logging"
)

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// usageError marks err as a usage or configuration problem (exit code 2).
func usageError(err error) error {
	return &ExitError{Code: 2, Err: err}
}

// runtimeError marks err as a runtime failure (exit code 1).
func runtimeError(err error) error {
	return &ExitError{Code: 1, Err: err}
}

// Execute builds the command tree, runs it, and returns the exit code.
func Execute() int {
	return execute(NewRootCommand(), os.Stderr)
}

func execute(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return 1
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "survivorpie",
		Short: "Explore Titanic passenger survival by filter",
		Long: `survivorpie computes the Survived/Died split of Titanic passengers
for a selection of sex, age range, port of embarkation and passenger class.

It reads the Kaggle "train.csv" dataset (or any CSV with the Sex, Age,
Embarked, Pclass and Survived columns), applies the selection and reports
the result as a table, a structured document, a pie chart image, or an
interactive terminal explorer.

Within a field, selected ports and age ranges are OR-ed; across fields,
filters are AND-ed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return usageError(err)
			}

			logger := logging.Setup(cfg)

			ctx := cmd.Context()
			ctx = config.NewContext(ctx, cfg)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("logLevel", cfg.LogLevel),
				slog.String("logFormat", cfg.LogFormat),
				slog.Any("data", cfg.DataPaths()),
				slog.String("configFile", cfg.ConfigFile),
			)

			return nil
		},
	}

	// Global persistent flags.
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .survivorpie.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")
	pf.StringSliceP("data", "d", []string{config.DefaultDataPath}, "dataset CSV files, concatenated in order")

	// Flag parsing errors return exit code 2.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.AddCommand(
		newAggregateCommand(),
		newRangesCommand(),
		newRenderCommand(),
		newCompareCommand(),
		newWatchCommand(),
		newExploreCommand(),
		newPresetsCommand(),
		newVersionCommand(),
		newCompletionCommand(),
	)

	return cmd
}
