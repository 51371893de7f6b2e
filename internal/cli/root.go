// SPDX-License-Identifier: MIT

// Package cli implements the qfloat command: convert, apply, compare and
// funcs over measurement literals.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/qfloat/units"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Units   string // optional YAML unit table merged over the builtin one
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the qfloat CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "qfloat",
		Short: "qfloat - measurements with units and uncertainties",
		Long: `Convert, combine and compare measurements that carry a unit and a
one-sigma uncertainty. Values are written NOMINAL[+-SIGMA] [UNIT], e.g.
"60+-0.5 km" or "1,2,3+-0.1 m / s".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Units, "units", "", "extra YAML unit table")

	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewApplyCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewFuncsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// logger returns a text logger on w; --verbose lowers the level to debug.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// system builds the unit system for one command run. Without --units the
// process-wide default is reused.
func (o *RootOptions) system(logger *slog.Logger) (*units.System, error) {
	if o.Units == "" {
		return units.Default(), nil
	}
	logger.Debug("loading unit table", "path", o.Units)
	return units.NewSystem(units.WithLogger(logger), units.WithTableFile(o.Units))
}

// formatter wires the command's writers into an OutputFormatter.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // diagnostics stay off stdout so JSON remains parseable
		Verbose:   o.Verbose,
	}
}
