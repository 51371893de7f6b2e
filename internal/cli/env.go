// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/qfloat/units"
)

// runEnv bundles what every command run needs.
type runEnv struct {
	out    *OutputFormatter
	logger *slog.Logger
	sys    *units.System
}

func newEnv(cmd *cobra.Command, opts *RootOptions) (*runEnv, error) {
	out := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	sys, err := opts.system(logger)
	if err != nil {
		msg := "failed to load unit table"
		_ = out.Error(ErrCodeUnits, fmt.Sprintf("%s: %v", msg, err), nil)
		return nil, WrapExitError(ExitCommandError, msg, err)
	}

	return &runEnv{out: out, logger: logger, sys: sys}, nil
}

// usageError marks a command line the user must fix.
func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValue, fmt.Sprintf(format, args...))
}
