// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Decompose bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <value> [unit]",
		Short: "Express a value in another unit",
		Long: `Convert a measurement to a compatible unit. Nominal values and
uncertainties scale by the same factor.

With --decompose the target is the SI base expression of the value's
dimension and no unit argument is taken.`,
		Example: `  qfloat convert "60+-0.5 km / h" "m / s"
  qfloat convert --decompose "2+-0.1 N"`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Decompose, "decompose", false, "convert to SI base units")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *ConvertOptions, args []string) error {
	env, err := newEnv(cmd, opts.RootOptions)
	if err != nil {
		return err
	}

	if opts.Decompose == (len(args) == 2) {
		return env.out.Fail("convert", usageError("convert needs either a target unit or --decompose"))
	}

	q, err := ParseValue(env.sys, args[0])
	if err != nil {
		return env.out.Fail("invalid value", err)
	}

	if opts.Decompose {
		env.logger.Debug("decomposing", "value", q.String())
		q, err = q.Decompose()
	} else {
		env.logger.Debug("converting", "value", q.String(), "target", args[1])
		q, err = q.To(args[1])
	}
	if err != nil {
		return env.out.Fail("conversion failed", err)
	}

	return env.out.Success(newValue(q))
}
