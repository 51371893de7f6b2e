// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/qfloat/qfloat"
)

// Comparison is the result of the compare command.
type Comparison struct {
	A                 string `json:"a"`
	B                 string `json:"b"`
	Equal             bool   `json:"equal"`
	EqualWithinErrors bool   `json:"equal_within_errors"`
	Less              []bool `json:"less"`
	Greater           []bool `json:"greater"`
}

func (c Comparison) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "a:                   %s\n", c.A)
	fmt.Fprintf(&sb, "b:                   %s\n", c.B)
	fmt.Fprintf(&sb, "equal:               %t\n", c.Equal)
	fmt.Fprintf(&sb, "equal within errors: %t\n", c.EqualWithinErrors)
	fmt.Fprintf(&sb, "less:                %v\n", c.Less)
	fmt.Fprintf(&sb, "greater:             %v", c.Greater)
	return sb.String()
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two values unit-aware",
		Long: `Compare two measurements after converting b to a's unit. Reports exact
equality of nominals and uncertainties, whether |a - b| <= σa + σb holds
everywhere, and elementwise orderings of the nominal values.`,
		Example:       `  qfloat compare "1+-0.1 km" "1050+-20 m"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, rootOpts, args)
		},
	}
}

func runCompare(cmd *cobra.Command, opts *RootOptions, args []string) error {
	env, err := newEnv(cmd, opts)
	if err != nil {
		return err
	}

	vals := make([]qfloat.QFloat, 2)
	for i, a := range args {
		if vals[i], err = ParseValue(env.sys, a); err != nil {
			return env.out.Fail("invalid value", err)
		}
	}
	a, b := vals[0], vals[1]

	within, err := qfloat.EqualWithinErrors(a, b)
	if err != nil {
		return env.out.Fail("comparison failed", err)
	}
	less, err := qfloat.Less(a, b)
	if err != nil {
		return env.out.Fail("comparison failed", err)
	}
	greater, err := qfloat.Greater(a, b)
	if err != nil {
		return env.out.Fail("comparison failed", err)
	}

	return env.out.Success(Comparison{
		A:                 a.String(),
		B:                 b.String(),
		Equal:             qfloat.Equal(a, b),
		EqualWithinErrors: within,
		Less:              less.Values(),
		Greater:           greater.Values(),
	})
}
