// SPDX-License-Identifier: MIT

package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/qfloat/qfloat"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Kwargs []string
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "apply <func> <value>...",
		Short: "Apply an elementwise or array function",
		Long: `Apply a supported function by name. Elementwise functions (sin, sqrt,
add, ...) propagate uncertainties to first order; array functions (reshape,
sum, concatenate, ...) rearrange or reduce values. Run "qfloat funcs" for the
full list.

Keyword arguments are passed as --kw key=value. Values are read as
"none", integers, comma-separated integer lists, floats or strings.`,
		Example: `  qfloat apply sin "30+-0.5 deg"
  qfloat apply add "1+-0.1 km" "300+-5 m"
  qfloat apply reshape --kw shape=2,2 "1,2,3,4+-0.1 s"
  qfloat apply sum --kw axis=none "1,2,3+-0.1 m"`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, opts, args)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Kwargs, "kw", nil, "keyword argument key=value (repeatable)")

	return cmd
}

func runApply(cmd *cobra.Command, opts *ApplyOptions, args []string) error {
	env, err := newEnv(cmd, opts.RootOptions)
	if err != nil {
		return err
	}

	kw, err := ParseKwargs(opts.Kwargs)
	if err != nil {
		return env.out.Fail("invalid keyword", err)
	}

	name := args[0]
	operands := make([]any, 0, len(args)-1)
	for _, a := range args[1:] {
		q, err := ParseValue(env.sys, a)
		if err != nil {
			return env.out.Fail("invalid value", err)
		}
		operands = append(operands, q)
	}

	var res qfloat.QFloat
	if h, ok := qfloat.Lookup(name); ok {
		env.logger.Debug("calling elementwise function", "handler", h.String(), "operands", len(operands))
		res, err = qfloat.CallUfunc(name, kw, operands...)
	} else {
		env.logger.Debug("calling array function", "name", name, "operands", len(operands))
		res, err = qfloat.CallArrayFunc(name, kw, operands...)
	}
	if err != nil {
		return env.out.Fail(name+" failed", err)
	}

	return env.out.Success(newValue(res))
}

// ParseKwargs turns key=value pairs into keyword arguments. Values are read
// in order as none, int, comma-separated ints, float and finally string.
func ParseKwargs(pairs []string) (qfloat.Kwargs, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	kw := make(qfloat.Kwargs, len(pairs))
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, usageError("keyword %q is not key=value", p)
		}
		if _, dup := kw[key]; dup {
			return nil, usageError("keyword %q given twice", key)
		}
		kw[key] = kwValue(strings.TrimSpace(val))
	}

	return kw, nil
}

func kwValue(s string) any {
	if strings.EqualFold(s, "none") {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if strings.Contains(s, ",") {
		if ints, ok := intList(s); ok {
			return ints
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func intList(s string) ([]int, bool) {
	fields := strings.Split(s, ",")
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}
