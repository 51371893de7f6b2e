// SPDX-License-Identifier: MIT

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/qfloat/qfloat"
)

// FuncInfo describes one elementwise function.
type FuncInfo struct {
	Name   string `json:"name"`
	Arity  int    `json:"arity"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// FuncList is the result of the funcs command.
type FuncList struct {
	Ufuncs     []FuncInfo `json:"ufuncs,omitempty"`
	ArrayFuncs []string   `json:"array_funcs,omitempty"`

	lines []string
}

func (l FuncList) String() string { return strings.Join(l.lines, "\n") }

// NewFuncsCommand creates the funcs command.
func NewFuncsCommand(rootOpts *RootOptions) *cobra.Command {
	var arrays bool

	cmd := &cobra.Command{
		Use:   "funcs",
		Short: "List supported functions",
		Long: `List the elementwise functions with their unit contract
(name/arity input -> output), or with --arrays the supported array
functions.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := rootOpts.formatter(cmd)
			if arrays {
				names := qfloat.ArrayFuncs()
				return out.Success(FuncList{ArrayFuncs: names, lines: names})
			}

			hs := qfloat.Funcs()
			list := FuncList{Ufuncs: make([]FuncInfo, len(hs)), lines: make([]string, len(hs))}
			for i, h := range hs {
				line := h.String()
				_, rule, _ := strings.Cut(line, " -> ") // carries the exponent of power rules
				list.Ufuncs[i] = FuncInfo{Name: h.Name, Arity: h.Arity, Input: h.Input.String(), Output: rule}
				list.lines[i] = line
			}
			return out.Success(list)
		},
	}

	cmd.Flags().BoolVar(&arrays, "arrays", false, "list array functions instead")

	return cmd
}
