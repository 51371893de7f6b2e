// SPDX-License-Identifier: MIT

// Command qfloat converts, combines and compares measurements that carry a
// unit and an uncertainty.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/katalvlaran/qfloat/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	// ExitErrors were already reported by the command's formatter.
	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
