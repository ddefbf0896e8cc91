// SPDX-License-Identifier: MPL-2.0

//go:build windows

package shellenv

import (
	"errors"
	"fmt"
	"os/exec"
)

// runInteractive falls back to directly attached stdio on Windows, where
// the Unix PTY layer is unavailable.
func runInteractive(cmd *exec.Cmd, opts RunOptions) *Result {
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: exitErr.ExitCode()}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("interactive command failed: %w", err)}
	}
	return &Result{ExitCode: 0}
}
