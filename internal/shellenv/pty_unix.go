// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package shellenv

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/creack/pty"
)

// runInteractive attaches the command to a fresh PTY and proxies stdio.
// Window resizes are forwarded while the command runs.
func runInteractive(cmd *exec.Cmd, opts RunOptions) *Result {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to start pty: %w", err)}
	}
	defer func() { _ = ptmx.Close() }()

	if stdin, ok := opts.Stdin.(*os.File); ok {
		_ = pty.InheritSize(stdin, ptmx)

		winch := make(chan os.Signal, 1)
		signal.Notify(winch, syscall.SIGWINCH)
		defer signal.Stop(winch)
		go func() {
			for range winch {
				_ = pty.InheritSize(stdin, ptmx)
			}
		}()
	}

	if opts.Stdin != nil {
		go func() { _, _ = io.Copy(ptmx, opts.Stdin) }()
	}
	if opts.Stdout != nil {
		// EIO on PTY close is the normal end-of-session signal.
		_, _ = io.Copy(opts.Stdout, ptmx)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: exitErr.ExitCode()}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("interactive command failed: %w", err)}
	}
	return &Result{ExitCode: 0}
}
