// SPDX-License-Identifier: MPL-2.0

package shellenv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

type (
	// Result is the outcome of a shell or command execution.
	Result struct {
		// ExitCode is the process or script exit code.
		ExitCode int
		// Error is set for failures that are not plain non-zero exits.
		Error error
	}

	// RunOptions describes one command execution inside the assembled
	// environment.
	RunOptions struct {
		// Command is the shell command line to run.
		Command string
		// Env is the fully assembled session environment.
		Env map[string]string
		// WorkDir is the working directory.
		WorkDir string
		// Interactive attaches the command to a PTY (native runner only).
		Interactive bool

		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// NativeRunner executes commands through the resolved host shell.
	NativeRunner struct {
		Shell Shell
	}

	// VirtualRunner executes commands with the built-in POSIX interpreter,
	// independent of any host shell. It only understands POSIX syntax.
	VirtualRunner struct{}
)

// NewNativeRunner creates a runner backed by the given shell.
func NewNativeRunner(shell Shell) *NativeRunner {
	return &NativeRunner{Shell: shell}
}

// NewVirtualRunner creates the built-in interpreter runner.
func NewVirtualRunner() *VirtualRunner {
	return &VirtualRunner{}
}

// QuoteCommand renders argv as one command line for the given shell
// flavor, quoting each word so whitespace and metacharacters survive the
// shell's re-parsing. Windows shells re-parse with their own rules and
// keep the words verbatim.
func QuoteCommand(argv []string, flavor Flavor) (string, error) {
	switch flavor {
	case FlavorPowerShell, FlavorCmd:
		return strings.Join(argv, " "), nil
	}

	quoted := make([]string, 0, len(argv))
	for _, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("failed to quote argument %q: %w", arg, err)
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " "), nil
}

// Run executes the command through the host shell.
func (r *NativeRunner) Run(ctx context.Context, opts RunOptions) *Result {
	args := r.Shell.commandArgs(opts.Command)

	cmd := exec.CommandContext(ctx, r.Shell.Path, args...)
	cmd.Dir = opts.WorkDir
	cmd.Env = EnvToSlice(opts.Env)

	if opts.Interactive {
		return runInteractive(cmd, opts)
	}

	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: exitErr.ExitCode()}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to execute command: %w", err)}
	}
	return &Result{ExitCode: 0}
}

// Run executes the command with the built-in interpreter.
func (r *VirtualRunner) Run(ctx context.Context, opts RunOptions) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(opts.Command), "command")
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to parse command: %w", err)}
	}

	runner, err := interp.New(
		interp.Dir(opts.WorkDir),
		interp.Env(expand.ListEnviron(EnvToSlice(opts.Env)...)),
		interp.StdIO(opts.Stdin, opts.Stdout, opts.Stderr),
	)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &Result{ExitCode: int(exitStatus)}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("command execution failed: %w", err)}
	}
	return &Result{ExitCode: 0}
}
