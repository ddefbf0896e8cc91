// SPDX-License-Identifier: MPL-2.0

package shellenv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// EnterOptions describes one interactive shell session.
type EnterOptions struct {
	// Shell is the resolved shell to spawn.
	Shell Shell
	// Hook is the rendered entry hook (see BuildHook). May be empty.
	Hook string
	// Env is the fully assembled session environment.
	Env map[string]string
	// WorkDir is the directory the shell starts in.
	WorkDir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Enter spawns an interactive shell with the session environment and the
// entry hook installed. It blocks until the shell exits.
//
// Hook installation is shell-specific: bash gets a temporary rcfile that
// chains the user's own rc, zsh gets a temporary ZDOTDIR doing the same,
// plain sh uses ENV, fish takes the hook as an init command, and
// PowerShell and cmd receive it as their startup command.
func Enter(ctx context.Context, opts EnterOptions) *Result {
	env := make(map[string]string, len(opts.Env))
	for k, v := range opts.Env {
		env[k] = v
	}

	var args []string
	var cleanup func()

	switch opts.Shell.Name() {
	case "bash":
		rcfile, cf, err := writeTempHook("denv-bashrc-*",
			"[ -f ~/.bashrc ] && . ~/.bashrc\n"+opts.Hook)
		if err != nil {
			return &Result{ExitCode: 1, Error: err}
		}
		cleanup = cf
		args = []string{"--rcfile", rcfile}
	case "zsh":
		dir, cf, err := writeTempZDotDir(opts.Hook)
		if err != nil {
			return &Result{ExitCode: 1, Error: err}
		}
		cleanup = cf
		env["ZDOTDIR"] = dir
	case "fish":
		if opts.Hook != "" {
			args = []string{"-C", opts.Hook}
		}
	case "pwsh", "powershell":
		if opts.Hook != "" {
			args = []string{"-NoExit", "-Command", opts.Hook}
		}
	case "cmd":
		if opts.Hook != "" {
			args = []string{"/K", opts.Hook}
		}
	default:
		// Plain POSIX shells read $ENV at interactive startup.
		if opts.Hook != "" {
			rcfile, cf, err := writeTempHook("denv-rc-*", opts.Hook)
			if err != nil {
				return &Result{ExitCode: 1, Error: err}
			}
			cleanup = cf
			env["ENV"] = rcfile
		}
	}
	if cleanup != nil {
		defer cleanup()
	}

	log.Debug("entering shell", "shell", opts.Shell.Path, "flavor", opts.Shell.Flavor)

	cmd := exec.CommandContext(ctx, opts.Shell.Path, args...)
	cmd.Dir = opts.WorkDir
	cmd.Env = EnvToSlice(env)
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{ExitCode: exitErr.ExitCode()}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to start shell: %w", err)}
	}
	return &Result{ExitCode: 0}
}

// writeTempHook writes hook content to a temp file and returns its path
// plus a cleanup func.
func writeTempHook(pattern, content string) (string, func(), error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create hook file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", nil, fmt.Errorf("failed to write hook file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", nil, fmt.Errorf("failed to close hook file: %w", err)
	}
	path := f.Name()
	return path, func() { _ = os.Remove(path) }, nil
}

// writeTempZDotDir creates a throwaway ZDOTDIR whose .zshrc chains the
// user's own zshrc before running the hook.
func writeTempZDotDir(hook string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "denv-zdotdir-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create zsh hook dir: %w", err)
	}
	content := "[ -f \"$HOME/.zshrc\" ] && . \"$HOME/.zshrc\"\n" + hook
	if err := os.WriteFile(filepath.Join(dir, ".zshrc"), []byte(content), 0o644); err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, fmt.Errorf("failed to write zsh hook: %w", err)
	}
	return dir, func() { _ = os.RemoveAll(dir) }, nil
}
