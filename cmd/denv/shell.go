// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"denv-cli/internal/shellenv"

	"github.com/spf13/cobra"
)

var (
	shellShellOverride string
	shellPure          bool

	// shellCmd enters the interactive development shell.
	shellCmd = &cobra.Command{
		Use:   "shell",
		Short: "Enter the development shell",
		Long: `Enter an interactive shell with the denvfile's packages on PATH.

The shell is your own ($SHELL by default) with the environment assembled
from the denvfile: resolved packages first on PATH, declared env vars and
env files applied, and the project virtualenv activated when its
directory exists. Exit the shell to leave the environment; nothing
persists outside the session.`,
		RunE: runShell,
	}
)

func init() {
	shellCmd.Flags().StringVar(&shellShellOverride, "shell", "", "shell binary to spawn (default: autodetect)")
	shellCmd.Flags().BoolVar(&shellPure, "pure", false, "drop the host environment except for a small allowlist")
}

func runShell(cmd *cobra.Command, args []string) error {
	s, err := buildSession(cmd.Context(), sessionOptions{shellOverride: shellShellOverride, pure: shellPure})
	if err != nil {
		return reportError(err)
	}

	hook, err := s.hook()
	if err != nil {
		return reportError(err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "%s %s\n",
			SuccessStyle.Render("✓"),
			VerboseStyle.Render(fmt.Sprintf("entering %s with %d packages from %s",
				s.shell.Name(), len(s.resolved), s.snapshot.Name)))
	}

	result := shellenv.Enter(cmd.Context(), shellenv.EnterOptions{
		Shell:   s.shell,
		Hook:    hook,
		Env:     s.env,
		WorkDir: s.projectDir,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.ExitCode != 0 {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}
