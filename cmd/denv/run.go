// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"

	"denv-cli/internal/shellenv"

	"github.com/spf13/cobra"
)

var (
	runShellOverride string
	runInteractive   bool
	runVirtual       bool

	// runCmd executes one command inside the assembled environment.
	runCmd = &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Run a command inside the development shell environment",
		Long: `Run a single command with the denvfile's environment applied, without
entering an interactive shell.

The command is executed through your shell by default. With --virtual it
runs in a built-in POSIX interpreter instead, which behaves identically
on every platform but only understands POSIX syntax. With --interactive
the command is attached to a PTY, for commands that need a terminal.

Examples:
  denv run -- make test
  denv run -- python -m pytest tests/
  denv run --interactive -- python`,
		Args: cobra.MinimumNArgs(1),
		RunE: runRun,
	}
)

func init() {
	runCmd.Flags().StringVar(&runShellOverride, "shell", "", "shell binary to run the command with")
	runCmd.Flags().BoolVarP(&runInteractive, "interactive", "i", false, "attach the command to a PTY")
	runCmd.Flags().BoolVar(&runVirtual, "virtual", false, "use the built-in POSIX interpreter")
}

func runRun(cmd *cobra.Command, args []string) error {
	s, err := buildSession(cmd.Context(), sessionOptions{shellOverride: runShellOverride})
	if err != nil {
		return reportError(err)
	}

	// Quote each word so args carrying spaces or metacharacters survive
	// the shell's re-parsing. The virtual runner always speaks POSIX.
	flavor := s.shell.Flavor
	if runVirtual {
		flavor = shellenv.FlavorPosix
	}
	command, err := shellenv.QuoteCommand(args, flavor)
	if err != nil {
		return err
	}

	opts := shellenv.RunOptions{
		Command:     command,
		Env:         s.env,
		WorkDir:     s.projectDir,
		Interactive: runInteractive,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}

	var result *shellenv.Result
	if runVirtual {
		if runInteractive {
			return errors.New("--interactive is not supported with --virtual")
		}
		result = shellenv.NewVirtualRunner().Run(cmd.Context(), opts)
	} else {
		result = shellenv.NewNativeRunner(s.shell).Run(cmd.Context(), opts)
	}

	if result.Error != nil {
		return result.Error
	}
	if result.ExitCode != 0 {
		return &ExitError{Code: result.ExitCode}
	}
	return nil
}
