// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"denv-cli/internal/store"

	"github.com/spf13/cobra"
)

var (
	lockCheck bool

	// lockCmd writes or verifies the denv.lock file.
	lockCmd = &cobra.Command{
		Use:   "lock",
		Short: "Write the denv.lock file",
		Long: `Resolve the denvfile against the catalog and record the result in
denv.lock next to it. The lockfile is platform-neutral: it pins package
identities, not platform builds, so the same lockfile is valid on every
platform.

With --check the lockfile is verified against a fresh resolution instead
of being written; a stale or missing lockfile exits non-zero. Use this
in CI to catch drift between denvfile and lockfile.`,
		RunE: runLock,
	}
)

func init() {
	lockCmd.Flags().BoolVar(&lockCheck, "check", false, "verify the lockfile instead of writing it")
}

func runLock(cmd *cobra.Command, args []string) error {
	s, err := buildSession(cmd.Context(), sessionOptions{skipMaterialize: true})
	if err != nil {
		return reportError(err)
	}

	if lockCheck {
		lock, err := store.ReadLockfile(s.projectDir)
		if err != nil {
			return fmt.Errorf("lockfile check failed: %w", err)
		}
		if err := lock.Check(s.snapshot.Name, s.resolved); err != nil {
			return err
		}
		fmt.Printf("%s %s is up to date\n", SuccessStyle.Render("✓"), store.LockFileName)
		return nil
	}

	lock := store.NewLockfile(s.snapshot.Name, s.resolved)
	if err := lock.Write(s.projectDir); err != nil {
		return err
	}
	fmt.Printf("%s Locked %d packages from %s\n",
		SuccessStyle.Render("✓"), len(s.resolved), PkgStyle.Render(s.snapshot.Name))
	return nil
}
