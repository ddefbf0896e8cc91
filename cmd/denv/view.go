// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"denv-cli/internal/catalog"
	"denv-cli/internal/config"
	"denv-cli/internal/store"
	"denv-cli/pkg/platform"

	"github.com/spf13/cobra"
)

var (
	viewSnapshots bool
	viewPlatform  string

	// viewCmd shows the resolved environment without entering it.
	viewCmd = &cobra.Command{
		Use:   "view",
		Short: "Show the resolved environment",
		Long: `Show what the denvfile resolves to on this platform: the pinned
snapshot, every package with the build that serves it, declared
environment variables, and the virtualenv activation state.

Nothing is materialized; view is read-only.`,
		RunE: runView,
	}
)

func init() {
	viewCmd.Flags().BoolVar(&viewSnapshots, "snapshots", false, "list the snapshots the catalog provides")
	viewCmd.Flags().StringVar(&viewPlatform, "platform", "", "resolve for another platform (linux, macos, windows)")
}

func runView(cmd *cobra.Command, args []string) error {
	if viewSnapshots {
		return runViewSnapshots(cmd.Context())
	}

	s, err := buildSession(cmd.Context(), sessionOptions{
		skipMaterialize:  true,
		platformOverride: platform.Host(viewPlatform),
	})
	if err != nil {
		return reportError(err)
	}

	if s.spec.Description != "" {
		fmt.Println(TitleStyle.Render(s.spec.Description))
	}
	fmt.Printf("%s %s\n", SubtitleStyle.Render("snapshot:"), s.snapshot.Name)
	fmt.Printf("%s %s\n", SubtitleStyle.Render("platform:"), s.spec.Host)
	fmt.Println()

	fmt.Println(SubtitleStyle.Render("Packages:"))
	for _, pkg := range s.resolved {
		provider := pkg.Build.Path
		if pkg.Build.Provider == catalog.ProviderSystem {
			provider = "system:" + pkg.Build.Binary
		}
		fmt.Printf("  %s %s\n", PkgStyle.Render(pkg.Id()), VerboseStyle.Render("("+provider+")"))
	}

	if len(s.spec.EnvVars) > 0 {
		fmt.Println()
		fmt.Println(SubtitleStyle.Render("Environment:"))
		keys := make([]string, 0, len(s.spec.EnvVars))
		for k := range s.spec.EnvVars {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s=%s\n", k, s.spec.EnvVars[k])
		}
	}

	fmt.Println()
	switch {
	case s.spec.Venv.Disabled:
		fmt.Printf("%s disabled\n", SubtitleStyle.Render("venv:"))
	case s.venv != nil:
		fmt.Printf("%s %s %s\n", SubtitleStyle.Render("venv:"),
			s.venv.Dir, SuccessStyle.Render("(will activate)"))
	default:
		fmt.Printf("%s %s %s\n", SubtitleStyle.Render("venv:"),
			s.spec.Venv.VenvDir(), VerboseStyle.Render("(not present)"))
	}

	if s.spec.Init != "" {
		fmt.Printf("%s configured\n", SubtitleStyle.Render("init hook:"))
	}

	printLockStatus(s)
	return nil
}

// printLockStatus reports whether denv.lock matches the fresh resolution.
func printLockStatus(s *session) {
	lock, err := store.ReadLockfile(s.projectDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Printf("%s %s\n", SubtitleStyle.Render("lockfile:"),
				VerboseStyle.Render("none (run 'denv lock')"))
		}
		return
	}
	if err := lock.Check(s.snapshot.Name, s.resolved); err != nil {
		fmt.Printf("%s %s\n", SubtitleStyle.Render("lockfile:"),
			WarningStyle.Render("stale (run 'denv lock')"))
		return
	}
	fmt.Printf("%s %s\n", SubtitleStyle.Render("lockfile:"), SuccessStyle.Render("up to date"))
}

// runViewSnapshots lists every snapshot the configured catalog provides.
func runViewSnapshots(ctx context.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	s := &session{cfg: cfg}
	cat, err := catalog.Load(s.catalogPaths())
	if err != nil {
		return err
	}

	names := cat.SnapshotNames()
	if len(names) == 0 {
		fmt.Println(VerboseStyle.Render("catalog is empty"))
		return nil
	}
	for _, name := range names {
		fmt.Println(PkgStyle.Render(name))
	}
	return nil
}
