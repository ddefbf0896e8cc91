// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"denv-cli/pkg/denvfile"

	"github.com/spf13/cobra"
)

var (
	initForce    bool
	initTemplate string

	// initCmd creates a new denvfile
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new denvfile in the current directory",
		Long: `Create a new denvfile in the current directory.

This command generates a starter denvfile pinning a snapshot and a
Python interpreter to help you get started quickly.`,
		RunE: runDenvInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing denvfile")
	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "default", "template to use (default, minimal)")
}

func runDenvInit(cmd *cobra.Command, args []string) error {
	filename := denvfile.FileName
	if len(args) > 0 {
		filename = args[0]
	}

	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	content := generateDenvfile(initTemplate)

	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Edit the denvfile to pin the packages you need")
	fmt.Println("  2. Run 'denv view' to check the resolution")
	fmt.Println("  3. Run 'denv shell' to enter the environment")

	return nil
}

func generateDenvfile(template string) string {
	switch template {
	case "minimal":
		return `snapshot: "stable-25.05"
packages: ["python@3.11"]
`
	default:
		return `description: "development shell"

// Pin the package-set snapshot every package resolves against.
snapshot: "stable-25.05"

// Packages put on PATH inside the shell, as "name" or "name@version".
packages: ["python@3.11"]

// Extra environment for the session. Files are dotenv paths relative to
// this file; a trailing '?' makes a file optional.
env: {
	vars: {}
	files: [".env?"]
}

shell: {
	// Runs at shell entry, before the interactive prompt. POSIX sh.
	init: """
		echo "denv shell ready"
		"""

	// A .venv directory next to this file is activated automatically.
	// venv: dir:      ".venv"
	// venv: disabled: true
}

// Per-platform additions.
// platforms: [{name: "linux", packages: ["gcc@13"]}]
`
	}
}
