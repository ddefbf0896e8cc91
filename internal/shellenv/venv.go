// SPDX-License-Identifier: MPL-2.0

package shellenv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"denv-cli/pkg/denvfile"
)

// ErrActivationScriptMissing is returned when the venv directory exists but
// does not carry the activation script the shell flavor needs.
var ErrActivationScriptMissing = errors.New("venv activation script missing")

type (
	// Venv describes a virtualenv found next to the project. A nil *Venv
	// means no venv directory exists and activation is skipped entirely.
	Venv struct {
		// Dir is the venv root directory.
		Dir string
		// BinDir is the venv's binary directory (bin, or Scripts on Windows).
		BinDir string
		// ActivationScript is the flavor-appropriate activation script path.
		ActivationScript string
	}

	// ActivationMissingError reports a present venv directory without the
	// activation script for the current shell flavor.
	ActivationMissingError struct {
		Dir    string
		Script string
		Flavor Flavor
	}
)

// Error implements the error interface.
func (e *ActivationMissingError) Error() string {
	return fmt.Sprintf("venv directory %s exists but %s is missing (needed for %s shells)",
		e.Dir, e.Script, e.Flavor)
}

// Unwrap returns ErrActivationScriptMissing.
func (e *ActivationMissingError) Unwrap() error { return ErrActivationScriptMissing }

// InspectVenv checks the project's venv directory and returns its
// activation details.
//
// The decision is made fresh on every call: a missing directory yields
// (nil, nil) and a bare environment, a directory with the activation script
// yields an active Venv, and a directory without the script is an error
// rather than a silent fall-through. Disabled venv handling always yields
// (nil, nil).
func InspectVenv(projectDir string, cfg denvfile.VenvConfig, flavor Flavor) (*Venv, error) {
	if cfg.Disabled {
		return nil, nil
	}

	dir := filepath.Join(projectDir, cfg.VenvDir())
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to inspect venv directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	binDir := filepath.Join(dir, venvBinDirName())
	script := filepath.Join(binDir, activationScriptName(flavor))
	if _, err := os.Stat(script); err != nil {
		if os.IsNotExist(err) {
			return nil, &ActivationMissingError{Dir: dir, Script: script, Flavor: flavor}
		}
		return nil, fmt.Errorf("failed to inspect activation script %s: %w", script, err)
	}

	return &Venv{Dir: dir, BinDir: binDir, ActivationScript: script}, nil
}

// venvBinDirName returns the venv's binary directory name for the host.
func venvBinDirName() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

// activationScriptName returns the activation script a shell flavor sources.
func activationScriptName(flavor Flavor) string {
	switch flavor {
	case FlavorFish:
		return "activate.fish"
	case FlavorPowerShell:
		return "Activate.ps1"
	case FlavorCmd:
		return "activate.bat"
	default:
		return "activate"
	}
}
