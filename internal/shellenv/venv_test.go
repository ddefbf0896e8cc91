// SPDX-License-Identifier: MPL-2.0

package shellenv

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"denv-cli/pkg/denvfile"
)

// makeVenv creates a venv directory skeleton, optionally with the POSIX
// activation script.
func makeVenv(t *testing.T, projectDir, name string, withScript bool) {
	t.Helper()
	binDir := filepath.Join(projectDir, name, venvBinDirName())
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if withScript {
		script := filepath.Join(binDir, activationScriptName(FlavorPosix))
		if err := os.WriteFile(script, []byte("# venv activation\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestInspectVenvAbsent(t *testing.T) {
	venv, err := InspectVenv(t.TempDir(), denvfile.VenvConfig{}, FlavorPosix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if venv != nil {
		t.Errorf("expected nil venv for missing directory, got %+v", venv)
	}
}

func TestInspectVenvPresent(t *testing.T) {
	dir := t.TempDir()
	makeVenv(t, dir, ".venv", true)

	venv, err := InspectVenv(dir, denvfile.VenvConfig{}, FlavorPosix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if venv == nil {
		t.Fatal("expected an active venv")
	}
	if venv.Dir != filepath.Join(dir, ".venv") {
		t.Errorf("unexpected venv dir: %q", venv.Dir)
	}
	if venv.BinDir != filepath.Join(dir, ".venv", venvBinDirName()) {
		t.Errorf("unexpected venv bin dir: %q", venv.BinDir)
	}
}

func TestInspectVenvMissingActivationScript(t *testing.T) {
	dir := t.TempDir()
	makeVenv(t, dir, ".venv", false)

	_, err := InspectVenv(dir, denvfile.VenvConfig{}, FlavorPosix)
	if !errors.Is(err, ErrActivationScriptMissing) {
		t.Fatalf("expected ErrActivationScriptMissing, got %v", err)
	}

	var missing *ActivationMissingError
	if !errors.As(err, &missing) {
		t.Fatal("expected an *ActivationMissingError")
	}
	if missing.Flavor != FlavorPosix {
		t.Errorf("unexpected flavor in error: %s", missing.Flavor)
	}
}

func TestInspectVenvDisabled(t *testing.T) {
	dir := t.TempDir()
	makeVenv(t, dir, ".venv", true)

	venv, err := InspectVenv(dir, denvfile.VenvConfig{Disabled: true}, FlavorPosix)
	if err != nil || venv != nil {
		t.Errorf("disabled venv handling must be a no-op, got %+v, %v", venv, err)
	}
}

func TestInspectVenvCustomDir(t *testing.T) {
	dir := t.TempDir()
	makeVenv(t, dir, "env", true)
	makeVenv(t, dir, ".venv", true)

	venv, err := InspectVenv(dir, denvfile.VenvConfig{Dir: "env"}, FlavorPosix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if venv == nil || venv.Dir != filepath.Join(dir, "env") {
		t.Errorf("expected configured dir to win, got %+v", venv)
	}
}

func TestInspectVenvDecidedPerCall(t *testing.T) {
	dir := t.TempDir()
	makeVenv(t, dir, ".venv", true)

	venv, err := InspectVenv(dir, denvfile.VenvConfig{}, FlavorPosix)
	if err != nil || venv == nil {
		t.Fatalf("expected active venv, got %+v, %v", venv, err)
	}

	if err := os.RemoveAll(filepath.Join(dir, ".venv")); err != nil {
		t.Fatal(err)
	}

	venv, err = InspectVenv(dir, denvfile.VenvConfig{}, FlavorPosix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if venv != nil {
		t.Error("removed venv must no longer activate")
	}
}

func TestActivationScriptNames(t *testing.T) {
	tests := []struct {
		flavor Flavor
		want   string
	}{
		{FlavorPosix, "activate"},
		{FlavorFish, "activate.fish"},
		{FlavorPowerShell, "Activate.ps1"},
		{FlavorCmd, "activate.bat"},
	}

	for _, tt := range tests {
		if got := activationScriptName(tt.flavor); got != tt.want {
			t.Errorf("activationScriptName(%s) = %q, want %q", tt.flavor, got, tt.want)
		}
	}
}

func TestVenvBinDirName(t *testing.T) {
	want := "bin"
	if runtime.GOOS == "windows" {
		want = "Scripts"
	}
	if got := venvBinDirName(); got != want {
		t.Errorf("venvBinDirName() = %q, want %q", got, want)
	}
}
