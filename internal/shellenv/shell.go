// SPDX-License-Identifier: MPL-2.0

package shellenv

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// Shell flavors. The flavor decides activation script names, hook dialects
// and interactive entry arguments.
const (
	// FlavorPosix covers bash, zsh, sh and anything else speaking POSIX sh.
	FlavorPosix Flavor = "posix"
	// FlavorFish is the fish shell.
	FlavorFish Flavor = "fish"
	// FlavorPowerShell covers pwsh and Windows PowerShell.
	FlavorPowerShell Flavor = "powershell"
	// FlavorCmd is cmd.exe.
	FlavorCmd Flavor = "cmd"
)

// ErrNoShell is returned when no usable shell can be found on the host.
var ErrNoShell = errors.New("no shell found")

type (
	// Flavor is a shell dialect family.
	Flavor string

	// Shell is a resolved shell binary plus its dialect.
	Shell struct {
		// Path is the absolute path to the shell binary.
		Path string
		// Flavor is the dialect family the shell speaks.
		Flavor Flavor
	}
)

// String returns the string representation of the Flavor.
func (f Flavor) String() string { return string(f) }

// Name returns the shell's base name without any .exe suffix.
func (s Shell) Name() string {
	return strings.TrimSuffix(filepath.Base(s.Path), ".exe")
}

// DetectShell resolves the shell to spawn. A non-empty preferred path wins;
// otherwise $SHELL is consulted on Unix-likes with bash and sh as fallbacks,
// and pwsh, powershell and cmd are tried in order on Windows.
func DetectShell(preferred string) (Shell, error) {
	if preferred != "" {
		path, err := exec.LookPath(preferred)
		if err != nil {
			return Shell{}, fmt.Errorf("configured shell %q: %w", preferred, err)
		}
		return newShell(path), nil
	}

	switch runtime.GOOS {
	case "windows":
		for _, candidate := range []string{"pwsh", "powershell", "cmd"} {
			if path, err := exec.LookPath(candidate); err == nil {
				return newShell(path), nil
			}
		}
		return Shell{}, ErrNoShell
	default:
		if shell := os.Getenv("SHELL"); shell != "" {
			return newShell(shell), nil
		}
		for _, candidate := range []string{"bash", "sh"} {
			if path, err := exec.LookPath(candidate); err == nil {
				return newShell(path), nil
			}
		}
		return Shell{}, ErrNoShell
	}
}

// newShell classifies a shell path into a Shell value.
func newShell(path string) Shell {
	return Shell{Path: path, Flavor: flavorOf(path)}
}

// flavorOf maps a shell binary name to its dialect family. Unknown shells
// are treated as POSIX with a logged warning, which keeps exotic $SHELL
// values usable at the cost of hook fidelity.
func flavorOf(path string) Flavor {
	base := strings.TrimSuffix(filepath.Base(path), ".exe")
	switch base {
	case "bash", "zsh", "sh", "dash", "ksh":
		return FlavorPosix
	case "fish":
		return FlavorFish
	case "pwsh", "powershell":
		return FlavorPowerShell
	case "cmd":
		return FlavorCmd
	default:
		log.Warn("unknown shell, assuming POSIX dialect", "shell", base)
		return FlavorPosix
	}
}

// commandArgs returns the arguments that make the shell run a one-off
// command string.
func (s Shell) commandArgs(command string) []string {
	switch s.Flavor {
	case FlavorCmd:
		return []string{"/C", command}
	case FlavorPowerShell:
		return []string{"-NoProfile", "-Command", command}
	default:
		return []string{"-c", command}
	}
}
