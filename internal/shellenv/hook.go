// SPDX-License-Identifier: MPL-2.0

package shellenv

import (
	"fmt"
	"strings"

	"denv-cli/pkg/denvfile"

	"mvdan.cc/sh/v3/syntax"
)

// BuildHook renders the shell-entry hook for one session: the denvfile's
// init script followed by venv activation when a venv is present.
//
// The init script is authored in POSIX sh. It is embedded verbatim for
// POSIX shells. Fish, PowerShell and cmd sessions get venv activation in
// their own dialect but skip the init script; callers should surface that
// to the user. A nil venv renders no activation line at all.
func BuildHook(init denvfile.InitScript, venv *Venv, flavor Flavor) (string, error) {
	var b strings.Builder

	switch flavor {
	case FlavorPosix:
		if init != "" {
			b.WriteString(string(init))
			if !strings.HasSuffix(string(init), "\n") {
				b.WriteString("\n")
			}
		}
		if venv != nil {
			quoted, err := syntax.Quote(venv.ActivationScript, syntax.LangPOSIX)
			if err != nil {
				return "", fmt.Errorf("failed to quote activation script path: %w", err)
			}
			fmt.Fprintf(&b, ". %s\n", quoted)
		}
	case FlavorFish:
		if venv != nil {
			fmt.Fprintf(&b, "source %s\n", quoteSingle(venv.ActivationScript))
		}
	case FlavorPowerShell:
		if venv != nil {
			fmt.Fprintf(&b, "& %s\n", quotePowerShell(venv.ActivationScript))
		}
	case FlavorCmd:
		if venv != nil {
			fmt.Fprintf(&b, "call \"%s\"\n", venv.ActivationScript)
		}
	}

	return b.String(), nil
}

// HookSkipsInit reports whether the flavor's hook omits the init script.
func HookSkipsInit(init denvfile.InitScript, flavor Flavor) bool {
	return init != "" && flavor != FlavorPosix
}

// quoteSingle wraps a string in single quotes for fish, escaping embedded
// quotes and backslashes.
func quoteSingle(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// quotePowerShell wraps a string in PowerShell single quotes, where the
// only escape is a doubled quote.
func quotePowerShell(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
