// SPDX-License-Identifier: MPL-2.0

package shellenv

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"denv-cli/pkg/denvfile"
)

// Session marker variables set inside every denv shell.
const (
	// EnvProjectDir points at the project root the shell was entered from.
	EnvProjectDir = "DENV_PROJECT"
	// EnvSnapshot carries the snapshot name the environment was built from.
	EnvSnapshot = "DENV_SNAPSHOT"
	// EnvVirtualEnv is the conventional virtualenv marker variable.
	EnvVirtualEnv = "VIRTUAL_ENV"
)

type (
	// EnvBuilder assembles the process environment for a denv session.
	// It applies a fixed precedence (higher number wins):
	//
	//  1. Host environment
	//  2. Denvfile env.files (dotenv, in declaration order)
	//  3. Denvfile env.vars (platform overlays already flattened)
	//  4. Session markers (DENV_PROJECT, DENV_SNAPSHOT)
	//  5. PATH assembly: profile bin first, venv bin in front of that
	//
	// Venv state is an input, not something the builder detects: the same
	// inputs always produce the same environment.
	EnvBuilder struct {
		// Environ returns the host environment as "KEY=VALUE" strings.
		// When nil, os.Environ() is used.
		Environ func() []string
	}

	// BuildInput carries everything one environment assembly needs.
	BuildInput struct {
		// Spec is the platform-flattened descriptor view.
		Spec denvfile.ShellSpec
		// ProjectDir is the directory holding the denvfile.
		ProjectDir string
		// ProfileBinDir is the materialized profile's bin directory.
		ProfileBinDir string
		// Venv is the inspected venv state; nil means no venv.
		Venv *Venv
		// Pure drops the host environment except for a small allowlist,
		// so only declared packages and env reach the session.
		Pure bool
	}
)

// pureAllowlist is what a pure session keeps from the host environment.
var pureAllowlist = map[string]bool{
	"HOME":    true,
	"USER":    true,
	"LOGNAME": true,
	"SHELL":   true,
	"TERM":    true,
	"LANG":    true,
	"TZ":      true,
}

// NewEnvBuilder creates an EnvBuilder reading the real host environment.
func NewEnvBuilder() *EnvBuilder {
	return &EnvBuilder{}
}

// Build assembles the session environment map.
func (b *EnvBuilder) Build(in BuildInput) (map[string]string, error) {
	environ := b.Environ
	if environ == nil {
		environ = os.Environ
	}

	env := map[string]string{}
	for _, kv := range environ() {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			continue
		}
		if in.Pure && !pureAllowlist[key] {
			continue
		}
		env[key] = value
	}

	for _, path := range in.Spec.EnvFiles {
		if err := LoadEnvFile(env, path, in.ProjectDir); err != nil {
			return nil, err
		}
	}

	maps.Copy(env, in.Spec.EnvVars)

	env[EnvProjectDir] = in.ProjectDir
	env[EnvSnapshot] = in.Spec.Snapshot.String()

	// PATH assembly. The profile goes in front of the host PATH so locked
	// packages shadow system ones; an active venv goes in front of the
	// profile so its interpreter wins. No venv means no VIRTUAL_ENV, even
	// if the host exported one.
	path := env["PATH"]
	if in.ProfileBinDir != "" {
		path = prependPath(path, in.ProfileBinDir)
	}
	if in.Venv != nil {
		path = prependPath(path, in.Venv.BinDir)
		env[EnvVirtualEnv] = in.Venv.Dir
	} else {
		delete(env, EnvVirtualEnv)
	}
	env["PATH"] = path

	return env, nil
}

// prependPath puts dir at the front of a PATH value, dropping any earlier
// occurrence of the same dir so repeated assembly does not grow the value.
func prependPath(path, dir string) string {
	parts := filepath.SplitList(path)
	cleaned := parts[:0]
	for _, p := range parts {
		if p != dir {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return dir
	}
	return dir + string(os.PathListSeparator) + strings.Join(cleaned, string(os.PathListSeparator))
}

// EnvToSlice converts an env map to a sorted "KEY=VALUE" slice.
func EnvToSlice(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}
