// SPDX-License-Identifier: MPL-2.0

package store

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"denv-cli/internal/catalog"
)

var (
	// ErrBuildMissing is returned when a store build's directory does not
	// exist or carries no bin directory.
	ErrBuildMissing = errors.New("store build missing")
	// ErrBinaryNotFound is returned when a system build's binary cannot be
	// found on the host PATH.
	ErrBinaryNotFound = errors.New("system binary not found on PATH")
)

type (
	// Store is a directory of package build trees.
	Store struct {
		// RootDir is the store root. Build paths from the catalog are
		// resolved relative to it.
		RootDir string
	}

	// BuildError reports a build that cannot be served by the store or
	// the host system.
	BuildError struct {
		Build catalog.Build
		Cause error
	}
)

// New returns a Store rooted at dir.
func New(dir string) *Store {
	return &Store{RootDir: dir}
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.Build.Provider == catalog.ProviderSystem {
		return fmt.Sprintf("binary %q: %v", e.Build.Binary, e.Cause)
	}
	return fmt.Sprintf("build %q: %v", e.Build.Path, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *BuildError) Unwrap() error { return e.Cause }

// BinDir returns the bin directory of a store build, verifying it exists.
func (s *Store) BinDir(build catalog.Build) (string, error) {
	dir := filepath.Join(s.RootDir, build.Path, "bin")
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", &BuildError{Build: build, Cause: fmt.Errorf("%w: %s", ErrBuildMissing, dir)}
	}
	return dir, nil
}

// LookupSystem resolves a system build's binary on the host PATH.
func (s *Store) LookupSystem(build catalog.Build) (string, error) {
	path, err := exec.LookPath(build.Binary)
	if err != nil {
		return "", &BuildError{Build: build, Cause: ErrBinaryNotFound}
	}
	return path, nil
}
