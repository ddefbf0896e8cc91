// SPDX-License-Identifier: MPL-2.0

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"denv-cli/internal/catalog"

	"github.com/charmbracelet/log"
)

// Profile directory layout under the project root.
const (
	// ProjectDirName is the per-project state directory.
	ProjectDirName = ".denv"
	// profileDirName is the profile directory under ProjectDirName.
	profileDirName = "profile"
)

type (
	// Profile is a materialized environment for one project: a bin
	// directory of links covering every resolved package.
	Profile struct {
		// Dir is the profile root (<project>/.denv/profile).
		Dir string
		// BinDir is the directory to prepend to PATH.
		BinDir string
		// Entries maps link names to their targets.
		Entries map[string]string
	}
)

// ProfileDir returns the profile root for a project directory.
func ProfileDir(projectDir string) string {
	return filepath.Join(projectDir, ProjectDirName, profileDirName)
}

// Materialize builds the project profile from resolved packages.
//
// The bin directory is rebuilt from scratch on every call, so repeated
// materialization of the same resolved set converges to the same tree.
// Later packages win link-name collisions with earlier ones, matching the
// order packages appear in the denvfile.
func (s *Store) Materialize(projectDir string, resolved []catalog.ResolvedPackage) (*Profile, error) {
	profileDir := ProfileDir(projectDir)
	binDir := filepath.Join(profileDir, "bin")

	entries := map[string]string{}
	for _, pkg := range resolved {
		targets, err := s.buildTargets(pkg.Build)
		if err != nil {
			return nil, fmt.Errorf("materializing %s: %w", pkg.Id(), err)
		}
		for name, target := range targets {
			entries[name] = target
		}
	}

	if err := os.RemoveAll(binDir); err != nil {
		return nil, fmt.Errorf("failed to clear profile bin dir: %w", err)
	}
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile bin dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := os.Symlink(entries[name], filepath.Join(binDir, name)); err != nil {
			return nil, fmt.Errorf("failed to link %s: %w", name, err)
		}
	}

	log.Debug("materialized profile", "dir", profileDir, "packages", len(resolved), "links", len(entries))

	return &Profile{Dir: profileDir, BinDir: binDir, Entries: entries}, nil
}

// buildTargets returns the link name to target path map for one build.
func (s *Store) buildTargets(build catalog.Build) (map[string]string, error) {
	if build.Provider == catalog.ProviderSystem {
		path, err := s.LookupSystem(build)
		if err != nil {
			return nil, err
		}
		return map[string]string{filepath.Base(path): path}, nil
	}

	binDir, err := s.BinDir(build)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(binDir)
	if err != nil {
		return nil, &BuildError{Build: build, Cause: err}
	}

	targets := map[string]string{}
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		targets[entry.Name()] = filepath.Join(binDir, entry.Name())
	}
	return targets, nil
}
