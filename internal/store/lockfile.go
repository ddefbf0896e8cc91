// SPDX-License-Identifier: MPL-2.0

package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"denv-cli/internal/catalog"

	"github.com/pelletier/go-toml/v2"
)

// LockFileName is the lockfile written next to the denvfile.
const LockFileName = "denv.lock"

// ErrLockStale is returned when the lockfile no longer matches the
// denvfile's resolved package set.
var ErrLockStale = errors.New("lockfile is stale")

type (
	// Lockfile records the resolved package set of a project. It is
	// platform-neutral: package identities are locked, platform builds
	// are looked up at materialization time.
	Lockfile struct {
		// Snapshot is the snapshot name the packages were resolved from.
		Snapshot string `toml:"snapshot"`
		// Packages lists the locked package entries in denvfile order.
		Packages []LockedPackage `toml:"packages"`
	}

	// LockedPackage is one locked package entry.
	LockedPackage struct {
		// Spec is the spec as written in the denvfile.
		Spec string `toml:"spec"`
		// Name is the resolved package name.
		Name string `toml:"name"`
		// Version is the exact version the spec resolved to.
		Version string `toml:"version"`
	}
)

// NewLockfile builds a Lockfile from a resolution result.
func NewLockfile(snapshot string, resolved []catalog.ResolvedPackage) *Lockfile {
	lock := &Lockfile{Snapshot: snapshot}
	for _, pkg := range resolved {
		lock.Packages = append(lock.Packages, LockedPackage{
			Spec:    pkg.Spec.String(),
			Name:    pkg.Name,
			Version: pkg.Version,
		})
	}
	return lock
}

// Id returns the "name@version" identifier of the locked package.
func (p LockedPackage) Id() string { return p.Name + "@" + p.Version }

// ReadLockfile reads the lockfile from a project directory. A missing
// lockfile is reported via os.ErrNotExist.
func ReadLockfile(projectDir string) (*Lockfile, error) {
	path := filepath.Join(projectDir, LockFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile at %s: %w", path, err)
	}

	var lock Lockfile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("failed to parse lockfile at %s: %w", path, err)
	}
	return &lock, nil
}

// Write writes the lockfile into a project directory.
func (l *Lockfile) Write(projectDir string) error {
	data, err := toml.Marshal(l)
	if err != nil {
		return fmt.Errorf("failed to encode lockfile: %w", err)
	}

	path := filepath.Join(projectDir, LockFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write lockfile at %s: %w", path, err)
	}
	return nil
}

// Check verifies the lockfile matches a fresh resolution result.
func (l *Lockfile) Check(snapshot string, resolved []catalog.ResolvedPackage) error {
	if l.Snapshot != snapshot {
		return fmt.Errorf("%w: snapshot changed from %q to %q", ErrLockStale, l.Snapshot, snapshot)
	}
	if len(l.Packages) != len(resolved) {
		return fmt.Errorf("%w: package count changed from %d to %d", ErrLockStale, len(l.Packages), len(resolved))
	}
	for i, pkg := range resolved {
		if l.Packages[i].Id() != pkg.Id() {
			return fmt.Errorf("%w: package %d changed from %s to %s", ErrLockStale, i, l.Packages[i].Id(), pkg.Id())
		}
	}
	return nil
}
