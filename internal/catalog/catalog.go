// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"sort"

	"denv-cli/pkg/denvfile"
	"denv-cli/pkg/platform"

	"github.com/charmbracelet/log"
)

var (
	// ErrSnapshotNotFound is returned when no loaded index provides the
	// referenced snapshot.
	ErrSnapshotNotFound = errors.New("snapshot not found in catalog")
	// ErrSnapshotAmbiguous is returned when more than one index provides a
	// snapshot with the referenced name.
	ErrSnapshotAmbiguous = errors.New("snapshot is ambiguous across catalog indices")
	// ErrPackageUnavailable is returned when a package spec cannot be bound
	// to exactly one build in the resolved snapshot.
	ErrPackageUnavailable = errors.New("package unavailable in snapshot")
)

type (
	// Catalog is the merged view over all loaded index files.
	Catalog struct {
		indices []*Index
	}

	// ResolvedPackage binds a denvfile package spec to a concrete build.
	ResolvedPackage struct {
		// Spec is the original spec as written in the denvfile.
		Spec denvfile.PackageSpec
		// Name is the resolved package name.
		Name string
		// Version is the exact version the snapshot pins the spec to.
		Version string
		// Build is the platform-appropriate build serving the package.
		Build Build
	}

	// SnapshotError reports a snapshot resolution failure together with the
	// snapshots the catalog does know about.
	SnapshotError struct {
		Ref       denvfile.SnapshotRef
		Known     []string
		Ambiguous bool
	}

	// PackageError reports a failed package lookup within a snapshot.
	PackageError struct {
		Spec     denvfile.PackageSpec
		Snapshot string
		Platform platform.Host
		// Reason distinguishes the failure modes (unknown name, version
		// mismatch, no build for the platform, ambiguous unpinned spec).
		Reason string
	}
)

// Id returns the "name@version" identifier of the resolved package.
func (r ResolvedPackage) Id() string {
	return r.Name + "@" + r.Version
}

// Error implements the error interface.
func (e *SnapshotError) Error() string {
	if e.Ambiguous {
		return fmt.Sprintf("snapshot %q is provided by more than one catalog index", e.Ref)
	}
	if len(e.Known) == 0 {
		return fmt.Sprintf("snapshot %q not found (catalog is empty)", e.Ref)
	}
	return fmt.Sprintf("snapshot %q not found (known snapshots: %v)", e.Ref, e.Known)
}

// Unwrap returns the matching sentinel error.
func (e *SnapshotError) Unwrap() error {
	if e.Ambiguous {
		return ErrSnapshotAmbiguous
	}
	return ErrSnapshotNotFound
}

// Error implements the error interface.
func (e *PackageError) Error() string {
	return fmt.Sprintf("package %q unavailable in snapshot %q for %s: %s",
		e.Spec, e.Snapshot, e.Platform, e.Reason)
}

// Unwrap returns ErrPackageUnavailable.
func (e *PackageError) Unwrap() error { return ErrPackageUnavailable }

// Load builds a Catalog from the given catalog paths. Each path is either
// an index file or a directory of index files.
func Load(paths []string) (*Catalog, error) {
	c := &Catalog{}
	for _, p := range paths {
		files, err := indexPaths(p)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			idx, err := LoadIndex(f)
			if err != nil {
				return nil, err
			}
			log.Debug("loaded catalog index", "path", f, "snapshots", len(idx.Snapshots))
			c.indices = append(c.indices, idx)
		}
	}
	return c, nil
}

// SnapshotNames returns the sorted names of all snapshots the catalog knows.
func (c *Catalog) SnapshotNames() []string {
	var names []string
	for _, idx := range c.indices {
		for _, snap := range idx.Snapshots {
			names = append(names, snap.Name)
		}
	}
	sort.Strings(names)
	return names
}

// ResolveSnapshot looks up a snapshot by its exact name. Exactly one index
// must provide it.
func (c *Catalog) ResolveSnapshot(ref denvfile.SnapshotRef) (*Snapshot, error) {
	var found *Snapshot
	for _, idx := range c.indices {
		for i := range idx.Snapshots {
			if idx.Snapshots[i].Name != ref.String() {
				continue
			}
			if found != nil {
				return nil, &SnapshotError{Ref: ref, Ambiguous: true}
			}
			found = &idx.Snapshots[i]
		}
	}
	if found == nil {
		return nil, &SnapshotError{Ref: ref, Known: c.SnapshotNames()}
	}
	return found, nil
}

// ResolvePackage binds one package spec to a build within the snapshot.
//
// A pinned spec ("python@3.11") must match the name and exact version. An
// unpinned spec ("python") must match exactly one entry; multiple versions
// of the same name make the unpinned spec ambiguous rather than picking one.
func (s *Snapshot) ResolvePackage(spec denvfile.PackageSpec, host platform.Host) (*ResolvedPackage, error) {
	var matches []*Package
	for i := range s.Packages {
		if s.Packages[i].Name == spec.Name() {
			matches = append(matches, &s.Packages[i])
		}
	}

	if len(matches) == 0 {
		return nil, &PackageError{Spec: spec, Snapshot: s.Name, Platform: host,
			Reason: "no package with that name"}
	}

	var pkg *Package
	if version := spec.Version(); version != "" {
		for _, m := range matches {
			if m.Version == version {
				pkg = m
				break
			}
		}
		if pkg == nil {
			var have []string
			for _, m := range matches {
				have = append(have, m.Version)
			}
			return nil, &PackageError{Spec: spec, Snapshot: s.Name, Platform: host,
				Reason: fmt.Sprintf("version %s not in snapshot (available: %v)", version, have)}
		}
	} else {
		if len(matches) > 1 {
			return nil, &PackageError{Spec: spec, Snapshot: s.Name, Platform: host,
				Reason: "multiple versions available, pin one with name@version"}
		}
		pkg = matches[0]
	}

	build := pkg.BuildFor(host)
	if build == nil {
		return nil, &PackageError{Spec: spec, Snapshot: s.Name, Platform: host,
			Reason: "no build for this platform"}
	}

	return &ResolvedPackage{
		Spec:    spec,
		Name:    pkg.Name,
		Version: pkg.Version,
		Build:   *build,
	}, nil
}

// ResolveAll binds every package spec of a platform-flattened denvfile view
// to a build. It fails on the first unresolvable spec.
func (s *Snapshot) ResolveAll(specs []denvfile.PackageSpec, host platform.Host) ([]ResolvedPackage, error) {
	resolved := make([]ResolvedPackage, 0, len(specs))
	for _, spec := range specs {
		r, err := s.ResolvePackage(spec, host)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, *r)
	}
	return resolved, nil
}
