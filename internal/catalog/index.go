// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"denv-cli/pkg/platform"

	"github.com/pelletier/go-toml/v2"
)

// Provider kinds for package builds.
const (
	// ProviderStore serves a build from a directory under the denv store.
	ProviderStore ProviderKind = "store"
	// ProviderSystem serves a build by looking up a binary on the host PATH.
	ProviderSystem ProviderKind = "system"
)

// IndexFileExt is the extension catalog index files must carry.
const IndexFileExt = ".toml"

var (
	// ErrInvalidProvider is returned when a build's provider kind is not recognized.
	ErrInvalidProvider = errors.New("invalid build provider")
	// ErrInvalidIndex is the sentinel error wrapped by index validation failures.
	ErrInvalidIndex = errors.New("invalid catalog index")
)

type (
	// ProviderKind identifies how a build is materialized.
	ProviderKind string

	// Index is one parsed catalog index file.
	Index struct {
		// Snapshots lists the package-set snapshots this index provides.
		Snapshots []Snapshot `toml:"snapshots"`

		// FilePath is where the index was loaded from (set by LoadIndex).
		FilePath string `toml:"-"`
	}

	// Snapshot is a pinned package set: a name plus the exact package
	// builds it makes available.
	Snapshot struct {
		// Name is the snapshot identifier denvfiles pin against.
		Name string `toml:"name"`
		// Description is an optional free-text label.
		Description string `toml:"description,omitempty"`
		// Packages lists the package entries of this snapshot.
		Packages []Package `toml:"packages"`
	}

	// Package is one (name, version) entry within a snapshot.
	Package struct {
		// Name is the package name (e.g. "python").
		Name string `toml:"name"`
		// Version is the exact version label (e.g. "3.11").
		Version string `toml:"version"`
		// Builds lists the platform-specific builds of this entry.
		Builds []Build `toml:"builds"`
	}

	// Build is a concrete, platform-appropriate build of a package.
	Build struct {
		// Platform is the host platform this build serves.
		Platform platform.Host `toml:"platform"`
		// Provider selects how the build is materialized.
		Provider ProviderKind `toml:"provider"`
		// Path is the store-relative directory holding the build
		// (store provider only). The directory must contain bin/.
		Path string `toml:"path,omitempty"`
		// Binary is the binary name looked up on the host PATH
		// (system provider only).
		Binary string `toml:"binary,omitempty"`
	}
)

// String returns the string representation of the ProviderKind.
func (p ProviderKind) String() string { return string(p) }

// IsValid returns whether the ProviderKind is one of the defined kinds,
// and a list of validation errors if it is not.
func (p ProviderKind) IsValid() (bool, []error) {
	switch p {
	case ProviderStore, ProviderSystem:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q (valid: store, system)", ErrInvalidProvider, p)}
	}
}

// LoadIndex reads and parses a single catalog index file.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog index at %s: %w", path, err)
	}

	var idx Index
	if err := toml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to parse catalog index at %s: %w", path, err)
	}
	idx.FilePath = path

	if err := idx.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &idx, nil
}

// indexPaths expands a catalog path into index file paths. A file path is
// returned as-is; a directory contributes its *.toml entries in sorted order.
func indexPaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("catalog path %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("catalog path %s: %w", path, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), IndexFileExt) {
			continue
		}
		paths = append(paths, filepath.Join(path, entry.Name()))
	}
	return paths, nil
}

// validate checks structural constraints TOML parsing cannot express.
func (i *Index) validate() error {
	seen := map[string]bool{}
	for si, snap := range i.Snapshots {
		if strings.TrimSpace(snap.Name) == "" {
			return fmt.Errorf("%w: snapshots[%d]: name must be non-empty", ErrInvalidIndex, si)
		}
		if seen[snap.Name] {
			return fmt.Errorf("%w: snapshots[%d]: duplicate snapshot %q", ErrInvalidIndex, si, snap.Name)
		}
		seen[snap.Name] = true

		for pi, pkg := range snap.Packages {
			where := fmt.Sprintf("snapshots[%d].packages[%d]", si, pi)
			if strings.TrimSpace(pkg.Name) == "" {
				return fmt.Errorf("%w: %s: name must be non-empty", ErrInvalidIndex, where)
			}
			if strings.TrimSpace(pkg.Version) == "" {
				return fmt.Errorf("%w: %s: version must be non-empty", ErrInvalidIndex, where)
			}
			if len(pkg.Builds) == 0 {
				return fmt.Errorf("%w: %s: at least one build is required", ErrInvalidIndex, where)
			}
			for bi, build := range pkg.Builds {
				bwhere := fmt.Sprintf("%s.builds[%d]", where, bi)
				if valid, errs := build.Platform.IsValid(); !valid {
					return fmt.Errorf("%w: %s: %v", ErrInvalidIndex, bwhere, errs[0])
				}
				if valid, errs := build.Provider.IsValid(); !valid {
					return fmt.Errorf("%w: %s: %v", ErrInvalidIndex, bwhere, errs[0])
				}
				switch build.Provider {
				case ProviderStore:
					if strings.TrimSpace(build.Path) == "" {
						return fmt.Errorf("%w: %s: store builds require a path", ErrInvalidIndex, bwhere)
					}
				case ProviderSystem:
					if strings.TrimSpace(build.Binary) == "" {
						return fmt.Errorf("%w: %s: system builds require a binary", ErrInvalidIndex, bwhere)
					}
				}
			}
		}
	}
	return nil
}

// BuildFor returns the build serving the given host platform, or nil.
func (p *Package) BuildFor(host platform.Host) *Build {
	for i := range p.Builds {
		if p.Builds[i].Platform == host {
			return &p.Builds[i]
		}
	}
	return nil
}
