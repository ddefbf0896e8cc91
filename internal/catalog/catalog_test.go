// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"denv-cli/pkg/denvfile"
	"denv-cli/pkg/platform"
)

const testIndex = `
[[snapshots]]
name = "stable-25.05"
description = "test snapshot"

[[snapshots.packages]]
name = "python"
version = "3.11"

[[snapshots.packages.builds]]
platform = "linux"
provider = "store"
path = "python-3.11-linux"

[[snapshots.packages.builds]]
platform = "macos"
provider = "store"
path = "python-3.11-macos"

[[snapshots.packages]]
name = "ripgrep"
version = "14.1"

[[snapshots.packages.builds]]
platform = "linux"
provider = "system"
binary = "rg"

[[snapshots.packages]]
name = "node"
version = "20"

[[snapshots.packages.builds]]
platform = "linux"
provider = "system"
binary = "node"

[[snapshots.packages]]
name = "node"
version = "22"

[[snapshots.packages.builds]]
platform = "linux"
provider = "system"
binary = "node"
`

func writeIndex(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load([]string{writeIndex(t, testIndex)})
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return c
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.toml"), []byte(testIndex), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load([]string{dir})
	if err != nil {
		t.Fatalf("failed to load catalog from dir: %v", err)
	}
	if len(c.SnapshotNames()) != 1 {
		t.Errorf("expected 1 snapshot, got %v", c.SnapshotNames())
	}
}

func TestResolveSnapshot(t *testing.T) {
	c := loadTestCatalog(t)

	snap, err := c.ResolveSnapshot("stable-25.05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Name != "stable-25.05" {
		t.Errorf("resolved wrong snapshot: %q", snap.Name)
	}
}

func TestResolveSnapshotNotFound(t *testing.T) {
	c := loadTestCatalog(t)

	_, err := c.ResolveSnapshot("nightly")
	if !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}

	var snapErr *SnapshotError
	if !errors.As(err, &snapErr) {
		t.Fatal("expected a *SnapshotError")
	}
	if len(snapErr.Known) != 1 || snapErr.Known[0] != "stable-25.05" {
		t.Errorf("expected known snapshots in error, got %v", snapErr.Known)
	}
}

func TestResolveSnapshotAmbiguous(t *testing.T) {
	// Same snapshot name provided by two separate index files.
	c, err := Load([]string{writeIndex(t, testIndex), writeIndex(t, testIndex)})
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	_, err = c.ResolveSnapshot("stable-25.05")
	if !errors.Is(err, ErrSnapshotAmbiguous) {
		t.Fatalf("expected ErrSnapshotAmbiguous, got %v", err)
	}
}

func TestResolvePackagePinned(t *testing.T) {
	c := loadTestCatalog(t)
	snap, _ := c.ResolveSnapshot("stable-25.05")

	r, err := snap.ResolvePackage("python@3.11", platform.HostLinux)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Id() != "python@3.11" {
		t.Errorf("unexpected id: %q", r.Id())
	}
	if r.Build.Provider != ProviderStore || r.Build.Path != "python-3.11-linux" {
		t.Errorf("unexpected build: %+v", r.Build)
	}
}

func TestResolvePackageUnpinned(t *testing.T) {
	c := loadTestCatalog(t)
	snap, _ := c.ResolveSnapshot("stable-25.05")

	r, err := snap.ResolvePackage("ripgrep", platform.HostLinux)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Version != "14.1" {
		t.Errorf("expected single available version, got %q", r.Version)
	}
}

func TestResolvePackageUnpinnedAmbiguous(t *testing.T) {
	c := loadTestCatalog(t)
	snap, _ := c.ResolveSnapshot("stable-25.05")

	// Two node versions exist, so the unpinned spec must not pick one.
	_, err := snap.ResolvePackage("node", platform.HostLinux)
	if !errors.Is(err, ErrPackageUnavailable) {
		t.Fatalf("expected ErrPackageUnavailable, got %v", err)
	}
}

func TestResolvePackageFailures(t *testing.T) {
	c := loadTestCatalog(t)
	snap, _ := c.ResolveSnapshot("stable-25.05")

	tests := []struct {
		name string
		spec denvfile.PackageSpec
		host platform.Host
	}{
		{"unknown name", "golang", platform.HostLinux},
		{"version not in snapshot", "python@3.12", platform.HostLinux},
		{"no build for platform", "ripgrep", platform.HostWindows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := snap.ResolvePackage(tt.spec, tt.host)
			if !errors.Is(err, ErrPackageUnavailable) {
				t.Fatalf("expected ErrPackageUnavailable, got %v", err)
			}
		})
	}
}

func TestResolveAllSamePackagesAcrossPlatforms(t *testing.T) {
	c := loadTestCatalog(t)
	snap, _ := c.ResolveSnapshot("stable-25.05")

	specs := []denvfile.PackageSpec{"python@3.11"}

	linux, err := snap.ResolveAll(specs, platform.HostLinux)
	if err != nil {
		t.Fatalf("linux resolution failed: %v", err)
	}
	mac, err := snap.ResolveAll(specs, platform.HostMac)
	if err != nil {
		t.Fatalf("macos resolution failed: %v", err)
	}

	if len(linux) != len(mac) {
		t.Fatalf("platform resolutions differ in length: %d vs %d", len(linux), len(mac))
	}
	for i := range linux {
		if linux[i].Id() != mac[i].Id() {
			t.Errorf("package identity differs across platforms: %q vs %q", linux[i].Id(), mac[i].Id())
		}
		if linux[i].Build.Path == mac[i].Build.Path {
			t.Errorf("expected platform-specific builds, both are %q", linux[i].Build.Path)
		}
	}
}

func TestLoadIndexValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty snapshot name", `
[[snapshots]]
name = ""
`},
		{"duplicate snapshot in one index", `
[[snapshots]]
name = "a"
[[snapshots]]
name = "a"
`},
		{"package without builds", `
[[snapshots]]
name = "a"
[[snapshots.packages]]
name = "python"
version = "3.11"
`},
		{"store build without path", `
[[snapshots]]
name = "a"
[[snapshots.packages]]
name = "python"
version = "3.11"
[[snapshots.packages.builds]]
platform = "linux"
provider = "store"
`},
		{"system build without binary", `
[[snapshots]]
name = "a"
[[snapshots.packages]]
name = "python"
version = "3.11"
[[snapshots.packages.builds]]
platform = "linux"
provider = "system"
`},
		{"bad platform", `
[[snapshots]]
name = "a"
[[snapshots.packages]]
name = "python"
version = "3.11"
[[snapshots.packages.builds]]
platform = "beos"
provider = "system"
binary = "python"
`},
		{"bad provider", `
[[snapshots]]
name = "a"
[[snapshots.packages]]
name = "python"
version = "3.11"
[[snapshots.packages.builds]]
platform = "linux"
provider = "registry"
path = "x"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadIndex(writeIndex(t, tt.content))
			if !errors.Is(err, ErrInvalidIndex) {
				t.Fatalf("expected ErrInvalidIndex, got %v", err)
			}
		})
	}
}
