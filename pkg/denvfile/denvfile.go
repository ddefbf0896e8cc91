// SPDX-License-Identifier: MPL-2.0

package denvfile

import (
	"fmt"
	"strings"

	"denv-cli/pkg/platform"
)

// DefaultVenvDir is the conventional virtual-environment directory name
// tested for at shell entry.
const DefaultVenvDir = ".venv"

type (
	// Denvfile is the parsed environment descriptor.
	Denvfile struct {
		// Description is a free-text label for the environment.
		Description string `json:"description,omitempty"`
		// Snapshot pins the package-set snapshot all packages resolve against.
		Snapshot SnapshotRef `json:"snapshot"`
		// Packages lists the packages that must be on the shell's PATH.
		Packages []PackageSpec `json:"packages"`
		// Env declares extra environment for the shell session.
		Env EnvConfig `json:"env,omitempty"`
		// Shell configures the entry hook and venv activation.
		Shell ShellConfig `json:"shell,omitempty"`
		// Platforms holds optional per-platform overlays.
		Platforms []PlatformOverlay `json:"platforms,omitempty"`

		// FilePath is where the denvfile was loaded from (set by Parse).
		FilePath string `json:"-"`
	}

	// EnvConfig declares environment variables and dotenv files.
	EnvConfig struct {
		// Vars are literal KEY=VALUE pairs.
		Vars map[string]string `json:"vars,omitempty"`
		// Files are dotenv file paths relative to the denvfile directory.
		// A trailing '?' marks a file as optional.
		Files []string `json:"files,omitempty"`
	}

	// ShellConfig configures shell-entry behavior.
	ShellConfig struct {
		// Init runs after the environment is constructed, before the
		// interactive shell takes over.
		Init InitScript `json:"init,omitempty"`
		// Venv configures virtual-environment activation.
		Venv VenvConfig `json:"venv,omitempty"`
	}

	// VenvConfig controls the virtual-environment activation hook.
	// The zero value means: look for ".venv" and activate it when present.
	VenvConfig struct {
		// Disabled turns the activation hook off entirely.
		Disabled bool `json:"disabled,omitempty"`
		// Dir overrides the virtual-environment directory name.
		Dir string `json:"dir,omitempty"`
	}

	// PlatformOverlay adds packages and environment for one host platform.
	PlatformOverlay struct {
		// Name selects the platform this overlay applies to.
		Name platform.Host `json:"name"`
		// Packages are appended to the root package list on this platform.
		Packages []PackageSpec `json:"packages,omitempty"`
		// Env overrides root env vars on this platform.
		Env map[string]string `json:"env,omitempty"`
	}

	// ShellSpec is the Shell Specification a descriptor evaluates to for a
	// given host platform: the flattened view the tool materializes.
	ShellSpec struct {
		Description string
		Snapshot    SnapshotRef
		Packages    []PackageSpec
		EnvVars     map[string]string
		EnvFiles    []string
		Init        InitScript
		Venv        VenvConfig
		Host        platform.Host
	}

	// ValidationErrors aggregates all descriptor validation failures so a
	// user sees every problem at once rather than one per invocation.
	ValidationErrors []error
)

// VenvDir returns the effective virtual-environment directory name.
func (v VenvConfig) VenvDir() string {
	if v.Dir != "" {
		return v.Dir
	}
	return DefaultVenvDir
}

// GetVars returns the declared env vars (never nil).
func (e EnvConfig) GetVars() map[string]string {
	if e.Vars == nil {
		return map[string]string{}
	}
	return e.Vars
}

// GetFiles returns the declared dotenv file paths.
func (e EnvConfig) GetFiles() []string { return e.Files }

// ForHost evaluates the descriptor for the given host platform, producing
// the flattened Shell Specification. Evaluation is pure: it reads nothing
// from the filesystem and mutates nothing.
func (d *Denvfile) ForHost(host platform.Host) ShellSpec {
	spec := ShellSpec{
		Description: d.Description,
		Snapshot:    d.Snapshot,
		Packages:    append([]PackageSpec(nil), d.Packages...),
		EnvVars:     map[string]string{},
		EnvFiles:    append([]string(nil), d.Env.Files...),
		Init:        d.Shell.Init,
		Venv:        d.Shell.Venv,
		Host:        host,
	}

	for k, v := range d.Env.GetVars() {
		spec.EnvVars[k] = v
	}

	for _, overlay := range d.Platforms {
		if overlay.Name != host {
			continue
		}
		spec.Packages = appendMissingPackages(spec.Packages, overlay.Packages)
		for k, v := range overlay.Env {
			spec.EnvVars[k] = v
		}
	}

	return spec
}

// SupportedPlatforms returns the platforms the descriptor can evaluate for.
// A denvfile with no overlays supports every platform; overlays only add,
// they never restrict.
func (d *Denvfile) SupportedPlatforms() []platform.Host {
	return platform.All()
}

// Validate checks the descriptor beyond what the CUE schema can express
// and returns all collected errors.
func (d *Denvfile) Validate() ValidationErrors {
	var errs ValidationErrors

	if valid, fieldErrs := d.Snapshot.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}

	if len(d.Packages) == 0 {
		errs = append(errs, fmt.Errorf("packages: at least one package is required"))
	}
	errs = append(errs, validatePackages("packages", d.Packages)...)

	if valid, fieldErrs := d.Shell.Init.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}

	if d.Shell.Venv.Dir != "" && strings.TrimSpace(d.Shell.Venv.Dir) == "" {
		errs = append(errs, fmt.Errorf("shell.venv.dir: must not be whitespace-only"))
	}

	seen := map[platform.Host]bool{}
	for i, overlay := range d.Platforms {
		if valid, fieldErrs := overlay.Name.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
		if seen[overlay.Name] {
			errs = append(errs, fmt.Errorf("platforms[%d]: duplicate overlay for platform %q", i, overlay.Name))
		}
		seen[overlay.Name] = true
		errs = append(errs, validatePackages(fmt.Sprintf("platforms[%d].packages", i), overlay.Packages)...)
	}

	return errs
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (v ValidationErrors) Unwrap() []error { return v }

// Error implements the error interface for ValidationErrors.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d validation error(s):\n  %s", len(v), strings.Join(msgs, "\n  "))
}

// validatePackages validates each spec and rejects duplicate package names
// within one list; the same name twice would make PATH ordering ambiguous.
func validatePackages(field string, specs []PackageSpec) []error {
	var errs []error
	seen := map[string]int{}
	for i, spec := range specs {
		if valid, fieldErrs := spec.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
			continue
		}
		if firstIdx, dup := seen[spec.Name()]; dup {
			errs = append(errs, fmt.Errorf("%s[%d]: duplicate package %q (same as %s[%d])",
				field, i, spec.Name(), field, firstIdx))
			continue
		}
		seen[spec.Name()] = i
	}
	return errs
}

// appendMissingPackages appends overlay packages whose names are not
// already present in base. Overlay pins never override root pins.
func appendMissingPackages(base, extra []PackageSpec) []PackageSpec {
	names := map[string]bool{}
	for _, p := range base {
		names[p.Name()] = true
	}
	for _, p := range extra {
		if !names[p.Name()] {
			base = append(base, p)
			names[p.Name()] = true
		}
	}
	return base
}
