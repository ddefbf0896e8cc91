// SPDX-License-Identifier: MPL-2.0

package denvfile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPackageSpec is the sentinel error wrapped by InvalidPackageSpecError.
var ErrInvalidPackageSpec = errors.New("invalid package spec")

type (
	// PackageSpec identifies a package within a snapshot, in the form
	// "name" or "name@version" (e.g. "python@3.11"). Versions are opaque
	// labels resolved by exact lookup; denv performs no version solving.
	PackageSpec string

	// InvalidPackageSpecError is returned when a PackageSpec is malformed.
	// It wraps ErrInvalidPackageSpec for errors.Is() compatibility.
	InvalidPackageSpecError struct {
		Value  PackageSpec
		Reason string
	}
)

// String returns the string representation of the PackageSpec.
func (p PackageSpec) String() string { return string(p) }

// Name returns the package name portion of the spec.
func (p PackageSpec) Name() string {
	name, _, _ := strings.Cut(string(p), "@")
	return name
}

// Version returns the version portion of the spec, or "" when unpinned.
func (p PackageSpec) Version() string {
	_, version, _ := strings.Cut(string(p), "@")
	return version
}

// IsValid returns whether the PackageSpec is well formed, and a list of
// validation errors if it is not. A valid spec has a non-empty name, at
// most one '@', and a non-empty version when '@' is present.
func (p PackageSpec) IsValid() (bool, []error) {
	s := string(p)
	if strings.TrimSpace(s) == "" {
		return false, []error{&InvalidPackageSpecError{Value: p, Reason: "must be non-empty"}}
	}
	if strings.Count(s, "@") > 1 {
		return false, []error{&InvalidPackageSpecError{Value: p, Reason: "at most one '@' separator allowed"}}
	}
	name, version, pinned := strings.Cut(s, "@")
	if name == "" {
		return false, []error{&InvalidPackageSpecError{Value: p, Reason: "package name must not be empty"}}
	}
	if strings.ContainsAny(name, " \t") {
		return false, []error{&InvalidPackageSpecError{Value: p, Reason: "package name must not contain whitespace"}}
	}
	if pinned && version == "" {
		return false, []error{&InvalidPackageSpecError{Value: p, Reason: "version after '@' must not be empty"}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPackageSpecError.
func (e *InvalidPackageSpecError) Error() string {
	return fmt.Sprintf("invalid package spec %q: %s", e.Value, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidPackageSpecError) Unwrap() error { return ErrInvalidPackageSpec }
