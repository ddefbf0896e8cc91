// SPDX-License-Identifier: MPL-2.0

package denvfile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSnapshotRef is the sentinel error wrapped by InvalidSnapshotRefError.
var ErrInvalidSnapshotRef = errors.New("invalid snapshot reference")

type (
	// SnapshotRef is the pinned identifier of a package-set snapshot
	// (e.g. "stable-25.05"). It must resolve to exactly one snapshot in
	// the catalog; resolution itself lives in internal/catalog.
	SnapshotRef string

	// InvalidSnapshotRefError is returned when a SnapshotRef is empty or
	// whitespace-only. It wraps ErrInvalidSnapshotRef for errors.Is().
	InvalidSnapshotRefError struct {
		Value SnapshotRef
	}
)

// String returns the string representation of the SnapshotRef.
func (r SnapshotRef) String() string { return string(r) }

// IsValid returns whether the SnapshotRef is valid.
// A valid reference must be non-empty and not whitespace-only.
func (r SnapshotRef) IsValid() (bool, []error) {
	if strings.TrimSpace(string(r)) == "" {
		return false, []error{&InvalidSnapshotRefError{Value: r}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSnapshotRefError.
func (e *InvalidSnapshotRefError) Error() string {
	return fmt.Sprintf("invalid snapshot reference %q: must be non-empty", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidSnapshotRefError) Unwrap() error { return ErrInvalidSnapshotRef }
