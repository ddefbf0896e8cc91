// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	goruntime "runtime"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// Host platform identifiers as they appear in denvfiles and catalog indices.
const (
	// HostLinux represents Linux.
	HostLinux Host = "linux"
	// HostMac represents macOS.
	HostMac Host = "macos"
	// HostWindows represents Windows.
	HostWindows Host = "windows"
)

// ErrInvalidHost is the sentinel error wrapped by InvalidHostError.
var ErrInvalidHost = errors.New("invalid host platform")

type (
	// Host is a supported host platform identifier.
	Host string

	// InvalidHostError is returned when a Host value is not recognized.
	// It wraps ErrInvalidHost for errors.Is() compatibility.
	InvalidHostError struct {
		Value Host
	}
)

// Current returns the host platform the process is running on.
// Unknown operating systems are treated as Linux, which shares the
// POSIX shell conventions denv falls back to.
func Current() Host {
	switch goruntime.GOOS {
	case Linux:
		return HostLinux
	case Darwin:
		return HostMac
	case Windows:
		return HostWindows
	default:
		return HostLinux
	}
}

// All returns the supported host platforms in a stable order.
func All() []Host {
	return []Host{HostLinux, HostMac, HostWindows}
}

// String returns the string representation of the Host.
func (h Host) String() string { return string(h) }

// IsValid returns whether the Host is one of the supported platforms,
// and a list of validation errors if it is not.
func (h Host) IsValid() (bool, []error) {
	switch h {
	case HostLinux, HostMac, HostWindows:
		return true, nil
	default:
		return false, []error{&InvalidHostError{Value: h}}
	}
}

// Error implements the error interface for InvalidHostError.
func (e *InvalidHostError) Error() string {
	return fmt.Sprintf("invalid host platform %q (valid: linux, macos, windows)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidHostError) Unwrap() error { return ErrInvalidHost }
