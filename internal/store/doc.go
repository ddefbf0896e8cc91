// SPDX-License-Identifier: MPL-2.0

// Package store materializes resolved packages into a per-project profile
// and records the result in the lockfile.
//
// The store itself is a plain directory of package build trees. A profile
// is a bin directory of links into those trees (plus links to system
// binaries for system-provided builds); entering an environment only
// prepends the profile bin directory to PATH.
package store
