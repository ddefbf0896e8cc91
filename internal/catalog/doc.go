// SPDX-License-Identifier: MPL-2.0

// Package catalog loads package-set snapshot indices and resolves denvfile
// package specs against them.
//
// A snapshot is a pinned, immutable view of available packages. Resolution
// is exact lookup only: a snapshot reference must match exactly one
// snapshot, and a package spec must match exactly one entry within it.
// There is no version solving.
package catalog
