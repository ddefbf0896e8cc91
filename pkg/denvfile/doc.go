// SPDX-License-Identifier: MPL-2.0

// Package denvfile defines the schema and parsing for denvfile CUE files.
//
// A denvfile is a pure declarative environment descriptor: it pins a
// package-set snapshot, lists the packages that must be on the shell's
// PATH, and declares an init hook that runs at shell entry. Evaluating a
// denvfile has no side effects; all materialization belongs to the tool.
package denvfile
