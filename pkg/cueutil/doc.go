// SPDX-License-Identifier: MPL-2.0

// Package cueutil centralizes the CUE parsing flow shared by denvfile and
// tool-config loading: compile an embedded schema, unify it with user data,
// validate, and decode into a Go value. Validation errors are rewritten
// with JSON-path prefixes so users see which descriptor field is wrong.
package cueutil
