// SPDX-License-Identifier: MPL-2.0

// Package config handles tool configuration: where the package store and
// catalog indices live, which shell to hand control to, and UI behavior.
// Config files are CUE, validated against an embedded schema and merged
// into Viper on top of defaults.
package config
