// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error context: the ActionableError
// type with operation/resource/suggestion fields, and a catalog of known
// failure modes rendered as markdown help cards.
package issue
