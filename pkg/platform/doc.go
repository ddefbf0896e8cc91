// SPDX-License-Identifier: MPL-2.0

// Package platform identifies the host platform a development shell is
// materialized for. The platform is the only implicit input of descriptor
// evaluation: the same denvfile resolves to platform-appropriate builds
// on each supported operating system.
package platform
