// SPDX-License-Identifier: MPL-2.0

// Package shellenv assembles the environment a denv shell runs in and
// spawns shells and commands inside it.
//
// Environment assembly is layered: the host environment is the base, the
// denvfile's env files and vars are merged on top, then the project
// profile's bin directory is prepended to PATH. Virtualenv activation is
// the last layer and is driven purely by the presence of the venv
// directory at entry time.
package shellenv
