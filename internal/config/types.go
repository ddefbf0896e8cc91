// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidStoreDirPath is returned when a StoreDirPath value is whitespace-only.
	ErrInvalidStoreDirPath = errors.New("invalid store dir path")
	// ErrInvalidCatalogPath is returned when a CatalogPath value is whitespace-only.
	ErrInvalidCatalogPath = errors.New("invalid catalog path")
	// ErrInvalidShellPath is returned when a ShellPath value is whitespace-only.
	ErrInvalidShellPath = errors.New("invalid shell path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not
	// recognized. It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// StoreDirPath is a filesystem path to the denv package store.
	// The zero value ("") is valid and means "use the platform default".
	StoreDirPath string

	// InvalidStoreDirPathError is returned when a StoreDirPath value is
	// non-empty but whitespace-only.
	InvalidStoreDirPathError struct {
		Value StoreDirPath
	}

	// CatalogPath is a filesystem path to a catalog index file or a
	// directory of index files.
	CatalogPath string

	// InvalidCatalogPathError is returned when a CatalogPath value is
	// empty or whitespace-only.
	InvalidCatalogPathError struct {
		Value CatalogPath
	}

	// ShellPath is a filesystem path to the interactive shell binary.
	// The zero value ("") is valid and means "detect via $SHELL".
	ShellPath string

	// InvalidShellPathError is returned when a ShellPath value is
	// non-empty but whitespace-only.
	InvalidShellPathError struct {
		Value ShellPath
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// StoreDir overrides where materialized packages and profiles live.
		StoreDir StoreDirPath `json:"store_dir" mapstructure:"store_dir"`
		// CatalogPaths lists snapshot index files or directories, searched in order.
		CatalogPaths []CatalogPath `json:"catalog_paths" mapstructure:"catalog_paths"`
		// Shell overrides the interactive shell denv hands control to.
		Shell ShellPath `json:"shell" mapstructure:"shell"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the StoreDirPath.
func (p StoreDirPath) String() string { return string(p) }

// IsValid returns whether the StoreDirPath is valid.
// The zero value ("") is valid (means "use the platform default").
// Non-zero values must not be whitespace-only.
func (p StoreDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidStoreDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidStoreDirPathError.
func (e *InvalidStoreDirPathError) Error() string {
	return fmt.Sprintf("invalid store dir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidStoreDirPathError) Unwrap() error { return ErrInvalidStoreDirPath }

// String returns the string representation of the CatalogPath.
func (p CatalogPath) String() string { return string(p) }

// IsValid returns whether the CatalogPath is valid.
// A valid path must be non-empty and not whitespace-only.
func (p CatalogPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidCatalogPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCatalogPathError.
func (e *InvalidCatalogPathError) Error() string {
	return fmt.Sprintf("invalid catalog path %q: must be non-empty", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidCatalogPathError) Unwrap() error { return ErrInvalidCatalogPath }

// String returns the string representation of the ShellPath.
func (p ShellPath) String() string { return string(p) }

// IsValid returns whether the ShellPath is valid.
// The zero value ("") is valid (means "detect via $SHELL").
// Non-zero values must not be whitespace-only.
func (p ShellPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidShellPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidShellPathError.
func (e *InvalidShellPathError) Error() string {
	return fmt.Sprintf("invalid shell path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidShellPathError) Unwrap() error { return ErrInvalidShellPath }

// IsValid returns whether the Config has valid fields.
// It delegates to each typed field's IsValid; bool fields need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.StoreDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, p := range c.CatalogPaths {
		if valid, fieldErrs := p.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.Shell.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		StoreDir:     "", // Will use the platform data dir if empty
		CatalogPaths: []CatalogPath{},
		Shell:        "", // Will use $SHELL detection if empty
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
