// SPDX-License-Identifier: MPL-2.0

package denvfile

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// ErrInvalidInitScript is the sentinel error wrapped by InvalidInitScriptError.
var ErrInvalidInitScript = errors.New("invalid init script")

type (
	// InitScript is the sequence of shell commands run at shell entry.
	// It must be valid POSIX shell syntax; validation happens at parse
	// time so a broken hook aborts before any shell is constructed.
	InitScript string

	// InvalidInitScriptError is returned when an InitScript fails to parse.
	// It wraps ErrInvalidInitScript for errors.Is() compatibility.
	InvalidInitScriptError struct {
		Cause error
	}
)

// String returns the string representation of the InitScript.
func (s InitScript) String() string { return string(s) }

// IsEmpty reports whether the script contains no commands at all.
func (s InitScript) IsEmpty() bool { return strings.TrimSpace(string(s)) == "" }

// IsValid returns whether the InitScript parses as POSIX shell syntax,
// and a list of validation errors if it does not. The empty script is valid.
func (s InitScript) IsValid() (bool, []error) {
	if s.IsEmpty() {
		return true, nil
	}
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	_, err := parser.Parse(strings.NewReader(string(s)), "shell.init")
	if err != nil {
		return false, []error{&InvalidInitScriptError{Cause: err}}
	}
	return true, nil
}

// Error implements the error interface for InvalidInitScriptError.
func (e *InvalidInitScriptError) Error() string {
	return fmt.Sprintf("invalid init script: %v", e.Cause)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidInitScriptError) Unwrap() error { return ErrInvalidInitScript }
