// SPDX-License-Identifier: MPL-2.0

package denvfile

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"denv-cli/pkg/cueutil"
)

// FileName is the conventional descriptor file name.
const FileName = "denvfile.cue"

//go:embed denvfile_schema.cue
var denvfileSchema string

// Parse reads and parses a denvfile from the given path.
func Parse(path string) (*Denvfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read denvfile at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses denvfile content from bytes.
// Uses cueutil.ParseAndDecodeString for the 3-step CUE parsing flow:
// compile schema → compile user data → validate and decode.
func ParseBytes(data []byte, path string) (*Denvfile, error) {
	result, err := cueutil.ParseAndDecodeString[Denvfile](
		denvfileSchema,
		data,
		"#Denvfile",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	d := result.Value
	d.FilePath = path

	if errs := d.Validate(); len(errs) > 0 {
		return nil, errs
	}

	return d, nil
}

// Discover walks from dir upward looking for a denvfile, mirroring how
// version-control tools locate their repository root. Returns the denvfile
// path, or os.ErrNotExist when no ancestor directory carries one.
func Discover(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	start := dir

	for {
		candidate := filepath.Join(dir, FileName)
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in %s or any parent directory: %w",
				FileName, start, os.ErrNotExist)
		}
		dir = parent
	}
}
