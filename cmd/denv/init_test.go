// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"denv-cli/pkg/denvfile"
)

func TestGeneratedTemplatesAreValidDenvfiles(t *testing.T) {
	for _, template := range []string{"default", "minimal"} {
		t.Run(template, func(t *testing.T) {
			content := generateDenvfile(template)

			df, err := denvfile.ParseBytes([]byte(content), denvfile.FileName)
			if err != nil {
				t.Fatalf("generated %s template does not parse: %v", template, err)
			}
			if df.Snapshot == "" {
				t.Error("generated denvfile must pin a snapshot")
			}
			if len(df.Packages) == 0 {
				t.Error("generated denvfile must list at least one package")
			}
		})
	}
}
