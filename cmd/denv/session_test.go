// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"testing"

	"denv-cli/internal/issue"
	"denv-cli/pkg/denvfile"
)

func TestParseIssueIdRoutesInitScriptErrors(t *testing.T) {
	content := `snapshot: "s", packages: ["python"], shell: init: "a=(1 2 3)"`
	_, err := denvfile.ParseBytes([]byte(content), "denvfile.cue")
	if err == nil {
		t.Fatal("expected an init script syntax error")
	}
	if got := parseIssueId(err); got != issue.InitScriptSyntaxErrorId {
		t.Errorf("parseIssueId = %v, want InitScriptSyntaxErrorId", got)
	}
}

func TestParseIssueIdDefaultsToParseError(t *testing.T) {
	_, err := denvfile.ParseBytes([]byte(`packages: ["python"]`), "denvfile.cue")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if got := parseIssueId(err); got != issue.DenvfileParseErrorId {
		t.Errorf("parseIssueId = %v, want DenvfileParseErrorId", got)
	}
}
