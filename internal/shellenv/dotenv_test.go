// SPDX-License-Identifier: MPL-2.0

package shellenv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseEnvFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string]string
		wantErr string
	}{
		{
			name:    "simple values",
			content: "FOO=bar\nBAZ=qux",
			want:    map[string]string{"FOO": "bar", "BAZ": "qux"},
		},
		{
			name:    "comments and blanks",
			content: "# comment\n\nFOO=bar\n  # indented comment\n",
			want:    map[string]string{"FOO": "bar"},
		},
		{
			name:    "export prefix",
			content: "export FOO=bar",
			want:    map[string]string{"FOO": "bar"},
		},
		{
			name:    "double quoted with escapes",
			content: `FOO="line1\nline2\t\"quoted\""`,
			want:    map[string]string{"FOO": "line1\nline2\t\"quoted\""},
		},
		{
			name:    "single quoted literal",
			content: `FOO='a\nb$HOME'`,
			want:    map[string]string{"FOO": `a\nb$HOME`},
		},
		{
			name:    "empty value",
			content: "FOO=",
			want:    map[string]string{"FOO": ""},
		},
		{
			name:    "inline comment on unquoted value",
			content: "FOO=bar # trailing",
			want:    map[string]string{"FOO": "bar"},
		},
		{
			name:    "windows line endings",
			content: "FOO=bar\r\nBAZ=qux\r\n",
			want:    map[string]string{"FOO": "bar", "BAZ": "qux"},
		},
		{
			name:    "missing equals",
			content: "FOO",
			wantErr: "missing '='",
		},
		{
			name:    "empty key",
			content: "=bar",
			wantErr: "empty variable name",
		},
		{
			name:    "unterminated double quote",
			content: `FOO="bar`,
			wantErr: "unterminated double quote",
		},
		{
			name:    "unterminated single quote",
			content: `FOO='bar`,
			wantErr: "unterminated single quote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{}
			err := ParseEnvFile(env, []byte(tt.content), ".env")

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for k, v := range tt.want {
				if env[k] != v {
					t.Errorf("env[%q] = %q, want %q", k, env[k], v)
				}
			}
		})
	}
}

func TestLoadEnvFileOptional(t *testing.T) {
	env := map[string]string{}

	if err := LoadEnvFile(env, "missing.env?", t.TempDir()); err != nil {
		t.Errorf("optional missing file must not error, got %v", err)
	}
	if err := LoadEnvFile(env, "missing.env", t.TempDir()); err == nil {
		t.Error("required missing file must error")
	}
}

func TestLoadEnvFileRelativeToBase(t *testing.T) {
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, ".env"), []byte("FOO=bar"), 0o644); err != nil {
		t.Fatal(err)
	}

	env := map[string]string{}
	if err := LoadEnvFile(env, ".env", base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env["FOO"] != "bar" {
		t.Errorf("env[FOO] = %q, want bar", env["FOO"])
	}
}

func TestLoadEnvFileLaterWins(t *testing.T) {
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "a.env"), []byte("FOO=first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "b.env"), []byte("FOO=second"), 0o644); err != nil {
		t.Fatal(err)
	}

	env := map[string]string{}
	for _, f := range []string{"a.env", "b.env"} {
		if err := LoadEnvFile(env, f, base); err != nil {
			t.Fatal(err)
		}
	}
	if env["FOO"] != "second" {
		t.Errorf("env[FOO] = %q, want second", env["FOO"])
	}
}
