// SPDX-License-Identifier: MPL-2.0

package shellenv

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestVirtualRunnerEcho(t *testing.T) {
	var stdout bytes.Buffer

	r := NewVirtualRunner()
	result := r.Run(context.Background(), RunOptions{
		Command: "echo hello",
		Env:     map[string]string{"PATH": "/usr/bin"},
		WorkDir: t.TempDir(),
		Stdout:  &stdout,
	})

	if result.Error != nil {
		t.Fatalf("unexpected error: %v", result.Error)
	}
	if result.ExitCode != 0 {
		t.Errorf("exit code = %d, want 0", result.ExitCode)
	}
	if strings.TrimSpace(stdout.String()) != "hello" {
		t.Errorf("stdout = %q, want hello", stdout.String())
	}
}

func TestVirtualRunnerExitCode(t *testing.T) {
	r := NewVirtualRunner()
	result := r.Run(context.Background(), RunOptions{
		Command: "exit 42",
		Env:     map[string]string{},
		WorkDir: t.TempDir(),
	})

	if result.ExitCode != 42 {
		t.Errorf("exit code = %d, want 42", result.ExitCode)
	}
	if result.Error != nil {
		t.Errorf("plain non-zero exit is not an error: %v", result.Error)
	}
}

func TestVirtualRunnerSeesEnv(t *testing.T) {
	var stdout bytes.Buffer

	r := NewVirtualRunner()
	result := r.Run(context.Background(), RunOptions{
		Command: "echo $GREETING",
		Env:     map[string]string{"GREETING": "hi"},
		WorkDir: t.TempDir(),
		Stdout:  &stdout,
	})

	if result.ExitCode != 0 {
		t.Fatalf("exit code = %d", result.ExitCode)
	}
	if strings.TrimSpace(stdout.String()) != "hi" {
		t.Errorf("stdout = %q, want hi", stdout.String())
	}
}

func TestQuoteCommand(t *testing.T) {
	tests := []struct {
		name   string
		argv   []string
		flavor Flavor
		want   string
	}{
		{"plain words", []string{"make", "test"}, FlavorPosix, "make test"},
		{"embedded space", []string{"echo", "a b"}, FlavorPosix, "echo 'a b'"},
		{"powershell verbatim", []string{"echo", "hi"}, FlavorPowerShell, "echo hi"},
		{"cmd verbatim", []string{"echo", "hi"}, FlavorCmd, "echo hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QuoteCommand(tt.argv, tt.flavor)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("QuoteCommand(%v) = %q, want %q", tt.argv, got, tt.want)
			}
		})
	}
}

func TestVirtualRunnerQuotedCommandPreservesArgs(t *testing.T) {
	var stdout bytes.Buffer

	// Without quoting, "a b" would re-split and $PATH would expand.
	command, err := QuoteCommand([]string{"echo", "a b", "$PATH"}, FlavorPosix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := NewVirtualRunner()
	result := r.Run(context.Background(), RunOptions{
		Command: command,
		Env:     map[string]string{"PATH": "/usr/bin"},
		WorkDir: t.TempDir(),
		Stdout:  &stdout,
	})

	if result.ExitCode != 0 {
		t.Fatalf("exit code = %d, error = %v", result.ExitCode, result.Error)
	}
	if strings.TrimSpace(stdout.String()) != "a b $PATH" {
		t.Errorf("stdout = %q, want \"a b $PATH\"", stdout.String())
	}
}

func TestVirtualRunnerSyntaxError(t *testing.T) {
	r := NewVirtualRunner()
	result := r.Run(context.Background(), RunOptions{
		Command: "if then fi",
		Env:     map[string]string{},
		WorkDir: t.TempDir(),
	})

	if result.Error == nil {
		t.Error("expected a parse error")
	}
	if result.ExitCode == 0 {
		t.Error("parse failures must not report success")
	}
}

