// SPDX-License-Identifier: MPL-2.0

package shellenv

import (
	"strings"
	"testing"
)

func TestBuildHookPosix(t *testing.T) {
	venv := &Venv{Dir: "/p/.venv", ActivationScript: "/p/.venv/bin/activate"}

	hook, err := BuildHook("echo ready", venv, FlavorPosix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(hook, "echo ready\n") {
		t.Errorf("hook must carry the init script: %q", hook)
	}
	if !strings.Contains(hook, ". /p/.venv/bin/activate") {
		t.Errorf("hook must source the activation script: %q", hook)
	}
	if strings.Index(hook, "echo ready") > strings.Index(hook, "activate") {
		t.Error("init script must run before venv activation")
	}
}

func TestBuildHookPosixQuotesPaths(t *testing.T) {
	venv := &Venv{Dir: "/p dir/.venv", ActivationScript: "/p dir/.venv/bin/activate"}

	hook, err := BuildHook("", venv, FlavorPosix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(hook, ". /p dir/") {
		t.Errorf("activation path with spaces must be quoted: %q", hook)
	}
}

func TestBuildHookWithoutVenv(t *testing.T) {
	hook, err := BuildHook("echo ready", nil, FlavorPosix)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(hook, "activate") {
		t.Errorf("no venv means no activation line: %q", hook)
	}
}

func TestBuildHookFish(t *testing.T) {
	venv := &Venv{Dir: "/p/.venv", ActivationScript: "/p/.venv/bin/activate.fish"}

	hook, err := BuildHook("echo ready", venv, FlavorFish)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(hook, "source '/p/.venv/bin/activate.fish'") {
		t.Errorf("fish hook must source the fish activation script: %q", hook)
	}
	if strings.Contains(hook, "echo ready") {
		t.Errorf("fish hook must not embed the POSIX init script: %q", hook)
	}
}

func TestBuildHookPowerShell(t *testing.T) {
	venv := &Venv{Dir: `C:\p\.venv`, ActivationScript: `C:\p\.venv\Scripts\Activate.ps1`}

	hook, err := BuildHook("", venv, FlavorPowerShell)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(hook, `& 'C:\p\.venv\Scripts\Activate.ps1'`) {
		t.Errorf("powershell hook must dot-invoke the activation script: %q", hook)
	}
}

func TestHookSkipsInit(t *testing.T) {
	if HookSkipsInit("echo x", FlavorPosix) {
		t.Error("POSIX hooks carry the init script")
	}
	if !HookSkipsInit("echo x", FlavorFish) {
		t.Error("fish hooks skip the init script")
	}
	if HookSkipsInit("", FlavorFish) {
		t.Error("empty init scripts are never skipped")
	}
}
