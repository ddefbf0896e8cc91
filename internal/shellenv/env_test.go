// SPDX-License-Identifier: MPL-2.0

package shellenv

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"denv-cli/pkg/denvfile"
)

func testBuilder(hostEnv ...string) *EnvBuilder {
	return &EnvBuilder{Environ: func() []string { return hostEnv }}
}

func pathParts(env map[string]string) []string {
	return filepath.SplitList(env["PATH"])
}

func TestBuildWithoutVenv(t *testing.T) {
	b := testBuilder("PATH=/usr/bin:/bin", "HOME=/home/u")

	env, err := b.Build(BuildInput{
		Spec:          denvfile.ShellSpec{Snapshot: "stable-25.05"},
		ProjectDir:    "/proj",
		ProfileBinDir: "/proj/.denv/profile/bin",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := env[EnvVirtualEnv]; ok {
		t.Error("VIRTUAL_ENV must not be set without a venv")
	}
	parts := pathParts(env)
	if parts[0] != "/proj/.denv/profile/bin" {
		t.Errorf("expected profile bin first on PATH, got %v", parts)
	}
	if env[EnvSnapshot] != "stable-25.05" || env[EnvProjectDir] != "/proj" {
		t.Errorf("session markers missing: %v %v", env[EnvSnapshot], env[EnvProjectDir])
	}
}

func TestBuildWithVenvPutsVenvFirst(t *testing.T) {
	b := testBuilder("PATH=/usr/bin")

	env, err := b.Build(BuildInput{
		Spec:          denvfile.ShellSpec{Snapshot: "s"},
		ProjectDir:    "/proj",
		ProfileBinDir: "/proj/.denv/profile/bin",
		Venv:          &Venv{Dir: "/proj/.venv", BinDir: "/proj/.venv/bin"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parts := pathParts(env)
	if parts[0] != "/proj/.venv/bin" || parts[1] != "/proj/.denv/profile/bin" {
		t.Errorf("expected venv bin before profile bin, got %v", parts)
	}
	if env[EnvVirtualEnv] != "/proj/.venv" {
		t.Errorf("VIRTUAL_ENV = %q, want /proj/.venv", env[EnvVirtualEnv])
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	b := testBuilder("PATH=/usr/bin")
	in := BuildInput{
		Spec:          denvfile.ShellSpec{Snapshot: "s", EnvVars: map[string]string{"FOO": "bar"}},
		ProjectDir:    "/proj",
		ProfileBinDir: "/proj/.denv/profile/bin",
	}

	first, err := b.Build(in)
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Build(in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same inputs produced different environments")
	}
}

func TestBuildDoesNotGrowPath(t *testing.T) {
	// Host PATH already carries the profile bin, as happens when a denv
	// shell is entered from inside another denv shell.
	b := testBuilder("PATH=/proj/.denv/profile/bin:/usr/bin")

	env, err := b.Build(BuildInput{
		Spec:          denvfile.ShellSpec{Snapshot: "s"},
		ProjectDir:    "/proj",
		ProfileBinDir: "/proj/.denv/profile/bin",
	})
	if err != nil {
		t.Fatal(err)
	}

	count := 0
	for _, p := range pathParts(env) {
		if p == "/proj/.denv/profile/bin" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("profile bin appears %d times on PATH: %q", count, env["PATH"])
	}
}

func TestBuildRemovedVenvFlipsBack(t *testing.T) {
	b := testBuilder("PATH=/usr/bin", "VIRTUAL_ENV=/stale/.venv")
	in := BuildInput{
		Spec:          denvfile.ShellSpec{Snapshot: "s"},
		ProjectDir:    "/proj",
		ProfileBinDir: "/proj/.denv/profile/bin",
	}

	withVenv := in
	withVenv.Venv = &Venv{Dir: "/proj/.venv", BinDir: "/proj/.venv/bin"}
	env, err := b.Build(withVenv)
	if err != nil {
		t.Fatal(err)
	}
	if env[EnvVirtualEnv] != "/proj/.venv" {
		t.Fatalf("expected venv to be active, got %q", env[EnvVirtualEnv])
	}

	env, err = b.Build(in)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := env[EnvVirtualEnv]; ok {
		t.Error("VIRTUAL_ENV must be cleared once the venv is gone")
	}
	if strings.Contains(env["PATH"], ".venv") {
		t.Errorf("venv bin must leave PATH once the venv is gone: %q", env["PATH"])
	}
}

func TestBuildPrecedence(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("FROM_FILE=file\nSHARED=file"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := testBuilder("PATH=/usr/bin", "SHARED=host", "HOST_ONLY=host")

	env, err := b.Build(BuildInput{
		Spec: denvfile.ShellSpec{
			Snapshot: "s",
			EnvFiles: []string{".env"},
			EnvVars:  map[string]string{"SHARED": "vars"},
		},
		ProjectDir: dir,
	})
	if err != nil {
		t.Fatal(err)
	}

	if env["HOST_ONLY"] != "host" {
		t.Error("host environment must be inherited")
	}
	if env["FROM_FILE"] != "file" {
		t.Error("env files must be loaded")
	}
	if env["SHARED"] != "vars" {
		t.Errorf("env.vars must win over files and host, got %q", env["SHARED"])
	}
}

func TestBuildPureDropsHostEnv(t *testing.T) {
	b := testBuilder("PATH=/usr/bin", "HOME=/home/u", "TERM=xterm", "SECRET_TOKEN=hunter2")

	env, err := b.Build(BuildInput{
		Spec:          denvfile.ShellSpec{Snapshot: "s", EnvVars: map[string]string{"FOO": "bar"}},
		ProjectDir:    "/proj",
		ProfileBinDir: "/proj/.denv/profile/bin",
		Pure:          true,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := env["SECRET_TOKEN"]; ok {
		t.Error("pure build must drop non-allowlisted host variables")
	}
	if env["HOME"] != "/home/u" || env["TERM"] != "xterm" {
		t.Errorf("allowlisted variables must survive: HOME=%q TERM=%q", env["HOME"], env["TERM"])
	}
	if env["FOO"] != "bar" {
		t.Error("declared env.vars must still apply")
	}
	if pathParts(env)[0] != "/proj/.denv/profile/bin" {
		t.Errorf("profile bin must lead PATH, got %q", env["PATH"])
	}
}

func TestEnvToSliceSorted(t *testing.T) {
	got := EnvToSlice(map[string]string{"B": "2", "A": "1"})
	want := []string{"A=1", "B=2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("EnvToSlice() = %v, want %v", got, want)
	}
}
