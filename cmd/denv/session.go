// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"denv-cli/internal/catalog"
	"denv-cli/internal/config"
	"denv-cli/internal/issue"
	"denv-cli/internal/shellenv"
	"denv-cli/internal/store"
	"denv-cli/pkg/denvfile"
	"denv-cli/pkg/platform"

	"github.com/charmbracelet/log"
)

type (
	// session is one fully constructed environment: descriptor, resolved
	// packages, materialized profile, venv state and assembled process
	// environment. Every environment-facing command builds one.
	session struct {
		pure       bool
		cfg        *config.Config
		denv       *denvfile.Denvfile
		spec       denvfile.ShellSpec
		projectDir string
		snapshot   *catalog.Snapshot
		resolved   []catalog.ResolvedPackage
		profile    *store.Profile
		shell      shellenv.Shell
		venv       *shellenv.Venv
		env        map[string]string
	}

	// sessionOptions tweak session construction per command.
	sessionOptions struct {
		// shellOverride forces a specific shell binary (--shell flag).
		shellOverride string
		// skipMaterialize resolves without touching the filesystem profile.
		skipMaterialize bool
		// platformOverride resolves for another platform (--platform flag).
		// Only meaningful together with skipMaterialize.
		platformOverride platform.Host
		// pure drops the host environment except for a small allowlist.
		pure bool
	}
)

// configProvider loads tool configuration for every command.
var configProvider = config.NewProvider()

// loadConfig loads the tool configuration, honoring the --config flag.
func loadConfig(ctx context.Context) (*config.Config, error) {
	return configProvider.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
}

// buildSession runs the full pipeline: discover, parse, resolve,
// materialize, inspect venv, assemble environment.
func buildSession(ctx context.Context, opts sessionOptions) (*session, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	s := &session{cfg: cfg, pure: opts.pure}
	if err := s.loadDenvfile(opts.platformOverride); err != nil {
		return nil, err
	}
	if err := s.resolvePackages(); err != nil {
		return nil, err
	}
	if !opts.skipMaterialize {
		if err := s.materialize(); err != nil {
			return nil, err
		}
	}
	if err := s.prepareShell(opts.shellOverride); err != nil {
		return nil, err
	}
	if err := s.assembleEnv(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadDenvfile discovers and parses the project descriptor.
func (s *session) loadDenvfile(host platform.Host) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	path, err := denvfile.Discover(cwd)
	if err != nil {
		return newServiceError(err, issue.DenvfileNotFoundId,
			ErrorStyle.Render("Error: ")+"no denvfile found\n")
	}

	df, err := denvfile.Parse(path)
	if err != nil {
		return newServiceError(err, parseIssueId(err),
			ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose)+"\n")
	}

	if host == "" {
		host = platform.Current()
	} else if valid, errs := host.IsValid(); !valid {
		return errs[0]
	}

	s.denv = df
	s.projectDir = filepath.Dir(path)
	s.spec = df.ForHost(host)
	return nil
}

// parseIssueId picks the help card for a denvfile parse failure. Init
// script syntax errors get their own card; everything else is a generic
// parse error.
func parseIssueId(err error) issue.Id {
	if errors.Is(err, denvfile.ErrInvalidInitScript) {
		return issue.InitScriptSyntaxErrorId
	}
	return issue.DenvfileParseErrorId
}

// resolvePackages loads the catalog and binds every package spec.
func (s *session) resolvePackages() error {
	cat, err := catalog.Load(s.catalogPaths())
	if err != nil {
		return newServiceError(err, issue.ConfigLoadFailedId,
			ErrorStyle.Render("Error: ")+err.Error()+"\n")
	}

	snapshot, err := cat.ResolveSnapshot(s.spec.Snapshot)
	if err != nil {
		return newServiceError(err, issue.SnapshotNotFoundId,
			ErrorStyle.Render("Error: ")+err.Error()+"\n")
	}

	resolved, err := snapshot.ResolveAll(s.spec.Packages, s.spec.Host)
	if err != nil {
		return newServiceError(err, issue.PackageUnavailableId,
			ErrorStyle.Render("Error: ")+err.Error()+"\n")
	}

	s.snapshot = snapshot
	s.resolved = resolved
	return nil
}

// catalogPaths returns the configured catalog paths plus the default
// catalog directory under the config dir, when it exists.
func (s *session) catalogPaths() []string {
	var paths []string
	for _, p := range s.cfg.CatalogPaths {
		paths = append(paths, p.String())
	}

	if dir, err := config.ConfigDir(); err == nil {
		defaultDir := filepath.Join(dir, "catalog")
		if info, err := os.Stat(defaultDir); err == nil && info.IsDir() {
			paths = append(paths, defaultDir)
		}
	}
	return paths
}

// materialize builds the project profile and refreshes the lockfile.
func (s *session) materialize() error {
	storeDir := s.cfg.StoreDir.String()
	if storeDir == "" {
		dir, err := config.DefaultStoreDir()
		if err != nil {
			return fmt.Errorf("failed to determine store directory: %w", err)
		}
		storeDir = dir
	}

	profile, err := store.New(storeDir).Materialize(s.projectDir, s.resolved)
	if err != nil {
		return newServiceError(err, issue.PackageUnavailableId,
			ErrorStyle.Render("Error: ")+err.Error()+"\n")
	}
	s.profile = profile

	// The lockfile always reflects the last successful materialization.
	lock := store.NewLockfile(s.snapshot.Name, s.resolved)
	if err := lock.Write(s.projectDir); err != nil {
		log.Warn("failed to write lockfile", "error", err)
	}
	return nil
}

// prepareShell resolves the shell and inspects the venv for its flavor.
func (s *session) prepareShell(override string) error {
	preferred := override
	if preferred == "" {
		preferred = s.cfg.Shell.String()
	}

	shell, err := shellenv.DetectShell(preferred)
	if err != nil {
		return newServiceError(err, issue.ShellNotFoundId,
			ErrorStyle.Render("Error: ")+err.Error()+"\n")
	}
	s.shell = shell

	venv, err := shellenv.InspectVenv(s.projectDir, s.spec.Venv, shell.Flavor)
	if err != nil {
		if errors.Is(err, shellenv.ErrActivationScriptMissing) {
			return newServiceError(err, issue.ActivationScriptMissingId,
				ErrorStyle.Render("Error: ")+err.Error()+"\n")
		}
		return err
	}
	s.venv = venv
	return nil
}

// assembleEnv builds the final process environment.
func (s *session) assembleEnv() error {
	profileBin := ""
	if s.profile != nil {
		profileBin = s.profile.BinDir
	}

	env, err := shellenv.NewEnvBuilder().Build(shellenv.BuildInput{
		Spec:          s.spec,
		ProjectDir:    s.projectDir,
		ProfileBinDir: profileBin,
		Venv:          s.venv,
		Pure:          s.pure,
	})
	if err != nil {
		return fmt.Errorf("failed to build environment: %w", err)
	}
	s.env = env
	return nil
}

// hook renders the shell-entry hook for this session.
func (s *session) hook() (string, error) {
	if shellenv.HookSkipsInit(s.spec.Init, s.shell.Flavor) {
		log.Warn("init script is POSIX-only and will be skipped", "shell", s.shell.Name())
	}
	return shellenv.BuildHook(s.spec.Init, s.venv, s.shell.Flavor)
}
