// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a cataloged failure mode.
type Id int

const (
	DenvfileNotFoundId Id = iota + 1
	DenvfileParseErrorId
	SnapshotNotFoundId
	PackageUnavailableId
	InitScriptSyntaxErrorId
	ActivationScriptMissingId
	ShellNotFoundId
	ConfigLoadFailedId
)

type (
	// MarkdownMsg is markdown text rendered into a terminal help card.
	MarkdownMsg string

	// HttpLink is a documentation or external reference URL.
	HttpLink string

	// Issue is one cataloged failure mode with rendered help text.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
		extLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue's markdown with the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	denvfileNotFoundIssue = &Issue{
		id: DenvfileNotFoundId,
		mdMsg: `
# No denvfile found!

We searched the current directory and all parent directories but could
not find a denvfile.cue.

## Things you can try:
- Create a denvfile in your project directory:
~~~
$ denv init
~~~

- Or change into a project that has one:
~~~
$ cd /path/to/your/project
$ denv shell
~~~

## Example denvfile:
~~~cue
description: "my project"
snapshot: "stable-25.05"
packages: ["python@3.11"]
~~~`,
	}

	denvfileParseErrorIssue = &Issue{
		id: DenvfileParseErrorId,
		mdMsg: `
# Failed to parse denvfile!

Your denvfile contains syntax errors or invalid configuration.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- A package spec that is not "name" or "name@version"
- An init script that is not valid shell syntax

## Things you can try:
- Check the error message above for the specific field
- Run with verbose mode for more details:
~~~
$ denv --verbose view
~~~`,
	}

	snapshotNotFoundIssue = &Issue{
		id: SnapshotNotFoundId,
		mdMsg: `
# Snapshot not found!

The snapshot reference in your denvfile did not resolve to exactly one
snapshot in the catalog.

## Things you can try:
- List the snapshots your catalog provides:
~~~
$ denv view --snapshots
~~~

- Check the reference for typos
- Add the catalog index that provides this snapshot to your config:
~~~cue
catalog_paths: ["/path/to/index.toml"]
~~~`,
	}

	packageUnavailableIssue = &Issue{
		id: PackageUnavailableId,
		mdMsg: `
# Package unavailable!

A package in your denvfile does not exist in the pinned snapshot for
your platform.

## Things you can try:
- Check the package name and version for typos
- Inspect what the snapshot provides:
~~~
$ denv view
~~~

- Pin a different snapshot that carries the package
- Add a platform overlay if the package only exists elsewhere`,
	}

	initScriptSyntaxErrorIssue = &Issue{
		id: InitScriptSyntaxErrorId,
		mdMsg: `
# Init script syntax error!

The shell.init hook in your denvfile is not valid shell syntax, so no
shell was constructed.

## Things you can try:
- Check the reported line for unclosed quotes or missing keywords
- Keep the hook POSIX-compatible; it runs before your interactive shell
- Validate it standalone:
~~~
$ sh -n yourscript.sh
~~~`,
	}

	activationScriptMissingIssue = &Issue{
		id: ActivationScriptMissingId,
		mdMsg: `
# Virtual environment is broken!

The virtual-environment directory exists but its activation script is
missing, so activation would fail mid-session.

## Things you can try:
- Recreate the virtual environment:
~~~
$ rm -rf .venv
$ python -m venv .venv
~~~

- Or disable the activation hook in your denvfile:
~~~cue
shell: venv: disabled: true
~~~`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

Could not find an interactive shell to hand control to.

## Shells we look for:
- Linux/macOS: $SHELL, bash, sh
- Windows: pwsh, powershell, cmd

## Things you can try:
- Install bash or another POSIX shell
- Set the SHELL environment variable
- Force a shell explicitly:
~~~
$ denv shell --shell /bin/bash
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your denv config file could not be loaded.

## Things you can try:
- Check that the file contains valid CUE syntax
- Show the effective configuration:
~~~
$ denv config show
~~~

- Recreate the default config:
~~~
$ denv config init
~~~`,
	}

	issues = map[Id]*Issue{
		denvfileNotFoundIssue.Id():        denvfileNotFoundIssue,
		denvfileParseErrorIssue.Id():      denvfileParseErrorIssue,
		snapshotNotFoundIssue.Id():        snapshotNotFoundIssue,
		packageUnavailableIssue.Id():      packageUnavailableIssue,
		initScriptSyntaxErrorIssue.Id():   initScriptSyntaxErrorIssue,
		activationScriptMissingIssue.Id(): activationScriptMissingIssue,
		shellNotFoundIssue.Id():           shellNotFoundIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
	}
)

// Values returns all cataloged issues.
func Values() []*Issue {
	return maps.Values(issues)
}

// Get returns the issue for id, or nil when the id is not cataloged.
func Get(id Id) *Issue {
	return issues[id]
}
