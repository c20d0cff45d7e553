package app

import (
	"github.com/zx06/xacct/internal/errors"
	"github.com/zx06/xacct/internal/manifest"
	"github.com/zx06/xacct/internal/output"
)

type App struct {
	Version string
	Commit  string
	Date    string
}

func New(version, commit, date string) App {
	return App{Version: version, Commit: commit, Date: date}
}

func (a App) BuildManifest() manifest.Manifest {
	globalFlags := []manifest.FlagSpec{
		{Name: "config", Default: "", Description: "Config file path (YAML); default: ./xacct.yaml or $HOME/.config/xacct/xacct.yaml"},
		{Name: "service", Shorthand: "s", Env: "XACCT_SERVICE", Default: "xacct", Description: "Keyring service namespace"},
		{Name: "format", Shorthand: "f", Env: "XACCT_FORMAT", Default: "auto", Description: "Output format: json|yaml|table|csv|auto"},
	}
	with := func(extra ...manifest.FlagSpec) []manifest.FlagSpec {
		return append(append([]manifest.FlagSpec{}, globalFlags...), extra...)
	}
	return manifest.Manifest{
		SchemaVersion: output.SchemaVersion,
		Commands: []manifest.CommandSpec{
			{
				Name:        "account add",
				Description: "Save an account to the keyring (replaces an existing account with the same id)",
				Flags: with(
					manifest.FlagSpec{Name: "id", Description: "Account id (default: random UUID)"},
					manifest.FlagSpec{Name: "username", Description: "Account username"},
					manifest.FlagSpec{Name: "server", Description: "Server or URL the account belongs to"},
					manifest.FlagSpec{Name: "label", Description: "Free-form label"},
					manifest.FlagSpec{Name: "secret-stdin", Default: "false", Description: "Read the secret from stdin instead of prompting"},
				),
			},
			{Name: "account list", Description: "List saved accounts", Flags: with()},
			{Name: "account show", Args: "<id>", Description: "Show one account (secret redacted)", Flags: with()},
			{
				Name:        "account remove",
				Args:        "[id]",
				Description: "Remove one account, or every account in the namespace with --all",
				Flags:       with(manifest.FlagSpec{Name: "all", Default: "false", Description: "Remove all accounts in the namespace"}),
			},
			{Name: "login", Args: "<id>", Description: "Mark an account as the current account", Flags: with()},
			{Name: "logout", Description: "Clear the current account", Flags: with()},
			{Name: "whoami", Description: "Show the current account", Flags: with()},
			{Name: "config show", Description: "Show the resolved configuration", Flags: with()},
			{Name: "manifest", Description: "Export tool manifest for AI/agents", Flags: with()},
			{Name: "version", Description: "Print version information", Flags: with()},
		},
		ErrorCodes: errors.AllCodes(),
	}
}

type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

func (a App) VersionInfo() VersionInfo {
	return VersionInfo{Version: a.Version, Commit: a.Commit, Date: a.Date}
}
