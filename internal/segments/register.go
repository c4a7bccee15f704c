package segments

import (
	"sort"

	"github.com/alexisbeaulieu97/powerline/internal/detector"
)

// DefaultOrder is the left-to-right layout used when none is configured.
var DefaultOrder = []string{
	"virtualenv",
	"nix-shell",
	"ssh",
	"user",
	"host",
	"cwd",
	"perms",
	"git",
	"git-ahead",
	"git-behind",
	"git-staged",
	"git-notstaged",
	"git-untracked",
	"git-conflicted",
	"jobs",
	"cmd",
}

// Register adds every built-in detector to r.
func Register(r *detector.Registry) error {
	builtins := map[string]detector.Factory{
		"virtualenv": NewVirtualEnv,
		"nix-shell":  NewNixShell,
		"ssh":        NewSSH,
		"user":       NewUser,
		"host":       NewHost,
		"cwd":        NewCwd,
		"perms":      NewReadOnly,
		"jobs":       NewJobs,
		"time":       NewTime,
		"cmd":        NewCmd,
		"ps":         NewPromptSymbol,
	}
	for name, factory := range gitFactories(newGitProbe()) {
		builtins[name] = factory
	}

	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := r.Register(name, builtins[name]); err != nil {
			return err
		}
	}
	return nil
}
