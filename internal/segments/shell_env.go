package segments

import (
	"context"

	"github.com/alexisbeaulieu97/powerline/internal/detector"
	"github.com/alexisbeaulieu97/powerline/internal/segment"
)

type nixShell struct {
	env detector.Env
}

// NewNixShell marks prompts running inside nix-shell.
func NewNixShell(env detector.Env) detector.Detector {
	return &nixShell{env: env.WithDefaults()}
}

func (d *nixShell) Metadata() detector.Metadata {
	return detector.Metadata{Name: "nix-shell", Description: "Inside a nix-shell; shows the derivation name."}
}

func (d *nixShell) Detect(_ context.Context, p *segment.Powerline) error {
	if d.env.Getenv("IN_NIX_SHELL") == "" {
		return nil
	}

	text := d.env.Getenv("name")
	if text == "" {
		text = "nix-shell"
	}

	t := p.Theme()
	p.Push(segment.New(t.NixShellFG, t.NixShellBG, text))
	return nil
}

var sshVars = []string{"SSH_CLIENT", "SSH_CONNECTION", "SSH_TTY"}

type ssh struct {
	env detector.Env
}

// NewSSH shows the ssh glyph when the shell belongs to an SSH session.
func NewSSH(env detector.Env) detector.Detector {
	return &ssh{env: env.WithDefaults()}
}

func (d *ssh) Metadata() detector.Metadata {
	return detector.Metadata{Name: "ssh", Description: "Shell runs over SSH."}
}

func (d *ssh) Detect(_ context.Context, p *segment.Powerline) error {
	for _, key := range sshVars {
		if d.env.Getenv(key) != "" {
			t := p.Theme()
			p.Push(segment.New(t.SSHFG, t.SSHBG, string(t.SSHChar)))
			return nil
		}
	}
	return nil
}

var (
	_ detector.Detector = (*nixShell)(nil)
	_ detector.Detector = (*ssh)(nil)
)
