package segments

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/powerline/internal/detector"
	"github.com/alexisbeaulieu97/powerline/internal/segment"
)

const ellipsis = "…"

type cwd struct {
	env detector.Env
}

// NewCwd shows the working directory, abbreviating $HOME to ~.
func NewCwd(env detector.Env) detector.Detector {
	return &cwd{env: env.WithDefaults()}
}

func (d *cwd) Metadata() detector.Metadata {
	return detector.Metadata{Name: "cwd", Description: "Working directory, ~ for home."}
}

func (d *cwd) Detect(_ context.Context, p *segment.Powerline) error {
	dir, err := workingDir(d.env)
	if err != nil {
		return err
	}

	text, underHome := shortenPath(dir, d.env.Getenv("HOME"), d.env.CwdMaxDepth)

	t := p.Theme()
	if underHome {
		p.Push(segment.New(t.HomeFG, t.HomeBG, text))
		return nil
	}
	p.Push(segment.New(t.PathFG, t.PathBG, text))
	return nil
}

// workingDir prefers the real directory and falls back to $PWD, which the
// shell keeps even after the directory was removed.
func workingDir(env detector.Env) (string, error) {
	dir, err := env.Getwd()
	if err == nil {
		return dir, nil
	}
	if pwd := env.Getenv("PWD"); pwd != "" {
		return pwd, nil
	}
	return "", fmt.Errorf("read working directory: %w", err)
}

// shortenPath replaces a leading home directory with ~ and keeps at most
// maxDepth trailing components (0 keeps all).
func shortenPath(dir, home string, maxDepth int) (string, bool) {
	sep := string(filepath.Separator)
	dir = filepath.Clean(dir)

	prefix := sep
	rest := strings.TrimPrefix(dir, sep)
	underHome := false

	if home != "" {
		home = filepath.Clean(home)
		if dir == home {
			return "~", true
		}
		if home != sep && strings.HasPrefix(dir, home+sep) {
			prefix = "~" + sep
			rest = strings.TrimPrefix(dir, home+sep)
			underHome = true
		}
	}

	if rest == "" {
		return sep, false
	}

	parts := strings.Split(rest, sep)
	if maxDepth > 0 && len(parts) > maxDepth {
		parts = append([]string{ellipsis}, parts[len(parts)-maxDepth:]...)
	}

	return prefix + strings.Join(parts, sep), underHome
}

var _ detector.Detector = (*cwd)(nil)
