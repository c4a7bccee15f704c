// Package segments holds the built-in prompt segment detectors.
package segments

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/powerline/internal/detector"
	"github.com/alexisbeaulieu97/powerline/internal/segment"
)

// virtualEnvVars lists the variables consulted, highest priority first.
var virtualEnvVars = []string{"VIRTUAL_ENV", "CONDA_ENV_PATH", "CONDA_DEFAULT_ENV"}

type virtualEnv struct {
	env detector.Env
}

// NewVirtualEnv shows the name of the active Python or conda environment.
func NewVirtualEnv(env detector.Env) detector.Detector {
	return &virtualEnv{env: env.WithDefaults()}
}

func (d *virtualEnv) Metadata() detector.Metadata {
	return detector.Metadata{
		Name:        "virtualenv",
		Description: "Active virtualenv or conda environment name.",
	}
}

func (d *virtualEnv) Detect(_ context.Context, p *segment.Powerline) error {
	name, ok := activeVirtualEnv(d.env.LookupEnv)
	if !ok {
		return nil
	}

	t := p.Theme()
	p.Push(segment.New(t.VirtualEnvFG, t.VirtualEnvBG, name))
	return nil
}

// activeVirtualEnv takes the first variable that is set to a non-empty
// value. Later variables are not consulted even when that value has no
// usable final component.
func activeVirtualEnv(lookup func(string) (string, bool)) (string, bool) {
	for _, key := range virtualEnvVars {
		value, ok := lookup(key)
		if !ok || value == "" {
			continue
		}
		return finalComponent(value)
	}
	return "", false
}

func finalComponent(path string) (string, bool) {
	trimmed := strings.TrimRight(path, string(filepath.Separator))
	if trimmed == "" {
		return "", false
	}

	base := filepath.Base(trimmed)
	if base == "." || base == ".." {
		return "", false
	}
	return base, true
}

var _ detector.Detector = (*virtualEnv)(nil)
