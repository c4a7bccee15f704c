package segments

import (
	"context"

	"github.com/alexisbeaulieu97/powerline/internal/detector"
	"github.com/alexisbeaulieu97/powerline/internal/segment"
)

type readOnly struct {
	env      detector.Env
	writable func(path string) bool
}

// NewReadOnly shows the read-only glyph when the working directory cannot
// be written to.
func NewReadOnly(env detector.Env) detector.Detector {
	return &readOnly{env: env.WithDefaults(), writable: isWritable}
}

func (d *readOnly) Metadata() detector.Metadata {
	return detector.Metadata{Name: "perms", Description: "Working directory is not writable."}
}

func (d *readOnly) Detect(_ context.Context, p *segment.Powerline) error {
	dir, err := workingDir(d.env)
	if err != nil {
		return err
	}
	if d.writable(dir) {
		return nil
	}

	t := p.Theme()
	p.Push(segment.New(t.ReadOnlyFG, t.ReadOnlyBG, string(t.ReadOnlyChar)))
	return nil
}

var _ detector.Detector = (*readOnly)(nil)
