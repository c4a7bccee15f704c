// Package detector defines the contract prompt segment detectors satisfy,
// the registry that builds them by name and the runner that invokes them in
// order.
package detector

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/alexisbeaulieu97/powerline/internal/segment"
)

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Detector inspects one source of truth and contributes at most one segment.
//
// Implementations should:
//   - Read colors and glyphs from p.Theme() and never modify it
//   - Push zero or one segment; absence of their subject is not an error
//   - Return an error only when the source could not be inspected
type Detector interface {
	Metadata() Metadata
	Detect(ctx context.Context, p *segment.Powerline) error
}

// Metadata identifies a detector.
type Metadata struct {
	Name        string
	Description string
}

// Validate ensures metadata is well-formed.
func (m Metadata) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("detector metadata requires a non-empty Name")
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("detector name '%s' must be lower-case words joined by '-'", m.Name)
	}
	return nil
}

// Func adapts a plain function to the Detector interface.
type Func struct {
	Meta Metadata
	Fn   func(ctx context.Context, p *segment.Powerline) error
}

func (f Func) Metadata() Metadata { return f.Meta }

func (f Func) Detect(ctx context.Context, p *segment.Powerline) error {
	if f.Fn == nil {
		return nil
	}
	return f.Fn(ctx, p)
}

var _ Detector = Func{}
