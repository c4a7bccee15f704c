package detector

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/powerline/internal/logger"
	"github.com/alexisbeaulieu97/powerline/internal/segment"
	powerlineerrors "github.com/alexisbeaulieu97/powerline/pkg/errors"
)

// Run invokes detectors one after another in slice order.
//
// A detector that fails to inspect its source is logged and skipped so the
// rest of the prompt still renders. A detector that pushes more than one
// segment breaks the contract and aborts the run.
func Run(ctx context.Context, p *segment.Powerline, detectors []Detector, log *logger.Logger) error {
	for i, d := range detectors {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := d.Metadata().Name
		dlog := log.WithFields(map[string]any{"detector": name, "index": i})
		before := p.Len()

		if err := d.Detect(ctx, p); err != nil {
			dlog.Warn(powerlineerrors.NewDetectorError(name, err), "detector failed, segment skipped")
			continue
		}

		switch pushed := p.Len() - before; {
		case pushed == 0:
			dlog.Debug("no segment")
		case pushed == 1:
			dlog.Debug("segment added")
		default:
			return powerlineerrors.NewDetectorError(name, fmt.Errorf("pushed %d segments, at most one allowed", pushed))
		}
	}

	return nil
}
