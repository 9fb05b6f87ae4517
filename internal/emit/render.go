package emit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// runRender fans the renderer out across units. Each worker owns its
// result entry, so no locking is needed; any render error cancels the
// group and aborts the run.
func runRender(ctx context.Context, req *Request, results []*UnitResult) error {
	jobs := min(req.RenderJobs, len(results))
	if jobs < 1 {
		jobs = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, res := range results {
		res := res
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			if res.IR == nil {
				// A failed transform is terminal: the text stays
				// absent and the recorded diagnostics travel as-is.
				return nil
			}
			emitUnit(req.Progress, res.Unit.Path, StageRender, StatusWorking, nil, 0)
			start := time.Now()
			text, err := req.Renderer.Render(res.IR)
			if err != nil {
				emitUnit(req.Progress, res.Unit.Path, StageRender, StatusError, err, time.Since(start))
				return fmt.Errorf("render %s: %w", res.Unit.Path, err)
			}
			res.Text = text
			emitUnit(req.Progress, res.Unit.Path, StageRender, StatusDone, nil, time.Since(start))
			return nil
		})
	}
	return g.Wait()
}
