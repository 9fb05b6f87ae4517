// Package emit drives source units through the staged pipeline that
// turns them into files on disk.
//
// A run has three stages. Transform lowers units to IR one at a time,
// in input order, and stops at the first unit that fails. Render fans
// a pure renderer out across the lowered units. Write persists the
// rendered text in contiguous batches, optionally skipping
// destinations that already hold identical bytes. Any Error-severity
// diagnostic anywhere in the run withholds emission: a failed run
// never reports written paths, even when earlier writes already
// landed on disk.
//
// Unit-level problems travel as diagnostics on the unit's bag and
// never surface as Go errors. The error return of Run is reserved for
// collaborator faults and cancellation.
package emit

import (
	"context"
	"errors"
	"time"

	"vellum/internal/diag"
)

// Run executes one emit run over the request's units. The returned
// RunResult is meaningful even when err is non-nil: it covers
// everything the run managed to do before the fault.
func Run(ctx context.Context, req *Request) (RunResult, error) {
	var result RunResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, errors.New("emit: missing request")
	}
	if err := validateRequest(req); err != nil {
		return result, err
	}
	req = req.withDefaults()

	runStart := time.Now()
	emitQueued(req.Progress, req.Units)

	stageStart := time.Now()
	emitStage(req.Progress, StageTransform, StatusWorking, nil, 0)
	results, err := runTransform(ctx, req)
	result.Results = results
	result.Timings.Set(StageTransform, time.Since(stageStart))
	if err != nil {
		emitStage(req.Progress, StageTransform, StatusError, err, result.Timings.Duration(StageTransform))
		aggregate(req, &result, runStart)
		return result, err
	}
	emitStage(req.Progress, StageTransform, StatusDone, nil, result.Timings.Duration(StageTransform))

	// A failed unit short-circuits the run: render and write never
	// start, so nothing is produced for units that did lower cleanly.
	if len(results) > 0 && !anyFailed(results) {
		stageStart = time.Now()
		emitStage(req.Progress, StageRender, StatusWorking, nil, 0)
		err = runRender(ctx, req, results)
		result.Timings.Set(StageRender, time.Since(stageStart))
		if err != nil {
			emitStage(req.Progress, StageRender, StatusError, err, result.Timings.Duration(StageRender))
			aggregate(req, &result, runStart)
			return result, err
		}
		emitStage(req.Progress, StageRender, StatusDone, nil, result.Timings.Duration(StageRender))

		stageStart = time.Now()
		emitStage(req.Progress, StageWrite, StatusWorking, nil, 0)
		err = runWrite(ctx, req, results)
		result.Timings.Set(StageWrite, time.Since(stageStart))
		if err != nil {
			emitStage(req.Progress, StageWrite, StatusError, err, result.Timings.Duration(StageWrite))
			aggregate(req, &result, runStart)
			return result, err
		}
		emitStage(req.Progress, StageWrite, StatusDone, nil, result.Timings.Duration(StageWrite))
	}

	// Write faults surface as unit diagnostics, so the emitted verdict
	// has to be re-derived after the last stage.
	result.Emitted = !anyFailed(results)
	if result.Emitted {
		for _, res := range results {
			if res.Written {
				result.WrittenPaths = append(result.WrittenPaths, res.Dest)
			}
		}
	}
	aggregate(req, &result, runStart)
	return result, nil
}

// aggregate folds per-unit outcomes into the run-level bag and stats.
// It runs on the coordinating goroutine after all workers finished.
func aggregate(req *Request, result *RunResult, runStart time.Time) {
	result.Stats = computeStats(result.Results, time.Since(runStart))
	result.Bag = diag.NewBag(req.MaxDiagnostics)
	for _, res := range result.Results {
		result.Bag.Merge(res.Bag)
	}
	if req.Verbose {
		report := result.Timings.Report()
		appendTimingDiagnostic(result.Bag, timingPayload{
			Kind:    "pipeline",
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
}
