package emit

import (
	"context"
	"fmt"
	"time"

	"vellum/internal/diag"
	"vellum/internal/observ"
)

// runTransform lowers units one at a time, in input order. The first
// unit that fails ends the stage; later units are never attempted and
// get no result entry. A non-nil error means a collaborator fault or
// cancellation, not a unit-level failure.
func runTransform(ctx context.Context, req *Request) ([]*UnitResult, error) {
	results := make([]*UnitResult, 0, len(req.Units))
	for _, unit := range req.Units {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := &UnitResult{
			Unit: unit,
			Bag:  diag.NewBag(req.MaxDiagnostics),
		}
		results = append(results, res)
		emitUnit(req.Progress, unit.Path, StageTransform, StatusWorking, nil, 0)

		start := time.Now()
		var timer *observ.Timer
		phase := -1
		if req.Verbose {
			timer = observ.NewTimer()
			phase = timer.Begin("prechecks")
		}
		reporter := diag.BagReporter{Bag: res.Bag}
		for _, check := range req.PreChecks {
			if check == nil {
				continue
			}
			check(unit, reporter)
		}
		if timer != nil {
			timer.End(phase, "")
		}
		if res.Bag.HasErrors() {
			// Rejected before the transformer ever saw it.
			emitUnit(req.Progress, unit.Path, StageTransform, StatusError, nil, time.Since(start))
			return results, nil
		}

		if timer != nil {
			phase = timer.Begin(string(StageTransform))
		}
		mod, err := req.Transformer.Transform(ctx, unit, reporter)
		elapsed := time.Since(start)
		if timer != nil {
			note := ""
			if mod != nil {
				note = fmt.Sprintf("%d consts", len(mod.Consts))
			}
			timer.End(phase, note)
		}
		if err != nil {
			emitUnit(req.Progress, unit.Path, StageTransform, StatusError, err, elapsed)
			return results, fmt.Errorf("transform %s: %w", unit.Path, err)
		}
		if timer != nil {
			report := timer.Report()
			appendTimingDiagnostic(res.Bag, timingPayload{
				Kind:    "transform",
				Unit:    unit.Path,
				TotalMS: report.TotalMS,
				Phases:  report.Phases,
			})
		}
		if res.Bag.HasErrors() {
			emitUnit(req.Progress, unit.Path, StageTransform, StatusError, nil, elapsed)
			return results, nil
		}
		if mod == nil {
			emitUnit(req.Progress, unit.Path, StageTransform, StatusError, nil, elapsed)
			return results, fmt.Errorf("transform %s: transformer returned no IR and no error diagnostic", unit.Path)
		}
		res.IR = mod
		emitUnit(req.Progress, unit.Path, StageTransform, StatusDone, nil, elapsed)
	}
	return results, nil
}
