package emit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"vellum/internal/diag"
	"vellum/internal/source"
)

// runWrite persists rendered units in contiguous batches. Entries
// inside a batch run concurrently; the next batch starts only after
// the previous one finished. Per-entry faults are downgraded to
// Error-severity diagnostics on the owning unit so sibling writes are
// never disturbed, which is why the only error out of here is
// cancellation between batches.
func runWrite(ctx context.Context, req *Request, results []*UnitResult) error {
	eligible := make([]*UnitResult, 0, len(results))
	for _, res := range results {
		if res.Text != nil {
			eligible = append(eligible, res)
		}
	}

	for start := 0; start < len(eligible); start += req.WriteBatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+req.WriteBatchSize, len(eligible))

		var wg sync.WaitGroup
		for _, res := range eligible[start:end] {
			res := res
			wg.Add(1)
			go func() {
				defer wg.Done()
				writeUnit(req, res)
			}()
		}
		wg.Wait()
	}
	return nil
}

// writeUnit resolves the unit's destination and persists its text.
// Each worker owns its result entry and its diagnostic bag for the
// duration of the batch.
func writeUnit(req *Request, res *UnitResult) {
	emitUnit(req.Progress, res.Unit.Path, StageWrite, StatusWorking, nil, 0)
	start := time.Now()
	reporter := diag.BagReporter{Bag: res.Bag}
	attr := source.Span{Unit: res.Unit.ID}

	dest, err := req.Paths.ResolveOutputPath(res.Unit)
	if err != nil {
		diag.ReportError(reporter, diag.IOResolvePathError, attr,
			"cannot resolve output path: "+err.Error()).Emit()
		emitUnit(req.Progress, res.Unit.Path, StageWrite, StatusError, err, time.Since(start))
		return
	}
	res.Dest = dest

	if req.WriteOnlyIfChanged {
		// Any read failure, including a missing file, just means the
		// destination differs; fall through to the write.
		if existing, readErr := os.ReadFile(dest); readErr == nil && bytes.Equal(existing, res.Text) {
			res.Skipped = true
			emitUnit(req.Progress, res.Unit.Path, StageWrite, StatusDone, nil, time.Since(start))
			return
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		diag.ReportError(reporter, diag.IOCreateDirError, attr,
			"cannot create output directory: "+err.Error()).Emit()
		emitUnit(req.Progress, res.Unit.Path, StageWrite, StatusError, err, time.Since(start))
		return
	}
	if err := os.WriteFile(dest, res.Text, 0o600); err != nil {
		diag.ReportError(reporter, diag.IOWriteFileError, attr,
			"cannot write "+dest+": "+err.Error()).Emit()
		emitUnit(req.Progress, res.Unit.Path, StageWrite, StatusError, err, time.Since(start))
		return
	}
	res.Written = true
	emitUnit(req.Progress, res.Unit.Path, StageWrite, StatusDone, nil, time.Since(start))
}
