package emit

import (
	"fmt"
	"time"

	"vellum/internal/diag"
	"vellum/internal/ir"
	"vellum/internal/source"
)

// UnitResult carries every stage outcome for one attempted unit. The
// fields fill in as the stages run; callers correlate outcomes through
// the result itself, never by position in some other sequence.
type UnitResult struct {
	Unit *source.Unit
	// Bag holds the unit's diagnostics in report order.
	Bag *diag.Bag
	// IR is nil when transformation failed; that state is terminal.
	IR *ir.Module
	// Text is the rendered output; nil when the unit never rendered.
	Text []byte
	// Dest is the resolved destination path, set by the write stage.
	Dest string
	// Written and Skipped report the write outcome. Skipped means the
	// destination already held identical bytes.
	Written bool
	Skipped bool
}

// Failed reports whether the unit carries an Error-severity diagnostic.
func (r *UnitResult) Failed() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// RunStats aggregates one run for reporting.
type RunStats struct {
	Total       int
	Successful  int
	Failed      int
	Diagnostics int
	Written     int
	Skipped     int
	Elapsed     time.Duration
}

// AvgPerUnit returns the mean wall-clock time per attempted unit,
// zero for an empty run.
func (s RunStats) AvgPerUnit() time.Duration {
	if s.Total == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Total)
}

// Summary renders the stats as a one-line report.
func (s RunStats) Summary() string {
	return fmt.Sprintf("%d units: %d ok, %d failed; %d written, %d skipped; %.2f ms",
		s.Total, s.Successful, s.Failed, s.Written, s.Skipped, msFloat(s.Elapsed))
}

// RunResult is the outcome of one Run call.
type RunResult struct {
	// Emitted is false when any unit carries an Error-severity
	// diagnostic. WrittenPaths is withheld in that case; Stats still
	// counts whatever the write stage managed to do.
	Emitted bool
	// Bag aggregates every unit's diagnostics in input order.
	Bag *diag.Bag
	// WrittenPaths lists the destinations actually written, in input
	// order of their units.
	WrittenPaths []string
	// Results holds one entry per attempted unit. On a failed run this
	// is a prefix of the request's units; later units were never
	// attempted.
	Results []*UnitResult
	Stats   RunStats
	Timings Timings
}

func computeStats(results []*UnitResult, elapsed time.Duration) RunStats {
	stats := RunStats{Total: len(results), Elapsed: elapsed}
	for _, res := range results {
		if res.Failed() {
			stats.Failed++
		} else {
			stats.Successful++
		}
		if res.Bag != nil {
			stats.Diagnostics += res.Bag.Len()
		}
		if res.Written {
			stats.Written++
		}
		if res.Skipped {
			stats.Skipped++
		}
	}
	return stats
}

func anyFailed(results []*UnitResult) bool {
	for _, res := range results {
		if res.Failed() {
			return true
		}
	}
	return false
}
