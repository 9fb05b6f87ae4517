package main

import (
	"fmt"
	"io"
	"time"

	"vellum/internal/emit"
)

// printStageTimings writes one line per recorded stage plus a total.
// Stages that never ran stay silent.
func printStageTimings(out io.Writer, timings emit.Timings) {
	if out == nil {
		return
	}
	printed := false
	for _, stage := range []emit.Stage{emit.StageTransform, emit.StageRender, emit.StageWrite} {
		if !timings.Has(stage) {
			continue
		}
		_, _ = fmt.Fprintf(out, "%s %.1f ms\n", stage, toMillis(timings.Duration(stage)))
		printed = true
	}
	if printed {
		total := timings.Sum(emit.StageTransform, emit.StageRender, emit.StageWrite)
		_, _ = fmt.Fprintf(out, "total %.1f ms\n", toMillis(total))
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
