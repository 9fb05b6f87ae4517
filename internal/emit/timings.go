package emit

import (
	"encoding/json"
	"fmt"
	"time"

	"vellum/internal/diag"
	"vellum/internal/observ"
	"vellum/internal/source"
)

// stageOrder fixes the reporting order of stages.
var stageOrder = []Stage{StageTransform, StageRender, StageWrite}

// Timings holds wall-clock durations per pipeline stage.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration, len(stageOrder))
	}
}

// Set records the duration of one stage, replacing any prior value.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Has reports whether a duration was recorded for the stage.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for the stage, zero when the
// stage never ran.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum adds up the recorded durations of the given stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}

// Report converts the recorded stages, in pipeline order, into the
// serialisable timing shape.
func (t Timings) Report() observ.Report {
	var report observ.Report
	var total time.Duration
	for _, stage := range stageOrder {
		if !t.Has(stage) {
			continue
		}
		dur := t.Duration(stage)
		total += dur
		report.Phases = append(report.Phases, observ.PhaseReport{
			Name:       string(stage),
			DurationMS: msFloat(dur),
		})
	}
	report.TotalMS = msFloat(total)
	return report
}

func msFloat(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// timingPayload is the machine-readable note attached to timing
// diagnostics.
type timingPayload struct {
	Kind    string               `json:"kind"`
	Unit    string               `json:"unit,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases,omitempty"`
}

// appendTimingDiagnostic records a timing payload as an Info
// diagnostic. The bag is grown when it is already full so timings are
// never lost to the diagnostic budget.
func appendTimingDiagnostic(bag *diag.Bag, payload timingPayload) {
	if bag == nil {
		return
	}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if payload.Unit != "" {
		msg = fmt.Sprintf("timings (%s, %s): total %.2f ms", payload.Kind, payload.Unit, payload.TotalMS)
	}
	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  msg,
		Primary:  source.Span{},
	}
	if data, err := json.Marshal(payload); err == nil {
		entry.Notes = []diag.Note{{Span: source.Span{}, Msg: string(data)}}
	}
	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(bag.Len() + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
