package emit

import (
	"time"

	"vellum/internal/source"
)

// Stage names one phase of the pipeline.
type Stage string

const (
	// StageTransform covers lowering source units to IR.
	StageTransform Stage = "transform"
	// StageRender covers printing IR to output text.
	StageRender Stage = "render"
	// StageWrite covers persisting rendered text to disk.
	StageWrite Stage = "write"
)

// Status describes progress within a stage.
type Status string

const (
	// StatusQueued marks a unit accepted for processing.
	StatusQueued Status = "queued"
	// StatusWorking marks a stage actively running.
	StatusWorking Status = "working"
	// StatusDone marks a stage finished without a fault.
	StatusDone Status = "done"
	// StatusError marks a stage that failed.
	StatusError Status = "error"
)

// Event reports progress for one unit, or for the whole stage when
// Unit is empty.
type Event struct {
	Unit    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Render and write events
// arrive from worker goroutines, so implementations must tolerate
// concurrent OnEvent calls.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel, typically consumed by
// an interactive progress view.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent implements ProgressSink.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emitQueued(sink ProgressSink, units []*source.Unit) {
	if sink == nil {
		return
	}
	for _, unit := range units {
		sink.OnEvent(Event{Unit: unit.Path, Stage: StageTransform, Status: StatusQueued})
	}
}

func emitUnit(sink ProgressSink, unit string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Unit: unit, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

func emitStage(sink ProgressSink, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
