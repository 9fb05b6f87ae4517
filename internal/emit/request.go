package emit

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"vellum/internal/diag"
	"vellum/internal/ir"
	"vellum/internal/source"
)

// Defaults for Request knobs left at zero.
const (
	DefaultWriteBatchSize = 50
	DefaultMaxDiagnostics = 100
)

// Transformer turns one source unit into IR. Unit-level problems are
// reported through the per-call reporter; an Error-severity report
// fails the unit and stops the transform stage. The Go error is
// reserved for faults that must abort the whole run. Transform is
// invoked strictly sequentially, in input order, from the coordinating
// goroutine, so implementations may keep unsynchronized state.
type Transformer interface {
	Transform(ctx context.Context, unit *source.Unit, reporter diag.Reporter) (*ir.Module, error)
}

// Renderer turns IR into output bytes. It must be pure: no shared
// mutable state, output depending only on the module passed in.
// Render runs concurrently across units. An error is a collaborator
// fault and aborts the run.
type Renderer interface {
	Render(mod *ir.Module) ([]byte, error)
}

// PathResolver maps a unit to the absolute path its output is written
// to. Distinct units must resolve to distinct paths; the write stage
// relies on that for concurrent safety.
type PathResolver interface {
	ResolveOutputPath(unit *source.Unit) (string, error)
}

// PreEmitCheck inspects one unit before transformation and reports
// findings. An Error-severity report fails the unit without invoking
// the transformer.
type PreEmitCheck func(unit *source.Unit, reporter diag.Reporter)

// Request configures one emit run.
type Request struct {
	// Units are processed in input order. Nil entries are rejected.
	Units []*source.Unit

	Transformer Transformer
	Renderer    Renderer
	Paths       PathResolver
	// PreChecks run before the transformer for every unit, in order.
	// WellFormedCheck is the usual entry.
	PreChecks []PreEmitCheck

	// WriteOnlyIfChanged skips destinations whose current content is
	// byte-identical to the new output.
	WriteOnlyIfChanged bool
	// WriteBatchSize caps how many writes are in flight at once.
	WriteBatchSize int
	// RenderJobs caps the render fan-out (default GOMAXPROCS).
	RenderJobs int
	// MaxDiagnostics bounds each unit's diagnostic bag.
	MaxDiagnostics int
	// Verbose appends per-unit and per-stage timing diagnostics.
	Verbose bool
	// Progress receives stage and status events; may be nil. Render
	// and write events arrive from worker goroutines.
	Progress ProgressSink
}

func (r *Request) withDefaults() *Request {
	out := *r
	if out.WriteBatchSize <= 0 {
		out.WriteBatchSize = DefaultWriteBatchSize
	}
	if out.RenderJobs <= 0 {
		out.RenderJobs = runtime.GOMAXPROCS(0)
	}
	if out.MaxDiagnostics <= 0 {
		out.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return &out
}

func validateRequest(req *Request) error {
	if req.Transformer == nil {
		return errors.New("emit: missing transformer")
	}
	if req.Renderer == nil {
		return errors.New("emit: missing renderer")
	}
	if req.Paths == nil {
		return errors.New("emit: missing path resolver")
	}
	for i, unit := range req.Units {
		if unit == nil {
			return fmt.Errorf("emit: nil unit at index %d", i)
		}
	}
	return nil
}
