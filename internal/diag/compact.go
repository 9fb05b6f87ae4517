package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"vellum/internal/source"
)

type compactDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatCompactDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation suitable for test assertions and the CLI short output format.
// Diagnostics are sorted deterministically and returned as a single string
// (empty when nothing remains). Entries without a source location (Unit ==
// source.NoUnit) are kept and rendered without a path:line:col prefix.
func FormatCompactDiagnostics(diags []Diagnostic, us *source.UnitSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}

	rendered := make([]compactDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendCompact(rendered, &diags[i], us, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		if d.Path == "" {
			fmt.Fprintf(&b, "%s %s %s", d.Severity, d.Code, d.Message)
		} else {
			fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		}
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendCompact(out []compactDiagnostic, d *Diagnostic, us *source.UnitSet, includeNotes bool) []compactDiagnostic {
	loc := resolveSpan(us, d.Primary)
	out = append(out, compactDiagnostic{
		Severity: severityLabel(d.Severity),
		Code:     d.Code.ID(),
		Path:     loc.Path,
		Line:     loc.Line,
		Column:   loc.Column,
		Message:  sanitizeMessage(d.Message),
	})

	if includeNotes {
		for _, note := range d.Notes {
			nloc := resolveSpan(us, note.Span)
			out = append(out, compactDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     nloc.Path,
				Line:     nloc.Line,
				Column:   nloc.Column,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}

	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

func resolveSpan(us *source.UnitSet, span source.Span) resolvedSpan {
	if us == nil || span.Unit == source.NoUnit {
		return resolvedSpan{}
	}
	unit := us.Get(span.Unit)
	if unit == nil {
		return resolvedSpan{}
	}
	start, _ := us.Resolve(span)
	return resolvedSpan{
		Path:   normalizePath(unit.FormatPath("relative", us.BaseDir())),
		Line:   start.Line,
		Column: start.Col,
	}
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
