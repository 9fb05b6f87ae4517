package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"

	"vellum/internal/diag"
	"vellum/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgCyan)
)

// Pretty renders every diagnostic in the bag as a human-readable block:
// a <path>:<line>:<col> header with severity and code, the offending source
// line with a caret underline and surrounding context, and the attached
// notes when ShowNotes is set. Iterates bag.Items() as-is; call bag.Sort()
// beforehand for positional order. Color is applied per opts.
func Pretty(w io.Writer, bag *diag.Bag, set *source.UnitSet, opts PrettyOpts) {
	items := bag.Items()
	for i := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printDiagnostic(w, &items[i], set, opts)
	}
}

func printDiagnostic(w io.Writer, d *diag.Diagnostic, set *source.UnitSet, opts PrettyOpts) {
	head := severityHeading(d.Severity, d.Code, opts.Color)

	if u := set.Get(d.Primary.Unit); u != nil {
		start, end := set.Resolve(d.Primary)
		path := displayPath(u, set, opts.PathMode)
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", path, start.Line, start.Col, head, d.Message)
		printSnippet(w, u, start, end, d.Severity, opts)
	} else {
		// No source attribution, a bare header is all there is to show.
		fmt.Fprintf(w, "%s: %s\n", head, d.Message)
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			printNote(w, &note, set, opts)
		}
	}
}

func printSnippet(w io.Writer, u *source.Unit, start, end source.LineCol, sev diag.Severity, opts PrettyOpts) {
	ctx := uint32(0)
	if opts.Context > 0 {
		ctx = uint32(opts.Context)
	}

	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	// EOF spans can resolve one past the final line, keep the caret row.
	maxLine := lastLineNumber(u)
	if maxLine < start.Line {
		maxLine = start.Line
	}
	if last > maxLine {
		last = maxLine
	}

	numWidth := len(strconv.FormatUint(uint64(last), 10))
	for n := first; n <= last; n++ {
		line := u.GetLine(n)
		fmt.Fprintf(w, " %*d | %s\n", numWidth, n, line)
		if n == start.Line {
			marker := underline(line, start, end)
			if opts.Color {
				marker = severityColor(sev).Sprint(marker)
			}
			fmt.Fprintf(w, " %s | %s%s\n", strings.Repeat(" ", numWidth), caretPad(line, start.Col), marker)
		}
	}
}

func printNote(w io.Writer, note *diag.Note, set *source.UnitSet, opts PrettyOpts) {
	label := "note"
	if opts.Color {
		label = noteColor.Sprint(label)
	}

	if u := set.Get(note.Span.Unit); u != nil {
		start, _ := set.Resolve(note.Span)
		fmt.Fprintf(w, "  %s: %s (%s:%d:%d)\n", label, note.Msg, displayPath(u, set, opts.PathMode), start.Line, start.Col)
		return
	}
	fmt.Fprintf(w, "  %s: %s\n", label, note.Msg)
}

// displayPath renders the unit path according to the PathMode. Shared with
// the JSON formatter so both outputs agree on path shape.
func displayPath(u *source.Unit, set *source.UnitSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return u.FormatPath("absolute", "")
	case PathModeRelative:
		return u.FormatPath("relative", set.BaseDir())
	case PathModeBasename:
		return u.FormatPath("basename", "")
	case PathModeAuto:
		return u.FormatPath("auto", "")
	default:
		return u.Path
	}
}

// caretPad mirrors the leading bytes of the line so the caret lands under
// the right column even when the line is indented with tabs.
func caretPad(line string, col uint32) string {
	var b strings.Builder
	for i := 0; i < int(col)-1; i++ {
		if i < len(line) && line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// underline builds the ^~~~ marker covering the span's extent on the start
// line. Spans that continue onto later lines are underlined to the end of
// the start line, empty spans get a lone caret.
func underline(line string, start, end source.LineCol) string {
	width := 1
	switch {
	case end.Line == start.Line && end.Col > start.Col:
		width = int(end.Col - start.Col)
	case end.Line > start.Line:
		if rest := len(line) - int(start.Col) + 1; rest > width {
			width = rest
		}
	}
	return "^" + strings.Repeat("~", width-1)
}

// lastLineNumber counts the displayable lines of a unit. A trailing newline
// does not open a new line.
func lastLineNumber(u *source.Unit) uint32 {
	lines := len(u.LineIdx) + 1
	if len(u.Content) > 0 && u.Content[len(u.Content)-1] == '\n' {
		lines--
	}
	n, err := safecast.Conv[uint32](lines)
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	return n
}

func severityHeading(sev diag.Severity, code diag.Code, colorize bool) string {
	label := severityLabel(sev) + "[" + code.ID() + "]"
	if !colorize {
		return label
	}
	return severityColor(sev).Sprint(label)
}

func severityLabel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}
