package emit

import (
	"bytes"
	"fmt"

	"fortio.org/safecast"

	"vellum/internal/diag"
	"vellum/internal/source"
)

// WellFormedCheck flags input bytes the pipeline must not accept
// silently. A NUL byte fails the unit before the transformer runs; a
// byte order mark was already stripped during loading and is only
// worth a warning.
func WellFormedCheck(unit *source.Unit, reporter diag.Reporter) {
	if unit == nil {
		return
	}
	if idx := bytes.IndexByte(unit.Content, 0); idx >= 0 {
		off, err := safecast.Conv[uint32](idx)
		if err != nil {
			panic(fmt.Errorf("nul byte offset overflow: %w", err))
		}
		sp := source.Span{Unit: unit.ID, Start: off, End: off + 1}
		diag.ReportError(reporter, diag.LexNulByte, sp, "source contains a NUL byte").Emit()
	}
	if unit.Flags&source.UnitHadBOM != 0 {
		sp := source.Span{Unit: unit.ID}
		diag.ReportWarning(reporter, diag.LexByteOrderMark, sp,
			"byte order mark stripped from the start of the file").Emit()
	}
}
