package diag

import (
	"testing"

	"vellum/internal/source"
)

func TestBagAddRespectsLimit(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(NewError(SynUnexpectedToken, source.Span{Unit: 1, Start: 0, End: 1}, "first")) {
		t.Fatalf("first Add should succeed")
	}
	if !bag.Add(NewError(SynUnexpectedToken, source.Span{Unit: 1, Start: 1, End: 2}, "second")) {
		t.Fatalf("second Add should succeed")
	}
	if bag.Add(NewError(SynUnexpectedToken, source.Span{Unit: 1, Start: 2, End: 3}, "third")) {
		t.Fatalf("third Add should be rejected at the limit")
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestBagHasErrorsAndWarnings(t *testing.T) {
	bag := NewBag(8)
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatalf("fresh bag should be clean")
	}

	bag.Add(New(SevInfo, ObsTimings, source.Span{}, "timings"))
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatalf("info diagnostics must not count as errors or warnings")
	}

	bag.Add(NewWarning(SemaUnusedImport, source.Span{Unit: 1}, "unused import"))
	if bag.HasErrors() {
		t.Fatalf("warning must not count as error")
	}
	if !bag.HasWarnings() {
		t.Fatalf("expected HasWarnings after adding a warning")
	}

	bag.Add(NewError(SemaUnresolvedRef, source.Span{Unit: 1}, "unresolved"))
	if !bag.HasErrors() {
		t.Fatalf("expected HasErrors after adding an error")
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	left := NewBag(1)
	left.Add(NewError(LexUnknownChar, source.Span{Unit: 1, Start: 0, End: 1}, "left"))

	right := NewBag(2)
	right.Add(NewError(LexUnknownChar, source.Span{Unit: 2, Start: 0, End: 1}, "right-a"))
	right.Add(NewWarning(SemaUnusedImport, source.Span{Unit: 2, Start: 2, End: 3}, "right-b"))

	left.Merge(right)
	if left.Len() != 3 {
		t.Fatalf("expected 3 diagnostics after merge, got %d", left.Len())
	}
	if left.Cap() < 3 {
		t.Fatalf("merge should grow the limit to fit all elements, cap=%d", left.Cap())
	}
}

func TestBagSortOrdersByUnitOffsetSeverity(t *testing.T) {
	bag := NewBag(8)
	bag.Add(NewWarning(SemaUnusedImport, source.Span{Unit: 2, Start: 5, End: 6}, "later unit"))
	bag.Add(NewError(SynUnexpectedToken, source.Span{Unit: 1, Start: 9, End: 10}, "later offset"))
	bag.Add(NewWarning(SemaUnusedImport, source.Span{Unit: 1, Start: 3, End: 4}, "same spot warning"))
	bag.Add(NewError(SemaUnresolvedRef, source.Span{Unit: 1, Start: 3, End: 4}, "same spot error"))

	bag.Sort()

	items := bag.Items()
	if items[0].Message != "same spot error" {
		t.Fatalf("error should sort before warning at the same span, got %q", items[0].Message)
	}
	if items[1].Message != "same spot warning" {
		t.Fatalf("warning should follow error at the same span, got %q", items[1].Message)
	}
	if items[2].Message != "later offset" {
		t.Fatalf("expected offset ordering within a unit, got %q", items[2].Message)
	}
	if items[3].Message != "later unit" {
		t.Fatalf("expected unit ordering last, got %q", items[3].Message)
	}
}

func TestBagDedupDropsRepeats(t *testing.T) {
	bag := NewBag(8)
	span := source.Span{Unit: 1, Start: 4, End: 5}
	bag.Add(NewError(SemaDuplicateConst, span, "duplicate constant declaration"))
	bag.Add(NewError(SemaDuplicateConst, span, "duplicate constant declaration"))
	bag.Add(NewError(SemaDuplicateConst, source.Span{Unit: 1, Start: 8, End: 9}, "another spot"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
}

func TestBagAddAllStopsAtLimit(t *testing.T) {
	bag := NewBag(2)
	batch := []Diagnostic{
		NewError(SynUnexpectedToken, source.Span{Unit: 1, Start: 0, End: 1}, "a"),
		NewError(SynUnexpectedToken, source.Span{Unit: 1, Start: 1, End: 2}, "b"),
		NewError(SynUnexpectedToken, source.Span{Unit: 1, Start: 2, End: 3}, "c"),
	}

	if added := bag.AddAll(batch); added != 2 {
		t.Fatalf("expected 2 added, got %d", added)
	}
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestBagCountBySeverity(t *testing.T) {
	bag := NewBag(8)
	bag.Add(NewError(SemaUnresolvedRef, source.Span{Unit: 1}, "e1"))
	bag.Add(NewError(SemaDuplicateConst, source.Span{Unit: 1}, "e2"))
	bag.Add(NewWarning(SemaUnusedImport, source.Span{Unit: 1}, "w1"))
	bag.Add(New(SevInfo, ObsTimings, source.Span{}, "i1"))

	counts := bag.CountBySeverity()
	if counts[SevError] != 2 || counts[SevWarning] != 1 || counts[SevInfo] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestBagFilter(t *testing.T) {
	bag := NewBag(8)
	bag.Add(NewError(SemaUnresolvedRef, source.Span{Unit: 1}, "keep"))
	bag.Add(NewWarning(SemaUnusedImport, source.Span{Unit: 1}, "drop"))
	bag.Add(NewError(SemaDuplicateConst, source.Span{Unit: 2}, "keep too"))

	errs := bag.Filter(func(d Diagnostic) bool { return d.Severity >= SevError })
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	if errs[0].Message != "keep" || errs[1].Message != "keep too" {
		t.Fatalf("filter should preserve order, got %q then %q", errs[0].Message, errs[1].Message)
	}
}
