package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUnitSetVersioning(t *testing.T) {
	us := NewUnitSet()

	id1 := us.Add("test.vl", []byte("hello world"), 0)
	if id1 != 1 {
		t.Errorf("Expected first UnitID to be 1, got %d", id1)
	}

	latestID, exists := us.GetLatest("test.vl")
	if !exists {
		t.Error("Expected unit to exist after Add")
	}
	if latestID != id1 {
		t.Errorf("Expected latest ID to be %d, got %d", id1, latestID)
	}

	// Adding the same path again creates a fresh unit.
	id2 := us.Add("test.vl", []byte("hello universe"), 0)
	if id2 != 2 {
		t.Errorf("Expected second UnitID to be 2, got %d", id2)
	}

	latestID, exists = us.GetLatest("test.vl")
	if !exists {
		t.Error("Expected unit to exist after second Add")
	}
	if latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d", id2, latestID)
	}

	if u, ok := us.GetByPath("test.vl"); !ok || u.ID != id2 {
		t.Errorf("GetByPath must return the latest unit, got %+v (ok=%v)", u, ok)
	}
	if _, ok := us.GetByPath("missing.vl"); ok {
		t.Error("GetByPath must miss on unknown paths")
	}

	// The older version stays reachable through its ID.
	unit1 := us.Get(id1)
	if string(unit1.Content) != "hello world" {
		t.Errorf("Expected first unit content 'hello world', got %q", string(unit1.Content))
	}

	unit2 := us.Get(id2)
	if string(unit2.Content) != "hello universe" {
		t.Errorf("Expected second unit content 'hello universe', got %q", string(unit2.Content))
	}

	if unit1.Path != "test.vl" || unit2.Path != "test.vl" {
		t.Error("Expected both units to have the same path")
	}

	if us.Len() != 2 {
		t.Errorf("Expected Len 2, got %d", us.Len())
	}
}

func TestGetNoUnitReturnsNil(t *testing.T) {
	us := NewUnitSet()
	if us.Get(NoUnit) != nil {
		t.Error("Get(NoUnit) must return nil")
	}
	if us.Get(UnitID(42)) != nil {
		t.Error("Get with out-of-range ID must return nil")
	}
	if us.Len() != 0 {
		t.Errorf("Expected empty set Len 0, got %d", us.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	us := NewUnitSet()

	// "a\nb\n" has newlines at offsets 1 and 3.
	id := us.AddVirtual("a.vl", []byte("a\nb\n"))
	unit := us.Get(id)

	expected := []uint32{1, 3}
	if len(unit.LineIdx) != len(expected) {
		t.Errorf("Expected LineIdx length %d, got %d", len(expected), len(unit.LineIdx))
	}

	for i, val := range expected {
		if unit.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, unit.LineIdx[i])
		}
	}

	if unit.Flags&UnitVirtual == 0 {
		t.Error("Expected UnitVirtual flag to be set")
	}
}

func TestCRLFNormalization(t *testing.T) {
	original := []byte("a\r\nb\r\n")
	normalized, changed := normalizeCRLF(original)

	if !changed {
		t.Error("Expected CRLF normalization to be detected")
	}

	expected := []byte("a\nb\n")
	if string(normalized) != string(expected) {
		t.Errorf("Expected normalized content %q, got %q", string(expected), string(normalized))
	}

	if len(normalized) != len(original)-2 {
		t.Errorf("Expected length %d, got %d", len(original)-2, len(normalized))
	}
}

func TestBOMRemoval(t *testing.T) {
	bomContent := []byte{0xEF, 0xBB, 0xBF, 'x', '\n'}
	withoutBOM, hadBOM := removeBOM(bomContent)

	if !hadBOM {
		t.Error("Expected BOM to be detected")
	}

	expected := []byte{'x', '\n'}
	if string(withoutBOM) != string(expected) {
		t.Errorf("Expected content without BOM %q, got %q", string(expected), string(withoutBOM))
	}
}

func TestResolveUTF8(t *testing.T) {
	us := NewUnitSet()

	// α occupies two bytes; columns are byte based.
	content := []byte("α\n")
	id := us.AddVirtual("test.vl", content)

	span := Span{Unit: id, Start: 0, End: 1}
	start, end := us.Resolve(span)

	expectedStart := LineCol{Line: 1, Col: 1}
	expectedEnd := LineCol{Line: 1, Col: 2}

	if start != expectedStart {
		t.Errorf("Expected start %+v, got %+v", expectedStart, start)
	}

	if end != expectedEnd {
		t.Errorf("Expected end %+v, got %+v", expectedEnd, end)
	}
}

func TestResolveMultiLine(t *testing.T) {
	us := NewUnitSet()

	// Offsets: a=0, \n=1, b=2, \n=3, c=4.
	id := us.AddVirtual("multi.vl", []byte("a\nb\nc"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{1, LineCol{Line: 1, Col: 2}}, // the newline ends line 1
		{2, LineCol{Line: 2, Col: 1}},
		{4, LineCol{Line: 3, Col: 1}},
		{5, LineCol{Line: 3, Col: 2}}, // one past the end of the unit
	}
	for _, tc := range cases {
		start, _ := us.Resolve(Span{Unit: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Errorf("offset %d: expected %+v, got %+v", tc.off, tc.want, start)
		}
	}
}

func TestResolveNoUnitSpan(t *testing.T) {
	us := NewUnitSet()
	start, end := us.Resolve(Span{Unit: NoUnit, Start: 5, End: 9})
	if (start != LineCol{}) || (end != LineCol{}) {
		t.Errorf("NoUnit span must resolve to zero positions, got %+v..%+v", start, end)
	}
}

func TestLineIndexEdgeCases(t *testing.T) {
	us := NewUnitSet()

	id1 := us.AddVirtual("empty.vl", []byte{})
	if unit := us.Get(id1); len(unit.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx for empty unit, got length %d", len(unit.LineIdx))
	}

	id2 := us.AddVirtual("no_newlines.vl", []byte("hello"))
	if unit := us.Get(id2); len(unit.LineIdx) != 0 {
		t.Errorf("Expected empty LineIdx without newlines, got length %d", len(unit.LineIdx))
	}

	id3 := us.AddVirtual("only_newline.vl", []byte("\n"))
	if unit := us.Get(id3); len(unit.LineIdx) != 1 || unit.LineIdx[0] != 0 {
		t.Errorf("Expected LineIdx [0] for lone newline, got %v", unit.LineIdx)
	}
}

func TestLoadNormalizesAndFlags(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.vl")
	if err := os.WriteFile(plain, []byte("a\nb\n"), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	us := NewUnitSet()
	id, err := us.Load(plain)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	unit := us.Get(id)
	if string(unit.Content) != "a\nb\n" {
		t.Errorf("Expected unit content 'a\\nb\\n', got %q", string(unit.Content))
	}
	if unit.LineIdx[0] != 1 || unit.LineIdx[1] != 3 {
		t.Errorf("Unexpected LineIdx %v", unit.LineIdx)
	}

	bom := filepath.Join(dir, "bom.vl")
	if err := os.WriteFile(bom, []byte("\xEF\xBB\xBFa\nb\n"), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	id, err = us.Load(bom)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	unit = us.Get(id)
	if string(unit.Content) != "a\nb\n" {
		t.Errorf("Expected BOM to be stripped, got %q", string(unit.Content))
	}
	if unit.Flags&UnitHadBOM == 0 {
		t.Error("Expected UnitHadBOM flag to be set")
	}

	crlf := filepath.Join(dir, "crlf.vl")
	if err := os.WriteFile(crlf, []byte("a\r\nb\r\n"), 0o600); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	id, err = us.Load(crlf)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	unit = us.Get(id)
	if string(unit.Content) != "a\nb\n" {
		t.Errorf("Expected CRLF to normalize, got %q", string(unit.Content))
	}
	if unit.Flags&UnitNormalizedCRLF == 0 {
		t.Error("Expected UnitNormalizedCRLF flag to be set")
	}
}

func TestLoadMissingFile(t *testing.T) {
	us := NewUnitSet()
	id, err := us.Load(filepath.Join(t.TempDir(), "absent.vl"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if id != NoUnit {
		t.Errorf("Expected NoUnit on failure, got %d", id)
	}
}
