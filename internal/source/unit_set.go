package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// UnitSet manages a collection of source units and resolves spans to positions.
type UnitSet struct {
	units   []Unit            // units[0] is a placeholder for NoUnit
	index   map[string]UnitID // path -> latest id
	baseDir string            // base directory for relative path output
}

// NewUnitSet creates a new empty UnitSet.
func NewUnitSet() *UnitSet {
	return &UnitSet{
		units:   make([]Unit, 1),
		index:   make(map[string]UnitID),
		baseDir: "", // set on first Load() or explicitly
	}
}

// NewUnitSetWithBase creates a UnitSet with the given base directory.
func NewUnitSetWithBase(baseDir string) *UnitSet {
	us := NewUnitSet()
	us.baseDir = baseDir
	return us
}

// SetBaseDir sets the base directory used for relative path output.
func (unitSet *UnitSet) SetBaseDir(dir string) {
	unitSet.baseDir = dir
}

// BaseDir returns the current base directory, falling back to the working directory.
func (unitSet *UnitSet) BaseDir() string {
	if unitSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return unitSet.baseDir
}

// Add stores a unit from normalized bytes, computes LineIdx and Hash, and returns a new UnitID.
// It always creates a new UnitID even if a unit with the same path already exists.
func (unitSet *UnitSet) Add(path string, content []byte, flags UnitFlags) UnitID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	next, err := safecast.Conv[uint32](len(unitSet.units))
	if err != nil {
		panic(fmt.Errorf("unit count overflow: %w", err))
	}
	id := UnitID(next)
	unitSet.units = append(unitSet.units, Unit{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	// The index always points at the latest version of a path.
	unitSet.index[normalizedPath] = id
	return id
}

// Load reads a unit from disk, normalizes CRLF/BOM, and calls Add.
func (unitSet *UnitSet) Load(path string) (UnitID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return NoUnit, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := UnitFlags(0)
	if hadBOM {
		flags |= UnitHadBOM
	}
	if hadCRLF {
		flags |= UnitNormalizedCRLF
	}
	return unitSet.Add(path, content, flags), nil
}

// AddVirtual adds a virtual unit (stdin, test, or generated) with the UnitVirtual flag.
func (unitSet *UnitSet) AddVirtual(name string, content []byte) UnitID {
	return unitSet.Add(name, content, UnitVirtual)
}

// Get returns the unit metadata for the given ID, or nil for NoUnit and
// out-of-range IDs.
func (unitSet *UnitSet) Get(id UnitID) *Unit {
	if id == NoUnit || int(id) >= len(unitSet.units) {
		return nil
	}
	return &unitSet.units[id]
}

// Len returns the number of units, excluding the NoUnit placeholder.
func (unitSet *UnitSet) Len() int {
	return len(unitSet.units) - 1
}

// GetLatest returns the latest unit ID for the given path, if it exists.
func (unitSet *UnitSet) GetLatest(path string) (UnitID, bool) {
	id, ok := unitSet.index[normalizePath(path)]
	return id, ok
}

// GetByPath returns the latest *Unit for a path, if one was loaded into this set.
func (unitSet *UnitSet) GetByPath(path string) (*Unit, bool) {
	if id, ok := unitSet.index[normalizePath(path)]; ok {
		return &unitSet.units[id], true
	}
	return nil, false
}

// Resolve converts a span into line and column positions.
// Spans carrying NoUnit resolve to the zero LineCol.
func (unitSet *UnitSet) Resolve(span Span) (start, end LineCol) {
	u := unitSet.Get(span.Unit)
	if u == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(u.LineIdx, span.Start), toLineCol(u.LineIdx, span.End)
}

// GetLine returns the line with the given number (1-based) from the unit.
// Returns an empty string when the line does not exist.
func (u *Unit) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	var start, end, lenLineIdx, lenContent uint32
	var err error
	lenLineIdx, err = safecast.Conv[uint32](len(u.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err = safecast.Conv[uint32](len(u.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = u.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = u.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}

	return string(u.Content[start:end])
}

// FormatPath renders the unit path according to mode.
// mode: "absolute", "relative", "basename", "auto"
// baseDir: base directory for relative paths (ignored by other modes)
func (u *Unit) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(u.Path); err == nil {
			return abs
		}
		return u.Path

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(u.Path, baseDir); err == nil {
			return rel
		}
		return u.Path

	case "basename":
		return BaseName(u.Path)

	case "auto":
		// Short or relative paths stay as-is, long absolute paths shrink to basename.
		if len(u.Path) < 40 || !filepath.IsAbs(u.Path) {
			return u.Path
		}
		return BaseName(u.Path)

	default:
		return u.Path
	}
}
