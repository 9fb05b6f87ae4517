package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-zglob"

	"vellum/internal/diag"
	"vellum/internal/source"
)

var (
	// ErrBadPattern indicates an include pattern zglob could not expand.
	ErrBadPattern = errors.New("invalid include pattern")
	// ErrDuplicateUnit indicates two discovered units with the same key
	// or the same output destination.
	ErrDuplicateUnit = errors.New("duplicate unit")
)

// DiscoveredUnit is one source file picked up by the manifest globs.
type DiscoveredUnit struct {
	// AbsPath is the absolute filesystem location.
	AbsPath string
	// Key is the path relative to its source root, slash-separated.
	// Output destinations derive from it.
	Key string
	// Root is the absolute source root the unit was found under.
	Root string
}

// DiscoverUnits expands the manifest's include patterns under every
// source root. The result is sorted by absolute path and de-duplicated:
// a file reachable through several patterns or nested roots appears
// once, keyed by the first root in manifest order that contains it.
// The same key under two different roots is a conflict, because both
// units would claim one output destination.
func DiscoverUnits(m *Manifest) ([]DiscoveredUnit, error) {
	if m == nil {
		return nil, errors.New("project: nil manifest")
	}
	seenPath := make(map[string]bool)
	byKey := make(map[string]DiscoveredUnit)
	var units []DiscoveredUnit
	for _, root := range m.Source.Roots {
		rootAbs := filepath.Join(m.Root, root)
		for _, pattern := range m.Source.Include {
			matches, err := zglob.Glob(filepath.Join(rootAbs, pattern))
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					// The root does not exist yet; nothing to pick up.
					continue
				}
				return nil, fmt.Errorf("pattern %q under %s: %v: %w", pattern, root, err, ErrBadPattern)
			}
			for _, match := range matches {
				info, statErr := os.Stat(match)
				if statErr != nil || info.IsDir() {
					continue
				}
				abs, absErr := filepath.Abs(match)
				if absErr != nil {
					return nil, fmt.Errorf("failed to resolve %q: %w", match, absErr)
				}
				if seenPath[abs] {
					continue
				}
				seenPath[abs] = true
				rel, relErr := filepath.Rel(rootAbs, abs)
				if relErr != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
					continue
				}
				unit := DiscoveredUnit{AbsPath: abs, Key: filepath.ToSlash(rel), Root: rootAbs}
				if prev, exists := byKey[unit.Key]; exists {
					return nil, fmt.Errorf("unit %q found under both %s and %s: %w",
						unit.Key, prev.Root, unit.Root, ErrDuplicateUnit)
				}
				byKey[unit.Key] = unit
				units = append(units, unit)
			}
		}
	}
	sort.Slice(units, func(i, j int) bool { return units[i].AbsPath < units[j].AbsPath })
	return units, nil
}

// LoadUnits reads every discovered unit into the set. Read failures
// become IOLoadFileError diagnostics and loading continues, so one
// unreadable file does not hide the rest.
func LoadUnits(set *source.UnitSet, units []DiscoveredUnit, reporter diag.Reporter) ([]*source.Unit, bool) {
	loaded := make([]*source.Unit, 0, len(units))
	ok := true
	for _, unit := range units {
		id, err := set.Load(unit.AbsPath)
		if err != nil {
			ok = false
			diag.ReportError(reporter, diag.IOLoadFileError, source.Span{},
				"failed to load file: "+err.Error()).Emit()
			continue
		}
		loaded = append(loaded, set.Get(id))
	}
	return loaded, ok
}
