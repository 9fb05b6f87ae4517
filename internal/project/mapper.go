package project

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"vellum/internal/source"
)

// Mapper resolves output destinations for units: the root-relative
// key moved under the emit directory, with the source extension
// swapped for the target one. It implements the emit path resolver.
type Mapper struct {
	// roots in manifest order; key lookup takes the first root that
	// contains the unit, matching discovery.
	roots   []string
	emitDir string
	ext     string
}

// NewMapper builds the resolver from a loaded manifest.
func NewMapper(m *Manifest) (*Mapper, error) {
	if m == nil {
		return nil, errors.New("project: nil manifest")
	}
	roots := make([]string, 0, len(m.Source.Roots))
	for _, root := range m.Source.Roots {
		roots = append(roots, filepath.Join(m.Root, root))
	}
	return &Mapper{
		roots:   roots,
		emitDir: filepath.Join(m.Root, m.Emit.Dir),
		ext:     m.Emit.Ext,
	}, nil
}

// EmitDir returns the absolute emit directory.
func (m *Mapper) EmitDir() string { return m.emitDir }

// Key maps an absolute unit path to its root-relative key.
func (m *Mapper) Key(unitPath string) (string, bool) {
	clean := filepath.Clean(unitPath)
	for _, root := range m.roots {
		if !pathWithin(root, clean) {
			continue
		}
		rel, err := filepath.Rel(root, clean)
		if err != nil {
			continue
		}
		return filepath.ToSlash(rel), true
	}
	return "", false
}

// ResolveOutputPath refuses units outside every source root; anything
// else would escape the emit directory.
func (m *Mapper) ResolveOutputPath(unit *source.Unit) (string, error) {
	if unit == nil {
		return "", errors.New("project: nil unit")
	}
	key, ok := m.Key(unit.Path)
	if !ok {
		return "", fmt.Errorf("%s is outside every source root", unit.Path)
	}
	return m.destForKey(key), nil
}

func (m *Mapper) destForKey(key string) string {
	stem := strings.TrimSuffix(key, path.Ext(key))
	return filepath.Join(m.emitDir, filepath.FromSlash(stem+m.ext))
}

// DistinctOutputs verifies that no two discovered units share a
// destination. Two keys differing only in their source extension
// would otherwise race on one file during the write stage.
func DistinctOutputs(mapper *Mapper, units []DiscoveredUnit) error {
	seen := make(map[string]string, len(units))
	for _, unit := range units {
		dest := mapper.destForKey(unit.Key)
		if prev, ok := seen[dest]; ok {
			return fmt.Errorf("units %q and %q both emit to %s: %w", prev, unit.Key, dest, ErrDuplicateUnit)
		}
		seen[dest] = unit.Key
	}
	return nil
}

func pathWithin(root, p string) bool {
	if root == "" || p == "" {
		return false
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
