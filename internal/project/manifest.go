package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrManifestNotFound indicates no vellum.toml above the start directory.
	ErrManifestNotFound = errors.New("vellum.toml not found")
	// ErrPackageSectionMissing indicates that [package] is missing in the manifest.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or empty.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// Manifest is a decoded and validated vellum.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Source  SourceSection  `toml:"source"`
	Emit    EmitSection    `toml:"emit"`

	// Path is the absolute manifest location; Root its directory.
	Path string `toml:"-"`
	Root string `toml:"-"`
}

// PackageSection is the [package] table.
type PackageSection struct {
	Name string `toml:"name"`
}

// SourceSection is the [source] table. Roots are project-relative
// directories; Include holds zglob patterns expanded under each root.
type SourceSection struct {
	Roots   []string `toml:"roots"`
	Include []string `toml:"include"`
}

// EmitSection is the [emit] table.
type EmitSection struct {
	Dir                string `toml:"dir"`
	Ext                string `toml:"ext"`
	WriteOnlyIfChanged bool   `toml:"write_only_if_changed"`
	BatchSize          int    `toml:"batch_size"`
}

// Load locates the manifest upward from startDir and decodes it.
func Load(startDir string) (*Manifest, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", startDir, ErrManifestNotFound)
	}
	return LoadFile(manifestPath)
}

// LoadFile decodes and validates one manifest file.
func LoadFile(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	m.Package.Name = strings.TrimSpace(m.Package.Name)
	if !meta.IsDefined("package", "name") || m.Package.Name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}
	m.Path = abs
	m.Root = filepath.Dir(abs)
	if err := m.normalize(); err != nil {
		return nil, err
	}
	return &m, nil
}

// normalize fills defaults and validates the path-shaped fields.
// Roots and the emit directory must stay inside the project root.
func (m *Manifest) normalize() error {
	if len(m.Source.Roots) == 0 {
		m.Source.Roots = []string{"src"}
	}
	for i, root := range m.Source.Roots {
		clean, err := m.projectRelDir("[source].roots", root)
		if err != nil {
			return err
		}
		m.Source.Roots[i] = clean
	}
	if len(m.Source.Include) == 0 {
		m.Source.Include = []string{"**/*.vl"}
	}
	for _, pattern := range m.Source.Include {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("%s: invalid [source].include entry: empty pattern", m.Path)
		}
	}

	if strings.TrimSpace(m.Emit.Dir) == "" {
		m.Emit.Dir = "dist"
	}
	clean, err := m.projectRelDir("[emit].dir", m.Emit.Dir)
	if err != nil {
		return err
	}
	m.Emit.Dir = clean

	ext := strings.TrimSpace(m.Emit.Ext)
	if ext == "" {
		ext = ".js"
	}
	if !strings.HasPrefix(ext, ".") || len(ext) == 1 {
		return fmt.Errorf("%s: invalid [emit].ext %q: want an extension like %q", m.Path, m.Emit.Ext, ".js")
	}
	m.Emit.Ext = ext

	if m.Emit.BatchSize < 0 {
		return fmt.Errorf("%s: invalid [emit].batch_size %d: must not be negative", m.Path, m.Emit.BatchSize)
	}
	return nil
}

func (m *Manifest) projectRelDir(field, dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", fmt.Errorf("%s: invalid %s entry: empty path", m.Path, field)
	}
	if filepath.IsAbs(dir) {
		return "", fmt.Errorf("%s: invalid %s entry %q: must be relative", m.Path, field, dir)
	}
	clean := filepath.Clean(filepath.FromSlash(dir))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: invalid %s entry %q: escapes the project root", m.Path, field, dir)
	}
	return clean, nil
}
