package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"vellum/internal/diag"
	"vellum/internal/project"
	"vellum/internal/source"
)

// loadedProject bundles everything build and check need from discovery.
type loadedProject struct {
	Manifest   *project.Manifest
	Discovered []project.DiscoveredUnit
	Set        *source.UnitSet
	Units      []*source.Unit
	// LoadBag collects per-file read failures as diagnostics.
	LoadBag *diag.Bag
}

// resolveStartDir turns the optional positional argument into the
// directory the manifest search starts from. A file argument means its
// directory.
func resolveStartDir(args []string) (string, error) {
	start := "."
	if len(args) > 0 && args[0] != "" {
		start = args[0]
	}
	info, err := os.Stat(start)
	if err != nil {
		return "", fmt.Errorf("failed to stat %q: %w", start, err)
	}
	if !info.IsDir() {
		start = filepath.Dir(start)
	}
	return start, nil
}

// loadProject locates the manifest, discovers the units it names and
// reads them into a fresh unit set. Manifest and discovery problems
// come back as Go errors; per-file read failures land in LoadBag so
// one unreadable unit does not hide the rest.
func loadProject(startDir string, maxDiagnostics int) (*loadedProject, error) {
	manifest, err := project.Load(startDir)
	if err != nil {
		return nil, err
	}
	discovered, err := project.DiscoverUnits(manifest)
	if err != nil {
		return nil, err
	}
	set := source.NewUnitSetWithBase(manifest.Root)
	bag := diag.NewBag(maxDiagnostics)
	units, _ := project.LoadUnits(set, discovered, diag.BagReporter{Bag: bag})
	return &loadedProject{
		Manifest:   manifest,
		Discovered: discovered,
		Set:        set,
		Units:      units,
		LoadBag:    bag,
	}, nil
}

// displayPaths renders unit paths project-relative for the progress view.
func displayPaths(units []*source.Unit, root string) []string {
	out := make([]string, 0, len(units))
	for _, unit := range units {
		out = append(out, formatPathForOutput(root, unit.Path))
	}
	return out
}

// projectDiagnostic folds a manifest or discovery failure into the
// diagnostic stream so it prints like any other finding.
func projectDiagnostic(err error) diag.Diagnostic {
	code := diag.PrjManifestInvalid
	switch {
	case errors.Is(err, project.ErrManifestNotFound):
		code = diag.PrjManifestNotFound
	case errors.Is(err, project.ErrBadPattern):
		code = diag.PrjBadPattern
	case errors.Is(err, project.ErrDuplicateUnit):
		code = diag.PrjDuplicateUnit
	}
	return diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  err.Error(),
		Primary:  source.Span{},
	}
}
