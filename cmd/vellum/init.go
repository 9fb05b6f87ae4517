package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vellum/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new vellum project",
	Long: `Initialize a new vellum project by creating a project manifest (vellum.toml)
and a starter module (src/main.vl). If [path|name] is omitted, initializes the
current directory. If a non-existing name is provided, a directory will be
created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(_ *cobra.Command, args []string) error {
	target, err := resolveInitTarget(args)
	if err != nil {
		return err
	}

	// Refuse before touching the filesystem: a second init and a
	// project nested inside another both leave no trace.
	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}
	if root, ok, err := project.FindRoot(filepath.Dir(target)); err == nil && ok {
		return fmt.Errorf("%s is inside the vellum project at %s", target, root)
	}

	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Project name comes from the directory basename.
	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "vellum-project"
	}

	if err := os.WriteFile(manifestPath, []byte(defaultManifest(name)), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	srcDir := filepath.Join(target, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", srcDir, err)
	}
	mainPath := filepath.Join(srcDir, "main.vl")
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainVL()), 0o600); err != nil {
			return fmt.Errorf("failed to write main.vl: %w", err)
		}
		createdMain = true
	}

	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, relErr := filepath.Rel(wd, target); relErr == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized vellum project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - vellum.toml\n")
	if createdMain {
		fmt.Fprintf(os.Stdout, "  - src/main.vl\n")
	} else {
		fmt.Fprintf(os.Stdout, "  - src/main.vl (existing)\n")
	}
	return nil
}

func resolveInitTarget(args []string) (string, error) {
	if len(args) == 0 || args[0] == "." {
		return os.Getwd()
	}
	arg := args[0]
	if filepath.IsAbs(arg) {
		return arg, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, arg), nil
}

// defaultManifest returns the minimal manifest for a fresh project.
func defaultManifest(name string) string {
	return fmt.Sprintf(`# Vellum project manifest
[package]
name = "%s"
version = "0.1.0"

[source]
roots = ["src"]
include = ["**/*.vl"]

[emit]
dir = "dist"
ext = ".js"
`, name)
}

// defaultMainVL returns the starter module written on init.
func defaultMainVL() string {
	return `// Starter module. Constants declared here compile to plain JavaScript.

export const greeting: string = "Hello, vellum!";
export const answer: number = 42;
`
}
