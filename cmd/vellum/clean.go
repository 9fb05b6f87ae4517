package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vellum/internal/ledger"
	"vellum/internal/project"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path]",
	Short: "Remove the outputs recorded by the last build",
	Long:  "Remove the files the emit ledger records and prune directories that emptied out.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	startDir, err := resolveStartDir(args)
	if err != nil {
		return err
	}
	manifest, err := project.Load(startDir)
	if err != nil {
		return err
	}
	mapper, err := project.NewMapper(manifest)
	if err != nil {
		return err
	}
	emitDir := formatPathForOutput(manifest.Root, mapper.EmitDir())
	removed, err := ledger.Clean(mapper.EmitDir())
	if err != nil {
		return fmt.Errorf("failed to clean %s: %w", emitDir, err)
	}
	if quiet {
		return nil
	}
	if removed == 0 {
		fmt.Fprintln(os.Stdout, "nothing to clean")
		return nil
	}
	fmt.Fprintf(os.Stdout, "removed %d file(s) under %s\n", removed, emitDir)
	return nil
}
