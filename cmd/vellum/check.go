package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vellum/internal/diag"
	"vellum/internal/emit"
	"vellum/internal/lower"
	"vellum/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Check a vellum project without writing outputs",
	Long:  "Run discovery and the transform stage only: parse and check every unit, report diagnostics, write nothing.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	startDir, err := resolveStartDir(args)
	if err != nil {
		return err
	}
	proj, err := loadProject(startDir, out.Max)
	if err != nil {
		return reportProjectFailure(cmd, err, out)
	}

	bag := diag.NewBag(out.Max)
	bag.Merge(proj.LoadBag)
	if len(proj.Units) == 0 && bag.Len() == 0 {
		bag.Add(diag.Diagnostic{
			Severity: diag.SevWarning,
			Code:     diag.PrjNoSources,
			Message:  fmt.Sprintf("no source units matched under %s", proj.Manifest.Root),
			Primary:  source.Span{},
		})
	}

	// Unlike build, check never short-circuits: the point is to see
	// every unit's findings in one pass.
	start := time.Now()
	transformer := lower.New(lower.Options{MaxErrors: maxErrorsFor(out.Max)})
	failed := 0
	for _, unit := range proj.Units {
		unitBag := diag.NewBag(out.Max)
		reporter := diag.BagReporter{Bag: unitBag}
		emit.WellFormedCheck(unit, reporter)
		if !unitBag.HasErrors() {
			if _, err := transformer.Transform(cmd.Context(), unit, reporter); err != nil {
				return err
			}
		}
		if unitBag.HasErrors() {
			failed++
		}
		bag.Merge(unitBag)
	}
	elapsed := time.Since(start)

	if err := printDiagnostics(bag, proj.Set, out); err != nil {
		return err
	}
	if !out.Quiet && out.Format == "pretty" {
		checked := len(proj.Units)
		fmt.Fprintf(os.Stdout, "checked %d units: %d ok, %d failed; %.2f ms\n",
			checked, checked-failed, failed, toMillis(elapsed))
	}
	if bag.HasErrors() {
		return failWithDiagnostics(cmd)
	}
	return nil
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|compact)")
}
