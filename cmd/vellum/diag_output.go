package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"vellum/internal/diag"
	"vellum/internal/diagfmt"
	"vellum/internal/source"
)

// errDiagnostics is the exit error for runs that already printed their
// findings. Cobra still reports it, so the last line names the reason
// without repeating any diagnostic.
var errDiagnostics = errors.New("diagnostics reported errors")

// outputOptions carries the presentation flags shared by build and check.
type outputOptions struct {
	Format  string
	Color   bool
	Quiet   bool
	Timings bool
	Max     int
}

func readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	var opts outputOptions
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, err
	}
	format = strings.TrimSpace(strings.ToLower(format))
	switch format {
	case "", "pretty":
		format = "pretty"
	case "json", "compact":
	default:
		return opts, fmt.Errorf("invalid --format value %q (expected pretty|json|compact)", format)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return opts, fmt.Errorf("failed to get color flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics <= 0 {
		return opts, fmt.Errorf("invalid --max-diagnostics value %d (must be positive)", maxDiagnostics)
	}
	opts.Format = format
	opts.Color = colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	opts.Quiet = quiet
	opts.Timings = timings
	opts.Max = maxDiagnostics
	return opts, nil
}

// printDiagnostics renders the bag in the requested format. JSON goes
// out even for an empty bag so consumers always receive a document;
// pretty and compact output stay silent when there is nothing to say.
func printDiagnostics(bag *diag.Bag, set *source.UnitSet, opts outputOptions) error {
	if set == nil {
		set = source.NewUnitSet()
	}
	if opts.Format == "json" {
		return diagfmt.JSON(os.Stdout, bag, set, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			Max:              opts.Max,
			IncludeNotes:     true,
		})
	}
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	if opts.Format == "compact" {
		if out := diag.FormatCompactDiagnostics(bag.Items(), set, true); out != "" {
			fmt.Fprintln(os.Stdout, out)
		}
		return nil
	}
	diagfmt.Pretty(os.Stdout, bag, set, diagfmt.PrettyOpts{
		Color:     opts.Color,
		Context:   2,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	})
	return nil
}

// reportProjectFailure renders a manifest or discovery error through
// the diagnostic formatters so every failure speaks one language.
func reportProjectFailure(cmd *cobra.Command, failure error, opts outputOptions) error {
	bag := diag.NewBag(1)
	bag.Add(projectDiagnostic(failure))
	if err := printDiagnostics(bag, nil, opts); err != nil {
		return err
	}
	return failWithDiagnostics(cmd)
}

// failWithDiagnostics suppresses cobra's usage dump; the diagnostics
// above the exit line already explain the failure.
func failWithDiagnostics(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	return errDiagnostics
}

// maxErrorsFor bounds the per-unit parser error count by the
// diagnostic budget.
func maxErrorsFor(maxDiagnostics int) uint {
	if maxDiagnostics <= 0 {
		return 0
	}
	return uint(maxDiagnostics)
}
