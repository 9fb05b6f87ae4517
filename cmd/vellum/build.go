package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vellum/internal/diag"
	"vellum/internal/emit"
	"vellum/internal/ledger"
	"vellum/internal/lower"
	"vellum/internal/project"
	"vellum/internal/render"
	"vellum/internal/source"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [path]",
	Short: "Build a vellum project",
	Long:  "Build a vellum project using vellum.toml as the project definition.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	ifChanged, err := cmd.Flags().GetBool("if-changed")
	if err != nil {
		return err
	}
	batchSize, err := cmd.Flags().GetInt("batch-size")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
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

	// Flags win over the manifest, the manifest over built-in defaults.
	writeOnlyIfChanged := proj.Manifest.Emit.WriteOnlyIfChanged
	if cmd.Flags().Changed("if-changed") {
		writeOnlyIfChanged = ifChanged
	}
	if !cmd.Flags().Changed("batch-size") {
		batchSize = proj.Manifest.Emit.BatchSize
	}

	mapper, err := project.NewMapper(proj.Manifest)
	if err != nil {
		return err
	}
	if err := project.DistinctOutputs(mapper, proj.Discovered); err != nil {
		return reportProjectFailure(cmd, err, out)
	}

	if proj.LoadBag.HasErrors() {
		if err := printDiagnostics(proj.LoadBag, proj.Set, out); err != nil {
			return err
		}
		return failWithDiagnostics(cmd)
	}
	if len(proj.Units) == 0 {
		return reportNoSources(proj, out)
	}

	req := emit.Request{
		Units:              proj.Units,
		Transformer:        lower.New(lower.Options{MaxErrors: maxErrorsFor(out.Max)}),
		Renderer:           render.New(),
		Paths:              mapper,
		PreChecks:          []emit.PreEmitCheck{emit.WellFormedCheck},
		WriteOnlyIfChanged: writeOnlyIfChanged,
		WriteBatchSize:     batchSize,
		RenderJobs:         jobs,
		MaxDiagnostics:     out.Max,
		// Pretty runs get human-readable stage lines instead; timing
		// diagnostics are the machine-readable channel.
		Verbose: out.Timings && out.Format == "json",
	}

	var result emit.RunResult
	if shouldUseTUI(uiModeValue) {
		result, err = runEmitWithUI(cmd.Context(), "vellum build",
			displayPaths(proj.Units, proj.Manifest.Root), &req)
	} else {
		result, err = emit.Run(cmd.Context(), &req)
	}
	if err != nil {
		if out.Timings && out.Format == "pretty" {
			printStageTimings(os.Stdout, result.Timings)
		}
		return err
	}

	if err := printDiagnostics(result.Bag, proj.Set, out); err != nil {
		return err
	}
	if result.Emitted {
		recordLedger(mapper.EmitDir(), &result)
	}
	if out.Timings && out.Format == "pretty" {
		printStageTimings(os.Stdout, result.Timings)
	}
	if !out.Quiet && out.Format == "pretty" {
		fmt.Fprintf(os.Stdout, "%s\n", result.Stats.Summary())
	}
	if !result.Emitted {
		return failWithDiagnostics(cmd)
	}
	return nil
}

// reportNoSources handles a project whose globs matched nothing. An
// empty project is a warning, not a failed build.
func reportNoSources(proj *loadedProject, opts outputOptions) error {
	bag := diag.NewBag(1)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.PrjNoSources,
		Message:  fmt.Sprintf("no source units matched under %s", proj.Manifest.Root),
		Primary:  source.Span{},
	})
	return printDiagnostics(bag, proj.Set, opts)
}

// recordLedger stores the run outcome next to the outputs. Failing to
// record never fails a build that already landed.
func recordLedger(emitDir string, result *emit.RunResult) {
	outputs := make([]ledger.Output, 0, len(result.Results))
	for _, res := range result.Results {
		if !res.Written && !res.Skipped {
			continue
		}
		outputs = append(outputs, ledger.Output{
			Path:   res.Dest,
			Digest: ledger.DigestBytes(res.Text),
		})
	}
	led := ledger.New(outputs, ledger.Stats{
		Units:   result.Stats.Total,
		Written: result.Stats.Written,
		Skipped: result.Stats.Skipped,
	})
	if err := ledger.Save(emitDir, led); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to record emit ledger: %v\n", err)
	}
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func init() {
	buildCmd.Flags().Bool("if-changed", false, "skip writing outputs that already match")
	buildCmd.Flags().Int("batch-size", 0, "writes in flight at once (0 takes the manifest value)")
	buildCmd.Flags().Int("jobs", 0, "parallel render workers (0 means GOMAXPROCS)")
	buildCmd.Flags().String("ui", "auto", "user interface (auto|on|off)")
	buildCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json|compact)")
}
