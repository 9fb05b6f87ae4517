package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"vellum/internal/version"
)

const versionTagline = "ready for ink"

var versionNameColor = color.New(color.FgMagenta, color.Bold)

// buildFingerprint is the merged build metadata shown by the version
// command: link-time variables first, then whatever VCS stamp the Go
// toolchain embedded on its own.
type buildFingerprint struct {
	Version   string
	Commit    string
	CommitMsg string
	Date      string
	Modified  bool // the working tree was dirty when the binary was built
}

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
	Modified   bool   `json:"modified,omitempty"`
}

var (
	versionFormat      string
	versionShowHash    bool
	versionShowMessage bool
	versionShowDate    bool
	versionShowFull    bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowMessage, "message", false, "include git commit message")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show vellum build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := versionOptions{
			format:      strings.ToLower(versionFormat),
			showHash:    versionShowHash || versionShowFull,
			showMessage: versionShowMessage || versionShowFull,
			showDate:    versionShowDate || versionShowFull,
		}
		if opts.format != "pretty" && opts.format != "json" {
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}

		fp := collectFingerprint(debug.ReadBuildInfo)
		if opts.format == "json" {
			return renderVersionJSON(cmd.OutOrStdout(), fp, opts)
		}
		renderVersionPretty(cmd.OutOrStdout(), fp, opts)
		return nil
	},
}

// collectFingerprint merges the link-time variables with the VCS stamp
// from the build info. Explicit -ldflags values win; the stamp only
// fills fields the linker left blank.
func collectFingerprint(readBuildInfo func() (*debug.BuildInfo, bool)) buildFingerprint {
	fp := buildFingerprint{
		Version:   strings.TrimSpace(version.Version),
		Commit:    strings.TrimSpace(version.GitCommit),
		CommitMsg: strings.TrimSpace(version.GitMessage),
		Date:      strings.TrimSpace(version.BuildDate),
	}
	if fp.Version == "" {
		fp.Version = "dev"
	}

	bi, ok := readBuildInfo()
	if !ok {
		return fp
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if fp.Commit == "" {
				fp.Commit = s.Value
			}
		case "vcs.time":
			if fp.Date == "" {
				fp.Date = s.Value
			}
		case "vcs.modified":
			fp.Modified = s.Value == "true"
		}
	}
	return fp
}

func renderVersionPretty(out io.Writer, fp buildFingerprint, opts versionOptions) {
	fmt.Fprintf(out, "%s %s - %s\n", versionNameColor.Sprint("vellum"), fp.Version, versionTagline)
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s%s\n", valueOrUnknown(fp.Commit), dirtyMark(fp))
	}
	if opts.showMessage {
		fmt.Fprintf(out, "message: %s\n", valueOrUnknown(fp.CommitMsg))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(fp.Date))
	}
	if !opts.showHash && !opts.showMessage && !opts.showDate {
		fmt.Fprintln(out, "set --hash, --message, --date, or --full for more build trivia")
	}
}

func renderVersionJSON(out io.Writer, fp buildFingerprint, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "vellum",
		Version: fp.Version,
		Tagline: versionTagline,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(fp.Commit)
		payload.Modified = fp.Modified
	}
	if opts.showMessage {
		payload.GitMessage = valueOrUnknown(fp.CommitMsg)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(fp.Date)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func dirtyMark(fp buildFingerprint) string {
	if fp.Modified {
		return " (modified)"
	}
	return ""
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
