// Package version carries the build metadata stamped into the vellum
// binary. Every variable can be overridden at link time:
//
//	go build -ldflags "-X vellum/internal/version.Version=1.0.0"
package version

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is the hash of the commit the binary was built from.
	GitCommit = ""

	// GitMessage is the subject line of that commit.
	GitMessage = ""

	// BuildDate is the build timestamp in ISO-8601.
	BuildDate = ""
)
