// Package buildinfo reports which metro build is running.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/metro/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/metro/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/metro/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with go install carry no ldflags; [Get] then falls back to
// the module version and VCS stamps the Go toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Unstamped values of the ldflags variables.
const (
	devVersion  = "dev"
	noneCommit  = "none"
	unknownDate = "unknown"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = devVersion

	// Commit is the git commit SHA.
	Commit = noneCommit

	// Date is the build timestamp.
	Date = unknownDate
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info describes a build. It is served as JSON by the HTTP server.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Get returns the build information. ldflags values win over the embedded
// module and VCS stamps; a dirty working tree marks the commit.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == devVersion && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}

	var revision, modified, vcsTime string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value
		case "vcs.time":
			vcsTime = s.Value
		}
	}
	if info.Commit == noneCommit && revision != "" {
		info.Commit = revision
		if modified == "true" {
			info.Commit += "-dirty"
		}
	}
	if info.Date == unknownDate && vcsTime != "" {
		info.Date = vcsTime
	}
	return info
}

// String returns the formatted build information.
func String() string {
	info := Get()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", info.Version, info.Commit, info.Date)
}

// Template returns the version template for the cobra root command.
func Template() string {
	info := Get()
	s := fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", info.Version, info.Commit, info.Date)
	if info.GoVersion != "" {
		s += "go: " + info.GoVersion + "\n"
	}
	return s
}
