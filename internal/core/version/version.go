// Package version reports build metadata
// release builds stamp it with -ldflags "-X marketbrowse/internal/core/version.version=v0.1.0 ..."
// otherwise the commit comes from the vcs stamp of the go build info
package version

import (
	"runtime/debug"
	"sync"
)

var (
	version = "dev"
	commit  = ""
	date    = "unknown"
)

// BuildInfo holds version information about the build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the API service
func Info() BuildInfo {
	return BuildInfo{
		Service: "marketbrowse-api",
		Version: version,
		Commit:  Commit(),
		Date:    date,
	}
}

// Version is the stamped release version, "dev" when unstamped
func Version() string { return version }

var vcsCommit = sync.OnceValue(func() string {
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
})

// Commit is the stamped commit or the short vcs revision
func Commit() string {
	if commit != "" {
		return commit
	}
	return vcsCommit()
}
