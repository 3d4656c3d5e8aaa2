// Package version reports what build of draftdesk is running
package version

import "runtime/debug"

// BuildInfo holds version information about the build
type BuildInfo struct {
	Service   string `json:"service"    example:"draftdesk-api"`
	Version   string `json:"version"    example:"v0.3.0"`
	Commit    string `json:"commit"     example:"4f2c1aa"`
	Date      string `json:"date"       example:"2026-03-01"`
	GoVersion string `json:"go_version" example:"go1.25.0"`
}

// set with -ldflags "-X draftdesk/internal/core/version.version=v0.3.0 -X draftdesk/internal/core/version.commit=4f2c1aa"
var (
	service = "draftdesk-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information, a dev build falls back to the vcs stamp of the binary
func Info() BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	if info, ok := debug.ReadBuildInfo(); ok {
		bi.GoVersion = info.GoVersion
		if bi.Commit == "none" {
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					bi.Commit = s.Value
				case "vcs.time":
					if bi.Date == "unknown" {
						bi.Date = s.Value
					}
				}
			}
		}
	}
	return bi
}

// Named returns Info with the service name replaced, each binary reports itself
func Named(svc string) BuildInfo {
	bi := Info()
	if svc != "" {
		bi.Service = svc
	}
	return bi
}
