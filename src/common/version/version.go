// Package version describes the running joblyd build.
package version

import (
	"fmt"
	"runtime"
)

// Info holds build information, usually injected through ldflags
type Info struct {
	Version   string `json:"version" example:"1.0.0"`
	BuildDate string `json:"build_date" example:"2026-01-01T00:00:00Z"`
	GitCommit string `json:"git_commit" example:"4f9f297"`
	GoVersion string `json:"go_version" example:"go1.24.5"`
}

// New returns build info, substituting placeholders for empty values
func New(ver, buildDate, commit string) Info {
	if ver == "" {
		ver = "dev"
	}
	if buildDate == "" {
		buildDate = "unknown"
	}
	if commit == "" {
		commit = "unknown"
	}
	return Info{
		Version:   ver,
		BuildDate: buildDate,
		GitCommit: commit,
		GoVersion: runtime.Version(),
	}
}

// Short returns the version and commit on one line
func (i Info) Short() string {
	return fmt.Sprintf("%s-%s", i.Version, i.GitCommit)
}

// Full returns a detailed multi-line version string
func (i Info) Full() string {
	return fmt.Sprintf(`joblyd %s
  Build Date: %s
  Git Commit: %s
  Go Version: %s`, i.Version, i.BuildDate, i.GitCommit, i.GoVersion)
}
