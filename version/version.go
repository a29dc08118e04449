package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the running recs binary.
type Info struct {
	Version   string
	GitCommit string
	GoVersion string
	BuildDate time.Time
	IsDirty   bool
}

// Get collects build information, filling gaps from debug.ReadBuildInfo.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildDate = t
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		case "vcs.time":
			if info.BuildDate.IsZero() {
				info.BuildDate, _ = time.Parse(time.RFC3339, s.Value)
			}
		}
	}
	return info
}

// Short returns "version[-commit][-dirty]" with the commit cut to 7 characters.
func (i Info) Short() string {
	parts := []string{i.Version}
	if i.GitCommit != "" {
		parts = append(parts, i.GitCommit[:min(7, len(i.GitCommit))])
	}
	if i.IsDirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

// Lines renders the info for `recs version`.
func (i Info) Lines() []string {
	lines := []string{"recs " + i.Short()}
	if !i.BuildDate.IsZero() {
		lines = append(lines, "built "+i.BuildDate.UTC().Format(time.RFC3339))
	}
	if i.GoVersion != "" {
		lines = append(lines, fmt.Sprintf("go %s", strings.TrimPrefix(i.GoVersion, "go")))
	}
	return lines
}

// IsRelease reports whether the binary carries a clean release version.
func (i Info) IsRelease() bool {
	return i.Version != "dev" && !i.IsDirty
}
