// Package version reports build information for pgn.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   string // Set via ldflags.
	Branch    string
	BuildUser string
	BuildDate string

	Revision  = revision(readSettings())
	GoVersion = runtime.Version()
	GoOS      = runtime.GOOS
	GoArch    = runtime.GOARCH
)

// GetVersion returns the release version, or the VCS revision for
// development builds.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// Info returns the version followed by the revision and platform, as shown
// by --version.
func Info() string {
	return fmt.Sprintf("%s (revision %s, %s %s/%s)", GetVersion(), Revision, GoVersion, GoOS, GoArch)
}

func readSettings() []debug.BuildSetting {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}

	return buildInfo.Settings
}

func revision(settings []debug.BuildSetting) string {
	rev := "unknown"
	dirty := ""

	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value[:min(len(s.Value), 7)]
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "-dirty"
			}
		}
	}

	return rev + dirty
}
