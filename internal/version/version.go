// Package version reports the build identity of the sdtabs binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

const (
	defaultModule = "github.com/NexusOnePlus/spacedrive"
	unknown       = "v0.0.0-unknown"
)

// buildVersion is set via -ldflags "-X github.com/NexusOnePlus/spacedrive/internal/version.buildVersion=...".
var buildVersion = ""

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info describes the running build.
type Info struct {
	Module    string
	Version   string
	Revision  string
	Modified  bool
	GoVersion string
}

// String renders the build identity on one line.
func (i Info) String() string {
	out := fmt.Sprintf("%s %s (%s)", i.Module, i.Version, i.GoVersion)
	if i.Revision != "" {
		out += " rev " + i.Revision
	}
	return out
}

// Current returns the version string without a dirty suffix.
func Current() string {
	return Read().Version
}

// Read collects the build identity from the linker flag or the embedded
// build info.
func Read() Info {
	out := Info{Module: defaultModule, Version: unknown, GoVersion: runtime.Version()}
	info, ok := readBuildInfo()
	if ok && info != nil {
		if path := strings.TrimSpace(info.Main.Path); path != "" {
			out.Module = path
		}
		out.Revision, out.Modified = vcsState(info)
	}
	switch {
	case strings.TrimSpace(buildVersion) != "":
		out.Version = strings.TrimSuffix(strings.TrimSpace(buildVersion), "+dirty")
	case ok && info != nil && info.Main.Version != "" && info.Main.Version != "(devel)":
		out.Version = strings.TrimSuffix(info.Main.Version, "+dirty")
	case ok:
		if v := pseudoVersion(info); v != "" {
			out.Version = v
		}
	}
	return out
}

func vcsState(info *debug.BuildInfo) (string, bool) {
	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	return revision, modified
}

func pseudoVersion(info *debug.BuildInfo) string {
	if info == nil {
		return ""
	}
	revision, _ := vcsState(info)
	var vcsTime string
	for _, setting := range info.Settings {
		if setting.Key == "vcs.time" {
			vcsTime = setting.Value
		}
	}
	if revision == "" || vcsTime == "" {
		return ""
	}
	parsed, err := time.Parse(time.RFC3339, vcsTime)
	if err != nil {
		return ""
	}
	return "v0.0.0-" + parsed.UTC().Format("20060102150405") + "-" + revision
}
