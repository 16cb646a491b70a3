// Package version returns the version string of the running dapi-server build.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// The value of these vars are set through linker options.
var gitCommit = "Local build"
var buildDate = "Moments ago"
var gitTag = "Unknown"

// Version returns the version string of this build.
func Version() string {
	if buildDate == "{DATE}" {
		buildDate = time.Now().Format(time.RFC3339)
	}
	return fmt.Sprintf("%s. Built at: %s", BuildData(), buildDate)
}

// SemanticVersion returns the git tag of the build.
func SemanticVersion() string {
	return gitTag
}

// BuildData returns the git tag and commit of the current build. Local builds
// fall back to the vcs revision recorded by the go toolchain.
func BuildData() string {
	if gitCommit == "{STABLE_GIT_COMMIT}" || gitCommit == "Local build" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					gitCommit = setting.Value
				}
			}
		}
	}
	return fmt.Sprintf("DapiServer/%s/%s (%s %s/%s)", gitTag, gitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
