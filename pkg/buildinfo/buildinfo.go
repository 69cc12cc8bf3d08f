// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.reggae.sh/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"fmt"
	"os"
	"runtime"

	"src.reggae.sh/pkg/prog"
)

// Version identifies the version of reggae. On development commits, it
// identifies the next release.
const Version = "v0.3.0"

// VersionSuffix is appended to Version in the output of "reggae -version" and
// "reggae -buildinfo" to build the full version string.
var VersionSuffix = "-dev.unknown"

// Reproducible identifies whether the build is reproducible.
var Reproducible = "false"

// Program is the buildinfo subprogram.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version && !f.BuildInfo {
		return prog.ErrNotSuitable
	}
	fullVersion := Version + VersionSuffix
	if f.Version {
		fmt.Fprintln(fds[1], fullVersion)
		return nil
	}
	fmt.Fprintln(fds[1], "Version:", fullVersion)
	fmt.Fprintln(fds[1], "Go version:", runtime.Version())
	fmt.Fprintln(fds[1], "Reproducible build:", Reproducible)
	return nil
}
