// Package version holds the build version reported by the -v flag.
package version

import "runtime"

// Version is overridden at build time with
// -ldflags "-X github.com/lixenwraith/pymodule/version.Version=x.y.z".
var Version = "3.4.1"

// Name is the program name printed with the version.
const Name = "pymodule"

// String returns the version line printed for -v.
func String() string {
	return Name + " " + Version
}

// GoVersion reports the toolchain the binary was built with.
func GoVersion() string {
	return runtime.Version()
}
