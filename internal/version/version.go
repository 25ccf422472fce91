package version

import (
	"fmt"
	"runtime"
)

// Build metadata, overridden with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/alexiusacademia/gotmd/internal/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.3.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const (
	Author = "Alexius Academia"
	Year   = "2025"
)

// Short is the one-line version string
func Short() string {
	return "gotmd v" + Version
}

// Detail describes the build: commit, build time and Go toolchain
func Detail() string {
	return fmt.Sprintf("commit %s, built %s, %s %s/%s",
		GitCommit, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
