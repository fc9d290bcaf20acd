package reqio

import (
	"fmt"
	"runtime"
)

// Version is set at build time:
//
//	go build -ldflags "-X github.com/aretw0/reqio.Version=1.2.3"
var Version = "DEVBUILD"

// BuildInfo returns Version with the toolchain and platform it was built for.
func BuildInfo() string {
	return fmt.Sprintf("%s (%s %s-%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
