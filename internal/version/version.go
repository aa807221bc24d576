package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These are set at build time with -ldflags "-X ...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns a one-line description of the running binary.
func Info() string {
	commit := Commit
	if commit == "unknown" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					commit = s.Value[:7]
				}
			}
		}
	}
	return fmt.Sprintf("%s (commit %s, built %s, %s)", Version, commit, BuildDate, runtime.Version())
}

func ShowVersion() {
	fmt.Println(Info())
}
