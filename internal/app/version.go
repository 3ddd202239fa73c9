package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build information, set with -ldflags "-X github.com/agbru/rsacalc/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version, either as the
// "version" command or as a -version / --version / -V flag before "--".
func HasVersionFlag(args []string) bool {
	if len(args) > 0 && args[0] == "version" {
		return true
	}
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the build information to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "rsacalc %s (commit %s, built %s) %s %s/%s\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
