// Package misc keeps build time information about the program.
package misc

import (
	"os"
	"path/filepath"
	"strings"
)

// Set by linker, see Taskfile.
var (
	appName = "tocconv"
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns program name. When program binary was renamed (or
// symlinked) its base name without extension is used.
func GetAppName() string {
	if len(os.Args) == 0 || len(os.Args[0]) == 0 {
		return appName
	}
	base := filepath.Base(os.Args[0])
	// go test binaries
	if strings.HasSuffix(base, ".test") || strings.HasSuffix(base, ".test.exe") {
		return appName
	}
	if name := strings.TrimSuffix(base, filepath.Ext(base)); len(name) > 0 {
		return name
	}
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
