package backend

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/hostpkg/internal/logger"
	"github.com/glorpus-work/hostpkg/pkg/model"
)

// defaultPrefixes are the well-known directories probed for backend
// executables. Detection is a pure filesystem existence check; no
// subprocess is spawned.
var defaultPrefixes = []string{"/usr/bin", "/bin", "/usr/local/bin", "/usr/sbin"}

// detectionOrder fixes the native backend priority: the first match wins.
var detectionOrder = []model.Backend{
	model.BackendDNF,
	model.BackendAPT,
	model.BackendPacman,
	model.BackendZypper,
}

// Detect probes the well-known executable paths and returns the detected
// package management environment. It is meant to run exactly once at
// process startup; a changed environment requires a restart.
func Detect() *model.System {
	sys := detect(defaultPrefixes)
	logger.Info("package backend detected", logger.Fields{
		"native":  sys.Native.String(),
		"flatpak": sys.Flatpak,
	})
	return sys
}

func detect(prefixes []string) *model.System {
	return &model.System{
		Native:  detectNative(prefixes),
		Flatpak: commandAvailable(prefixes, "flatpak"),
	}
}

func detectNative(prefixes []string) model.Backend {
	for _, b := range detectionOrder {
		if commandAvailable(prefixes, b.String()) {
			return b
		}
	}
	return model.BackendNone
}

func commandAvailable(prefixes []string, name string) bool {
	for _, dir := range prefixes {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
