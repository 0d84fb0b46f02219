package cli

import (
	"fmt"

	"github.com/gookit/color"

	"github.com/glorpus-work/hostpkg/internal/logger"
	"github.com/glorpus-work/hostpkg/pkg/backend"
	"github.com/glorpus-work/hostpkg/pkg/catalog"
	"github.com/glorpus-work/hostpkg/pkg/config"
	"github.com/glorpus-work/hostpkg/pkg/runner"
	"github.com/glorpus-work/hostpkg/pkg/service"
)

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbose    *bool
	NoColor    *bool
)

// loadConfig loads the configuration and applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	configPath := ""
	if ConfigPath != nil {
		configPath = *ConfigPath
	}

	if configPath == "" {
		defaultPath, err := config.GetDefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get default config path: %w", err)
		}
		configPath = defaultPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags if provided
	if NoColor != nil && *NoColor {
		cfg.Settings.ColorOutput = false
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel)
	if !cfg.Settings.ColorOutput {
		color.Disable()
	}

	return cfg, nil
}

// buildService wires the detected backends into the facade. This is the
// bridge function the CLI commands use; detection runs once per
// invocation.
func buildService(cfg *config.Config) *service.Service {
	sys := backend.Detect()
	run := runner.New()

	native := backend.ForBackend(sys.Native, run)
	var flatpak backend.Adapter
	if sys.Flatpak {
		flatpak = backend.NewFlatpak(run)
	}

	cat := catalog.New(sys, native, flatpak, cfg.Settings.CacheTTL)
	return service.New(cat, native, flatpak, service.Options{
		MaxListResults:   cfg.Settings.MaxListResults,
		MaxSearchResults: cfg.Settings.MaxSearchResults,
	})
}

func loadService() (*service.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return buildService(cfg), nil
}
