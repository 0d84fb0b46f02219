package backend

import (
	"context"
	"strings"

	"github.com/glorpus-work/hostpkg/pkg/model"
	"github.com/glorpus-work/hostpkg/pkg/runner"
)

// Zypper adapts the openSUSE/SUSE package manager.
type Zypper struct {
	run runner.Runner
}

// NewZypper creates the Zypper adapter.
func NewZypper(run runner.Runner) *Zypper {
	return &Zypper{run: run}
}

func (z *Zypper) Name() string         { return "zypper" }
func (z *Zypper) Origin() model.Origin { return model.OriginNative }

// ListInstalled queries user-installed packages. Output is a pipe-
// delimited table, "i | repo | name | version | arch"; only rows whose
// status column marks the package installed are kept, and rows below the
// minimum column count are dropped.
func (z *Zypper) ListInstalled(ctx context.Context) ([]model.Package, error) {
	out, err := z.run.Run(ctx, "zypper", "--no-refresh", "packages", "--userinstalled")
	if err != nil {
		return nil, err
	}

	var pkgs []model.Package
	for _, line := range splitLines(out) {
		if !strings.HasPrefix(line, "i ") && !strings.HasPrefix(line, "i|") {
			continue
		}
		f := strings.Split(line, "|")
		if len(f) < 4 {
			continue
		}
		name := strings.TrimSpace(f[2])
		pkgs = append(pkgs, model.Package{
			Name:      name,
			ID:        name,
			Version:   strings.TrimSpace(f[3]),
			Origin:    model.OriginNative,
			Installed: true,
		})
	}
	return pkgs, nil
}

// Search queries the repositories. Rows look like
// "i | vlc | VLC media player | package" where the first column is the
// installed status. The column-header row and the separator rule are
// noise; rows below the minimum column count are dropped.
func (z *Zypper) Search(ctx context.Context, query string) ([]model.Package, error) {
	out, err := z.run.Run(ctx, "zypper", "--no-refresh", "search", query)
	if err != nil {
		if _, ran := runner.ExitCode(err); !ran {
			return nil, err
		}
	}

	var pkgs []model.Package
	for _, line := range splitLines(out) {
		if !strings.Contains(line, "|") ||
			strings.Contains(line, "Name") ||
			strings.Contains(line, "---") {
			continue
		}
		f := strings.Split(line, "|")
		if len(f) < 3 {
			continue
		}
		name := strings.TrimSpace(f[1])
		if name == "" {
			continue
		}
		pkgs = append(pkgs, model.Package{
			Name:      name,
			ID:        name,
			Summary:   strings.TrimSpace(f[2]),
			Origin:    model.OriginNative,
			Installed: strings.TrimSpace(f[0]) == "i",
		})
	}
	return pkgs, nil
}

// Info returns zypper's package detail text with the repository-loading
// banners stripped.
func (z *Zypper) Info(ctx context.Context, id string) (string, error) {
	out, err := z.run.Run(ctx, "zypper", "--no-refresh", "info", id)
	if err != nil {
		return "", err
	}
	return stripNoise(out, hasPrefix("Loading repository data", "Reading installed packages", "Refreshing")), nil
}

// CheckUpdates lists pending updates with the table banners stripped.
func (z *Zypper) CheckUpdates(ctx context.Context) (string, error) {
	out, err := z.run.Run(ctx, "zypper", "--no-refresh", "list-updates")
	if err != nil {
		if _, ran := runner.ExitCode(err); !ran {
			return "", err
		}
	}
	return stripNoise(out, hasPrefix("Loading repository data", "Reading installed packages"), contains("---")), nil
}

// Install installs a package. Requires sudo.
func (z *Zypper) Install(ctx context.Context, id string) (string, error) {
	return z.run.Run(ctx, "sudo", "zypper", "--non-interactive", "install", id)
}

// Remove removes a package. Requires sudo.
func (z *Zypper) Remove(ctx context.Context, id string) (string, error) {
	return z.run.Run(ctx, "sudo", "zypper", "--non-interactive", "remove", id)
}

// Update upgrades one package, or the whole system when id is UpdateAll.
func (z *Zypper) Update(ctx context.Context, id string) (string, error) {
	if id == UpdateAll {
		return z.run.Run(ctx, "sudo", "zypper", "--non-interactive", "update")
	}
	return z.run.Run(ctx, "sudo", "zypper", "--non-interactive", "update", id)
}
