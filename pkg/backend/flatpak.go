package backend

import (
	"context"
	"strings"

	"github.com/glorpus-work/hostpkg/pkg/model"
	"github.com/glorpus-work/hostpkg/pkg/runner"
)

// Flatpak adapts the sandboxed application ecosystem. It is not a native
// backend: a host carries at most one native package manager but may run
// Flatpak alongside it as a second, independent package origin.
type Flatpak struct {
	run runner.Runner
}

// NewFlatpak creates the Flatpak adapter.
func NewFlatpak(run runner.Runner) *Flatpak {
	return &Flatpak{run: run}
}

func (f *Flatpak) Name() string         { return "flatpak" }
func (f *Flatpak) Origin() model.Origin { return model.OriginFlatpak }

// ListInstalled lists installed applications. --app excludes runtimes;
// the columns are tab-separated human name, application id, version.
func (f *Flatpak) ListInstalled(ctx context.Context) ([]model.Package, error) {
	out, err := f.run.Run(ctx, "flatpak", "list", "--app", "--columns=name,application,version")
	if err != nil {
		return nil, err
	}

	var pkgs []model.Package
	for _, line := range splitLines(out) {
		if !strings.Contains(line, "\t") {
			continue
		}
		fields := tabFields(line, 3)
		pkg := model.Package{
			Name:      fields[0],
			ID:        fields[0],
			Origin:    model.OriginFlatpak,
			Installed: true,
		}
		if len(fields) > 1 && fields[1] != "" {
			pkg.ID = fields[1]
		}
		if len(fields) > 2 {
			pkg.Version = fields[2]
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// Search queries Flathub. Rows below the minimum column count are
// dropped; flatpak exits non-zero when nothing matches, which is an
// empty result, not a failure.
func (f *Flatpak) Search(ctx context.Context, query string) ([]model.Package, error) {
	out, err := f.run.Run(ctx, "flatpak", "search", query,
		"--columns=name,application,description,version")
	if err != nil {
		if _, ran := runner.ExitCode(err); !ran {
			return nil, err
		}
	}

	var pkgs []model.Package
	for _, line := range splitLines(out) {
		if !strings.Contains(line, "\t") {
			continue
		}
		fields := tabFields(line, 4)
		if len(fields) < 2 {
			continue
		}
		pkg := model.Package{
			Name:   fields[0],
			ID:     fields[1],
			Origin: model.OriginFlatpak,
		}
		if len(fields) > 2 {
			pkg.Summary = fields[2]
		}
		if len(fields) > 3 {
			pkg.Version = fields[3]
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// Info returns flatpak's application detail text.
func (f *Flatpak) Info(ctx context.Context, id string) (string, error) {
	return f.run.Run(ctx, "flatpak", "info", id)
}

// CheckUpdates lists applications with pending updates on the remote.
func (f *Flatpak) CheckUpdates(ctx context.Context) (string, error) {
	out, err := f.run.Run(ctx, "flatpak", "remote-ls", "--updates",
		"--columns=name,application,version")
	if err != nil {
		if _, ran := runner.ExitCode(err); !ran {
			return "", err
		}
	}
	return strings.TrimRight(out, "\n"), nil
}

// Install installs an application from Flathub. No sudo needed.
func (f *Flatpak) Install(ctx context.Context, id string) (string, error) {
	return f.run.Run(ctx, "flatpak", "install", "flathub", id, "-y")
}

// Remove uninstalls an application.
func (f *Flatpak) Remove(ctx context.Context, id string) (string, error) {
	return f.run.Run(ctx, "flatpak", "uninstall", id, "-y")
}

// Update updates one application, or all of them when id is UpdateAll.
func (f *Flatpak) Update(ctx context.Context, id string) (string, error) {
	if id == UpdateAll {
		return f.run.Run(ctx, "flatpak", "update", "-y")
	}
	return f.run.Run(ctx, "flatpak", "update", id, "-y")
}
