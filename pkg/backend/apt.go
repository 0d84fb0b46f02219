package backend

import (
	"context"
	"strings"

	"github.com/glorpus-work/hostpkg/pkg/model"
	"github.com/glorpus-work/hostpkg/pkg/runner"
)

// APT adapts the Debian/Ubuntu package manager.
type APT struct {
	run runner.Runner
}

// NewAPT creates the APT adapter.
func NewAPT(run runner.Runner) *APT {
	return &APT{run: run}
}

func (a *APT) Name() string         { return "apt" }
func (a *APT) Origin() model.Origin { return model.OriginNative }

// ListInstalled combines two raw outputs: the manually-installed name set
// from apt-mark and the full version/summary table from dpkg-query. Only
// names present in the manual set survive; without that intersection every
// library dependency on the system would appear as a user package.
func (a *APT) ListInstalled(ctx context.Context) ([]model.Package, error) {
	manualOut, err := a.run.Run(ctx, "apt-mark", "showmanual")
	if err != nil {
		return nil, err
	}
	manual := make(map[string]struct{})
	for _, line := range splitLines(manualOut) {
		if name := strings.TrimSpace(line); name != "" {
			manual[name] = struct{}{}
		}
	}

	detailOut, err := a.run.Run(ctx,
		"dpkg-query", "-W", "-f=${Package}\t${Version}\t${binary:Summary}\n")
	if err != nil {
		return nil, err
	}

	var pkgs []model.Package
	for _, line := range splitLines(detailOut) {
		if !strings.Contains(line, "\t") {
			continue
		}
		f := tabFields(line, 3)
		if _, ok := manual[f[0]]; !ok {
			continue
		}
		pkg := model.Package{Name: f[0], ID: f[0], Origin: model.OriginNative, Installed: true}
		if len(f) > 1 {
			pkg.Version = f[1]
		}
		if len(f) > 2 {
			pkg.Summary = f[2]
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// Search queries the package cache. apt-cache emits one clean line per
// package, "vlc - multimedia player and streamer", with no headers.
func (a *APT) Search(ctx context.Context, query string) ([]model.Package, error) {
	out, err := a.run.Run(ctx, "apt-cache", "search", query)
	if err != nil {
		if _, ran := runner.ExitCode(err); !ran {
			return nil, err
		}
	}

	var pkgs []model.Package
	for _, line := range splitLines(out) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, summary, _ := strings.Cut(line, " - ")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		pkgs = append(pkgs, model.Package{
			Name:    name,
			ID:      name,
			Summary: strings.TrimSpace(summary),
			Origin:  model.OriginNative,
		})
	}
	return pkgs, nil
}

// Info returns apt's package detail text. apt prints a CLI-stability
// warning on stderr that ends up in the merged output and is stripped.
func (a *APT) Info(ctx context.Context, id string) (string, error) {
	out, err := a.run.Run(ctx, "apt", "show", id)
	if err != nil {
		return "", err
	}
	return stripNoise(out, contains("does not have a stable CLI interface")), nil
}

// CheckUpdates lists upgradable packages. Rows look like
// "vlc/jammy 3.0.20-1 amd64 [upgradable from: 3.0.16-1]"; rows whose
// candidate version does not actually exceed the installed one are
// dropped.
func (a *APT) CheckUpdates(ctx context.Context) (string, error) {
	out, err := a.run.Run(ctx, "apt", "list", "--upgradable")
	if err != nil {
		if _, ran := runner.ExitCode(err); !ran {
			return "", err
		}
	}

	var rows []string
	for _, line := range splitLines(out) {
		if !strings.Contains(line, "[upgradable from:") {
			continue
		}
		if current, candidate, ok := parseAptUpgradeRow(line); ok && !isUpgrade(current, candidate) {
			continue
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n"), nil
}

// parseAptUpgradeRow extracts the candidate and installed versions from
// an apt list --upgradable row.
func parseAptUpgradeRow(line string) (current, candidate string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", false
	}
	candidate = fields[1]

	_, after, found := strings.Cut(line, "[upgradable from:")
	if !found {
		return "", "", false
	}
	current = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(after), "]"))
	return current, candidate, current != "" && candidate != ""
}

// Install installs a package. Requires sudo.
func (a *APT) Install(ctx context.Context, id string) (string, error) {
	return a.run.Run(ctx, "sudo", "apt", "install", id, "-y")
}

// Remove removes a package. Requires sudo.
func (a *APT) Remove(ctx context.Context, id string) (string, error) {
	return a.run.Run(ctx, "sudo", "apt", "remove", id, "-y")
}

// Update upgrades one package, or the whole system when id is UpdateAll.
func (a *APT) Update(ctx context.Context, id string) (string, error) {
	if id == UpdateAll {
		return a.run.Run(ctx, "sudo", "apt", "upgrade", "-y")
	}
	return a.run.Run(ctx, "sudo", "apt", "install", "--only-upgrade", id, "-y")
}
