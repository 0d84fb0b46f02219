package backend

import (
	"context"
	"strings"

	"github.com/glorpus-work/hostpkg/pkg/model"
	"github.com/glorpus-work/hostpkg/pkg/runner"
)

// DNF adapts the Fedora/RHEL package manager.
type DNF struct {
	run runner.Runner
}

// NewDNF creates the DNF adapter.
func NewDNF(run runner.Runner) *DNF {
	return &DNF{run: run}
}

func (d *DNF) Name() string         { return "dnf" }
func (d *DNF) Origin() model.Origin { return model.OriginNative }

// ListInstalled queries user-installed packages only. --userinstalled
// excludes packages pulled in purely as dependencies.
func (d *DNF) ListInstalled(ctx context.Context) ([]model.Package, error) {
	out, err := d.run.Run(ctx,
		"dnf", "repoquery", "--userinstalled",
		"--queryformat", "%{NAME}\t%{VERSION}-%{RELEASE}\t%{SUMMARY}\n")
	if err != nil {
		return nil, err
	}

	var pkgs []model.Package
	for _, line := range splitLines(out) {
		if !strings.Contains(line, "\t") {
			continue
		}
		f := tabFields(line, 3)
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

// Search queries the configured repositories. Output lines look like
// "vlc.x86_64 : VLC media player"; section headers (starting with '=')
// and metadata lines are noise. dnf exits non-zero when nothing matches,
// which is treated as an empty result rather than a failure.
func (d *DNF) Search(ctx context.Context, query string) ([]model.Package, error) {
	out, err := d.run.Run(ctx, "dnf", "search", query)
	if err != nil {
		if _, ran := runner.ExitCode(err); !ran {
			return nil, err
		}
	}

	var pkgs []model.Package
	for _, line := range splitLines(out) {
		if !strings.Contains(line, " : ") ||
			strings.HasPrefix(line, "=") ||
			strings.HasPrefix(line, "Last") ||
			strings.HasPrefix(line, "Error") {
			continue
		}
		left, summary, _ := strings.Cut(line, " : ")
		name := strings.TrimSpace(left)
		// dnf suffixes the architecture as a trailing dot segment
		if i := strings.LastIndex(name, "."); i > 0 {
			name = name[:i]
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

// Info returns the backend-native package detail text.
func (d *DNF) Info(ctx context.Context, id string) (string, error) {
	out, err := d.run.Run(ctx, "dnf", "info", id)
	if err != nil {
		return "", err
	}
	return stripNoise(out, hasPrefix("Last metadata", "Updating Subscription", "Waiting for process")), nil
}

// CheckUpdates runs dnf check-update, which exits with status 100 when
// updates are available. Any exit from a launched process is therefore
// accepted and only the parsed rows decide the outcome.
func (d *DNF) CheckUpdates(ctx context.Context) (string, error) {
	out, err := d.run.Run(ctx, "dnf", "check-update")
	if err != nil {
		if _, ran := runner.ExitCode(err); !ran {
			return "", err
		}
	}
	return stripNoise(out, hasPrefix("Last metadata", "Obsoleting", "Security:")), nil
}

// Install installs a package. Requires sudo.
func (d *DNF) Install(ctx context.Context, id string) (string, error) {
	return d.run.Run(ctx, "sudo", "dnf", "install", id, "-y")
}

// Remove removes a package. Requires sudo.
func (d *DNF) Remove(ctx context.Context, id string) (string, error) {
	return d.run.Run(ctx, "sudo", "dnf", "remove", id, "-y")
}

// Update upgrades one package, or the whole system when id is UpdateAll.
func (d *DNF) Update(ctx context.Context, id string) (string, error) {
	if id == UpdateAll {
		return d.run.Run(ctx, "sudo", "dnf", "upgrade", "-y")
	}
	return d.run.Run(ctx, "sudo", "dnf", "upgrade", id, "-y")
}
