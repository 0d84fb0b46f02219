package backend

import (
	"context"
	"strings"

	"github.com/glorpus-work/hostpkg/pkg/model"
	"github.com/glorpus-work/hostpkg/pkg/runner"
)

// Pacman adapts the Arch Linux package manager.
type Pacman struct {
	run runner.Runner
}

// NewPacman creates the Pacman adapter.
func NewPacman(run runner.Runner) *Pacman {
	return &Pacman{run: run}
}

func (p *Pacman) Name() string         { return "pacman" }
func (p *Pacman) Origin() model.Origin { return model.OriginNative }

// ListInstalled queries explicitly installed packages. -Qe excludes
// packages pulled in as dependencies. Rows are two whitespace-separated
// tokens, "vlc 3.0.20-1"; pacman -Qe provides no summary.
func (p *Pacman) ListInstalled(ctx context.Context) ([]model.Package, error) {
	out, err := p.run.Run(ctx, "pacman", "-Qe")
	if err != nil {
		return nil, err
	}

	var pkgs []model.Package
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		pkg := model.Package{Name: fields[0], ID: fields[0], Origin: model.OriginNative, Installed: true}
		if len(fields) > 1 {
			pkg.Version = fields[1]
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// Search queries the sync repositories. pacman emits two physical lines
// per logical result:
//
//	extra/vlc 3.0.20-1 [installed]
//	    VLC media player
//
// A header line (unindented, containing a repo/name token) consumes the
// following indented description line into one record. pacman exits
// non-zero when nothing matches, which is an empty result, not a failure.
func (p *Pacman) Search(ctx context.Context, query string) ([]model.Package, error) {
	out, err := p.run.Run(ctx, "pacman", "-Ss", query)
	if err != nil {
		if _, ran := runner.ExitCode(err); !ran {
			return nil, err
		}
	}

	lines := splitLines(out)
	var pkgs []model.Package
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, " ") || !strings.Contains(line, "/") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		pkg := model.Package{Name: fields[0], ID: fields[0], Origin: model.OriginNative}
		if len(fields) > 1 {
			pkg.Version = fields[1]
		}
		if strings.Contains(line, "[installed") {
			pkg.Installed = true
		}

		// Merge the indented description line that follows the header.
		if i+1 < len(lines) && strings.HasPrefix(lines[i+1], " ") {
			pkg.Summary = strings.TrimSpace(lines[i+1])
			i++
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// Info returns pacman's local package detail text.
func (p *Pacman) Info(ctx context.Context, id string) (string, error) {
	return p.run.Run(ctx, "pacman", "-Qi", id)
}

// CheckUpdates lists pending upgrades. Rows look like
// "vlc 3.0.16-1 -> 3.0.20-1"; pacman -Qu exits non-zero when everything
// is current. Rows whose right-hand version does not exceed the installed
// one are dropped.
func (p *Pacman) CheckUpdates(ctx context.Context) (string, error) {
	out, err := p.run.Run(ctx, "pacman", "-Qu")
	if err != nil {
		if _, ran := runner.ExitCode(err); !ran {
			return "", err
		}
	}

	var rows []string
	for _, line := range splitLines(out) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 4 && fields[2] == "->" && !isUpgrade(fields[1], fields[3]) {
			continue
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n"), nil
}

// Install installs a package. Requires sudo.
func (p *Pacman) Install(ctx context.Context, id string) (string, error) {
	return p.run.Run(ctx, "sudo", "pacman", "-S", "--noconfirm", id)
}

// Remove removes a package. Requires sudo.
func (p *Pacman) Remove(ctx context.Context, id string) (string, error) {
	return p.run.Run(ctx, "sudo", "pacman", "-R", "--noconfirm", id)
}

// Update upgrades one package, or runs a full system upgrade when id is
// UpdateAll. Pacman has no single-package upgrade; reinstalling from the
// sync repos pulls the latest version.
func (p *Pacman) Update(ctx context.Context, id string) (string, error) {
	if id == UpdateAll {
		return p.run.Run(ctx, "sudo", "pacman", "-Syu", "--noconfirm")
	}
	return p.run.Run(ctx, "sudo", "pacman", "-S", "--noconfirm", id)
}
