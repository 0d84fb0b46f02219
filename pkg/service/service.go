// Package service exposes the operation surface consumed by external
// collaborators (CLI, agents): plain text in, plain text out. It performs
// filtering, formatting, and truncation, and dispatches to the catalog
// and the backend adapters.
package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/glorpus-work/hostpkg/internal/logger"
	"github.com/glorpus-work/hostpkg/pkg/backend"
	"github.com/glorpus-work/hostpkg/pkg/catalog"
	"github.com/glorpus-work/hostpkg/pkg/errors"
	"github.com/glorpus-work/hostpkg/pkg/model"
)

const (
	// DefaultMaxListResults caps how many installed packages are rendered.
	DefaultMaxListResults = 50
	// DefaultMaxSearchResults caps how many search rows are rendered.
	DefaultMaxSearchResults = 20

	labelWidth = 45

	msgNoNativeBackend = "No supported native package manager detected on this system."
	msgNoFlatpak       = "Flatpak is not available on this system."
)

// Service is the query/search/mutate facade over the catalog and the
// backend adapters.
type Service struct {
	catalog   *catalog.Catalog
	native    backend.Adapter
	flatpak   backend.Adapter // nil when Flatpak is unavailable
	maxList   int
	maxSearch int
}

// Options tune the display caps. Zero values fall back to the defaults.
type Options struct {
	MaxListResults   int
	MaxSearchResults int
}

// New creates the facade. flatpak may be nil.
func New(cat *catalog.Catalog, native, flatpak backend.Adapter, opts Options) *Service {
	if opts.MaxListResults <= 0 {
		opts.MaxListResults = DefaultMaxListResults
	}
	if opts.MaxSearchResults <= 0 {
		opts.MaxSearchResults = DefaultMaxSearchResults
	}
	return &Service{
		catalog:   cat,
		native:    native,
		flatpak:   flatpak,
		maxList:   opts.MaxListResults,
		maxSearch: opts.MaxSearchResults,
	}
}

// ListInstalledPackages lists user-installed packages from both origins,
// optionally narrowed by a case-insensitive keyword matched against name,
// id, and summary. The display is capped but the true match count is
// always reported.
func (s *Service) ListInstalledPackages(ctx context.Context, filter string) string {
	all := s.catalog.ListInstalled(ctx)
	logger.Debug("listing installed packages", logger.Fields{"total": len(all), "filter": filter})

	hasFilter := strings.TrimSpace(filter) != ""
	matched := all
	if hasFilter {
		keyword := strings.ToLower(filter)
		matched = make([]model.Package, 0, len(all))
		for _, pkg := range all {
			if pkg.Matches(keyword) {
				matched = append(matched, pkg)
			}
		}
	}

	if len(matched) == 0 {
		if hasFilter {
			return fmt.Sprintf("No installed packages found matching %q.", filter)
		}
		return "No user-installed packages found."
	}

	truncated := len(matched) > s.maxList
	displayed := matched
	if truncated {
		displayed = matched[:s.maxList]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d installed package(s)", len(matched))
	if hasFilter {
		fmt.Fprintf(&sb, " matching %q", filter)
	}
	sb.WriteString(":\n\n")

	for _, pkg := range displayed {
		sb.WriteString(formatInstalled(pkg))
		sb.WriteString("\n")
	}

	if truncated {
		fmt.Fprintf(&sb, "\n(Showing %d of %d. Use a more specific filter to narrow results.)", s.maxList, len(matched))
	}
	return sb.String()
}

// GetPackageInfo resolves name against the installed list by exact id,
// exact name, or substring and returns the backend detail text for every
// match, each block prefixed with its origin tag. Returning all matches
// instead of disambiguating is deliberate: the caller sees everything the
// name could have meant.
func (s *Service) GetPackageInfo(ctx context.Context, name string) string {
	installed := s.catalog.ListInstalled(ctx)
	matches := resolve(installed, name)
	if len(matches) == 0 {
		return fmt.Sprintf("No installed package found matching %q.", name)
	}

	var blocks []string
	for _, pkg := range matches {
		adapter := s.native
		if pkg.Origin == model.OriginFlatpak {
			adapter = s.flatpak
		}
		if adapter == nil {
			continue
		}

		info, err := adapter.Info(ctx, pkg.ID)
		if err != nil {
			logger.Warnf("info for %q failed: %v", pkg.ID, err)
			blocks = append(blocks, fmt.Sprintf("Error getting info for %q: %v", pkg.ID, err))
			continue
		}
		blocks = append(blocks, pkg.Origin.Tag()+" "+pkg.Label()+"\n"+info)
	}
	return strings.Join(blocks, "\n\n")
}

// SearchFlathub searches Flathub for applications matching query.
func (s *Service) SearchFlathub(ctx context.Context, query string) string {
	if s.flatpak == nil {
		return msgNoFlatpak
	}

	rows, err := s.flatpak.Search(ctx, query)
	if err != nil {
		return fmt.Sprintf("Error searching Flathub: %v", err)
	}
	if len(rows) == 0 {
		return fmt.Sprintf("No Flatpak applications found on Flathub matching %q.", query)
	}

	displayed := rows
	if len(displayed) > s.maxSearch {
		displayed = rows[:s.maxSearch]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Flathub results for %q (%s):\n\n", query, countPhrase(len(displayed), len(rows)))
	for _, pkg := range displayed {
		summary := ""
		if pkg.Summary != "" {
			summary = " — " + pkg.Summary
		}
		fmt.Fprintf(&sb, "%s  %-*s %-15s%s\n", pkg.Origin.Tag(), labelWidth, pkg.Label(), pkg.Version, summary)
	}
	return sb.String()
}

// SearchNative searches the native repositories for packages matching
// query.
func (s *Service) SearchNative(ctx context.Context, query string) string {
	rows, err := s.native.Search(ctx, query)
	if err != nil {
		if stderrors.Is(err, errors.ErrNoBackend) {
			return msgNoNativeBackend
		}
		return fmt.Sprintf("Error searching native repo: %v", err)
	}
	if len(rows) == 0 {
		return fmt.Sprintf("No native packages found matching %q.", query)
	}

	displayed := rows
	if len(displayed) > s.maxSearch {
		displayed = rows[:s.maxSearch]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[native] results for %q (%s):\n\n", query, countPhrase(len(displayed), len(rows)))
	for _, pkg := range displayed {
		sb.WriteString(formatSearchRow(pkg))
		sb.WriteString("\n")
	}
	return sb.String()
}

// CheckUpdates reports pending updates for the native backend and, when
// available, Flatpak. The two checks degrade independently.
func (s *Service) CheckUpdates(ctx context.Context) string {
	var sections []string

	out, err := s.native.CheckUpdates(ctx)
	switch {
	case stderrors.Is(err, errors.ErrNoBackend):
		sections = append(sections, msgNoNativeBackend)
	case err != nil:
		sections = append(sections, fmt.Sprintf("Error checking native updates: %v", err))
	case strings.TrimSpace(out) == "":
		sections = append(sections, "All native packages are up to date.")
	default:
		sections = append(sections, "Native updates available:\n"+out)
	}

	if s.flatpak != nil {
		out, err := s.flatpak.CheckUpdates(ctx)
		switch {
		case err != nil:
			sections = append(sections, fmt.Sprintf("Error checking Flatpak updates: %v", err))
		case strings.TrimSpace(out) == "":
			sections = append(sections, "All Flatpak applications are up to date.")
		default:
			sections = append(sections, "Flatpak updates available:\n"+out)
		}
	}
	return strings.Join(sections, "\n\n")
}

// Install installs a package through the adapter for origin and
// invalidates the catalog cache, so subsequent reads reflect the new
// on-disk state.
func (s *Service) Install(ctx context.Context, id string, origin model.Origin) (string, error) {
	adapter, err := s.adapterFor(origin)
	if err != nil {
		return "", err
	}
	out, err := adapter.Install(ctx, id)
	s.catalog.Invalidate()
	if err != nil {
		return out, errors.Wrapf(err, "failed to install %q", id)
	}
	return out, nil
}

// Remove removes a package through the adapter for origin and
// invalidates the catalog cache.
func (s *Service) Remove(ctx context.Context, id string, origin model.Origin) (string, error) {
	adapter, err := s.adapterFor(origin)
	if err != nil {
		return "", err
	}
	out, err := adapter.Remove(ctx, id)
	s.catalog.Invalidate()
	if err != nil {
		return out, errors.Wrapf(err, "failed to remove %q", id)
	}
	return out, nil
}

// Update updates one package, or everything when id is backend.UpdateAll,
// and invalidates the catalog cache.
func (s *Service) Update(ctx context.Context, id string, origin model.Origin) (string, error) {
	adapter, err := s.adapterFor(origin)
	if err != nil {
		return "", err
	}
	out, err := adapter.Update(ctx, id)
	s.catalog.Invalidate()
	if err != nil {
		return out, errors.Wrapf(err, "failed to update %q", id)
	}
	return out, nil
}

func (s *Service) adapterFor(origin model.Origin) (backend.Adapter, error) {
	if origin == model.OriginFlatpak {
		if s.flatpak == nil {
			return nil, errors.ErrFlatpakUnavailable
		}
		return s.flatpak, nil
	}
	return s.native, nil
}

// resolve finds installed packages whose id or name matches name,
// exactly or as a case-insensitive substring. Exact matches sort first.
func resolve(installed []model.Package, name string) []model.Package {
	keyword := strings.ToLower(strings.TrimSpace(name))
	if keyword == "" {
		return nil
	}

	var exact, fuzzy []model.Package
	for _, pkg := range installed {
		id := strings.ToLower(pkg.ID)
		pkgName := strings.ToLower(pkg.Name)
		switch {
		case id == keyword || pkgName == keyword:
			exact = append(exact, pkg)
		case strings.Contains(id, keyword) || strings.Contains(pkgName, keyword):
			fuzzy = append(fuzzy, pkg)
		}
	}
	return append(exact, fuzzy...)
}

func formatInstalled(pkg model.Package) string {
	summary := ""
	if pkg.Summary != "" {
		summary = " — " + pkg.Summary
	}
	return fmt.Sprintf("%s  %-*s %s%s", pkg.Origin.Tag(), labelWidth, pkg.Label(), pkg.Version, summary)
}

// formatSearchRow renders a native search row, e.g.
// "extra/vlc 3.0.20-1 — VLC media player".
func formatSearchRow(pkg model.Package) string {
	var sb strings.Builder
	if pkg.Installed {
		sb.WriteString("[installed] ")
	}
	sb.WriteString(pkg.ID)
	if pkg.Version != "" {
		sb.WriteString(" " + pkg.Version)
	}
	if pkg.Summary != "" {
		sb.WriteString(" — " + pkg.Summary)
	}
	return sb.String()
}

func countPhrase(shown, total int) string {
	if shown < total {
		return fmt.Sprintf("showing %d of %d", shown, total)
	}
	return fmt.Sprintf("%d found", total)
}
