// Package model provides the normalized data structures shared by all
// package backends: the Package record, package origins, and the native
// backend identity.
package model

import "strings"

// Origin identifies which ecosystem a package record came from.
type Origin string

const (
	// OriginNative marks packages installed through the OS package manager.
	OriginNative Origin = "native"
	// OriginFlatpak marks sandboxed applications installed through Flatpak.
	OriginFlatpak Origin = "flatpak"
)

// Tag returns the fixed-width display tag for this origin.
// Both tags render at the same width so package listings line up.
func (o Origin) Tag() string {
	if o == OriginFlatpak {
		return "[flatpak]"
	}
	return "[native] "
}

// Package is the normalized representation of a package regardless of
// whether it came from a native package manager or Flatpak.
//
// ID is the unique key within one origin's result set: the native package
// name or the Flatpak application id. The same logical software may appear
// once under each origin; no deduplication is performed across origins.
type Package struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Version string `json:"version"`
	Summary string `json:"summary,omitempty"`
	Origin  Origin `json:"origin"`

	// Installed is set on rows whose source output marks the package as
	// already present on the system. Search results from backends that
	// do not report installation state leave it false.
	Installed bool `json:"installed,omitempty"`
}

// Label returns the display label for this package: "name (id)" for
// Flatpak applications, the bare id for native packages.
func (p Package) Label() string {
	if p.Origin == OriginFlatpak {
		return p.Name + " (" + p.ID + ")"
	}
	return p.ID
}

// Matches reports whether the lowercased keyword occurs in the package
// name, id, or summary. The caller lowercases the keyword once.
func (p Package) Matches(keyword string) bool {
	return strings.Contains(strings.ToLower(p.Name), keyword) ||
		strings.Contains(strings.ToLower(p.ID), keyword) ||
		strings.Contains(strings.ToLower(p.Summary), keyword)
}

// Backend identifies the native package manager active on this host.
type Backend string

const (
	BackendDNF    Backend = "dnf"
	BackendAPT    Backend = "apt"
	BackendPacman Backend = "pacman"
	BackendZypper Backend = "zypper"
	// BackendNone means no supported native package manager was detected.
	BackendNone Backend = "none"
)

// String returns the backend's executable name, or "none".
func (b Backend) String() string {
	return string(b)
}

// System is the immutable process-wide description of the detected
// package management environment. It is built once at startup and passed
// by reference to all consumers; it must never be mutated afterwards.
type System struct {
	Native  Backend
	Flatpak bool
}
