//go:generate mockgen -destination=./mocks/adapter.go -package=mocks . Adapter

// Package backend abstracts over the mutually incompatible Linux package
// managers (DNF, APT, Pacman, Zypper) and the Flatpak application
// ecosystem. Each backend knows the exact command line and output grammar
// for the same logical operation set and normalizes raw tool output into
// model.Package records.
package backend

import (
	"context"

	"github.com/glorpus-work/hostpkg/pkg/model"
	"github.com/glorpus-work/hostpkg/pkg/runner"
)

// Adapter is the capability set every package backend implements.
//
// ListInstalled always uses the backend's "explicitly installed" query, so
// packages pulled in purely as dependencies never appear. Search returns
// every parsed row; display capping is the caller's concern so the true
// match count stays reportable. Info and CheckUpdates return backend-native
// free text with known noise lines stripped.
type Adapter interface {
	Name() string
	Origin() model.Origin

	ListInstalled(ctx context.Context) ([]model.Package, error)
	Search(ctx context.Context, query string) ([]model.Package, error)
	Info(ctx context.Context, id string) (string, error)
	CheckUpdates(ctx context.Context) (string, error)

	// Mutations delegate entirely to the native tool; no transactional
	// guarantee beyond what the tool itself provides. Callers must
	// invalidate any installed-package cache afterwards.
	Install(ctx context.Context, id string) (string, error)
	Remove(ctx context.Context, id string) (string, error)
	Update(ctx context.Context, id string) (string, error)
}

// UpdateAll is the id accepted by Update to upgrade every installed
// package instead of a single one.
const UpdateAll = "ALL"

// ForBackend returns the adapter for the given native backend identity.
// BackendNone yields the stub adapter whose operations fail softly.
func ForBackend(b model.Backend, run runner.Runner) Adapter {
	switch b {
	case model.BackendDNF:
		return NewDNF(run)
	case model.BackendAPT:
		return NewAPT(run)
	case model.BackendPacman:
		return NewPacman(run)
	case model.BackendZypper:
		return NewZypper(run)
	default:
		return NewNone()
	}
}
