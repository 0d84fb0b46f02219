package backend

import (
	"context"

	"github.com/glorpus-work/hostpkg/pkg/errors"
	"github.com/glorpus-work/hostpkg/pkg/model"
)

// None is the stub adapter selected when no supported native package
// manager exists on the host. Query operations fail with ErrNoBackend,
// which callers degrade into a soft "no supported package manager"
// result. Mutations fail with ErrUnsupportedOperation: there is nothing
// to delegate to, and masking that as an empty result would hide a
// non-recoverable condition.
type None struct{}

// NewNone creates the stub adapter.
func NewNone() *None {
	return &None{}
}

func (n *None) Name() string         { return model.BackendNone.String() }
func (n *None) Origin() model.Origin { return model.OriginNative }

func (n *None) ListInstalled(context.Context) ([]model.Package, error) {
	return nil, errors.ErrNoBackend
}

func (n *None) Search(context.Context, string) ([]model.Package, error) {
	return nil, errors.ErrNoBackend
}

func (n *None) Info(context.Context, string) (string, error) {
	return "", errors.ErrNoBackend
}

func (n *None) CheckUpdates(context.Context) (string, error) {
	return "", errors.ErrNoBackend
}

func (n *None) Install(_ context.Context, id string) (string, error) {
	return "", errors.Wrapf(errors.ErrUnsupportedOperation, "install %q", id)
}

func (n *None) Remove(_ context.Context, id string) (string, error) {
	return "", errors.Wrapf(errors.ErrUnsupportedOperation, "remove %q", id)
}

func (n *None) Update(_ context.Context, id string) (string, error) {
	return "", errors.Wrapf(errors.ErrUnsupportedOperation, "update %q", id)
}
