// Package catalog merges installed-package listings from the native and
// Flatpak backends behind a short-lived cache, so repeated queries do not
// spawn a subprocess storm.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/glorpus-work/hostpkg/internal/logger"
	"github.com/glorpus-work/hostpkg/pkg/backend"
	"github.com/glorpus-work/hostpkg/pkg/model"
)

// DefaultTTL is how long a fetched installed-package list stays fresh.
const DefaultTTL = 60 * time.Second

// Catalog caches the merged installed-package list. The cache is the only
// mutable shared state in the system; the mutex makes the whole
// check-and-refresh sequence atomic so concurrent readers never race two
// refreshes against each other or observe a partially-filled list.
type Catalog struct {
	sys     *model.System
	native  backend.Adapter
	flatpak backend.Adapter // nil when Flatpak is unavailable

	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	cached []model.Package
	expiry time.Time
}

// New creates a Catalog for the detected system. flatpak may be nil.
// A non-positive ttl falls back to DefaultTTL.
func New(sys *model.System, native, flatpak backend.Adapter, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Catalog{
		sys:     sys,
		native:  native,
		flatpak: flatpak,
		ttl:     ttl,
		now:     time.Now,
	}
}

// NativeBackend returns the native backend identity detected at startup.
func (c *Catalog) NativeBackend() model.Backend {
	return c.sys.Native
}

// FlatpakAvailable reports whether the Flatpak backend was detected.
func (c *Catalog) FlatpakAvailable() bool {
	return c.sys.Flatpak
}

// ListInstalled returns all user-installed packages, native plus Flatpak.
// The cached list is served while fresh; otherwise both origins are
// fetched independently. A failing origin degrades to an empty
// contribution and is logged, never propagated: a broken native backend
// must not suppress Flatpak results, and vice versa. Call Invalidate
// after any install, update, or remove.
func (c *Catalog) ListInstalled(ctx context.Context) []model.Package {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.now().Before(c.expiry) {
		logger.Debug("returning cached packages", logger.Fields{"count": len(c.cached)})
		return c.cached
	}

	pkgs := make([]model.Package, 0)

	native, err := c.native.ListInstalled(ctx)
	if err != nil {
		logger.Warnf("failed to fetch native packages: %v", err)
	} else {
		pkgs = append(pkgs, native...)
	}

	if c.flatpak != nil {
		flatpak, err := c.flatpak.ListInstalled(ctx)
		if err != nil {
			logger.Warnf("failed to fetch flatpak packages: %v", err)
		} else {
			pkgs = append(pkgs, flatpak...)
		}
	}

	// Full replacement under the lock: readers see the old list or the
	// new one, never a mix.
	c.cached = pkgs
	c.expiry = c.now().Add(c.ttl)
	logger.Debug("cached installed packages", logger.Fields{"count": len(pkgs)})
	return c.cached
}

// Invalidate clears the cache and resets the expiry to the infinite past,
// forcing the next ListInstalled to refetch regardless of the TTL.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
	c.expiry = time.Time{}
	logger.Debug("package cache invalidated")
}
