package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glorpus-work/hostpkg/pkg/backend"
	"github.com/glorpus-work/hostpkg/pkg/backend/mocks"
	"github.com/glorpus-work/hostpkg/pkg/catalog"
	"github.com/glorpus-work/hostpkg/pkg/errors"
	"github.com/glorpus-work/hostpkg/pkg/model"
)

type fixture struct {
	native  *mocks.MockAdapter
	flatpak *mocks.MockAdapter
	catalog *catalog.Catalog
}

func newFixture(t *testing.T, withFlatpak bool) (*Service, *fixture) {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{native: mocks.NewMockAdapter(ctrl)}
	sys := &model.System{Native: model.BackendDNF, Flatpak: withFlatpak}

	var flatpakAdapter backend.Adapter
	if withFlatpak {
		f.flatpak = mocks.NewMockAdapter(ctrl)
		flatpakAdapter = f.flatpak
	}

	f.catalog = catalog.New(sys, f.native, flatpakAdapter, time.Minute)
	return New(f.catalog, f.native, flatpakAdapter, Options{}), f
}

func nativePkg(name, version, summary string) model.Package {
	return model.Package{Name: name, ID: name, Version: version, Summary: summary, Origin: model.OriginNative}
}

func TestListInstalledPackages(t *testing.T) {
	installed := []model.Package{
		nativePkg("vlc", "3.0.20-1", "VLC media player"),
		nativePkg("firefox", "128.0-1", "Mozilla Firefox browser"),
		{Name: "VLC", ID: "org.videolan.VLC", Version: "3.0.20", Origin: model.OriginFlatpak},
	}

	tests := []struct {
		name     string
		filter   string
		contains []string
		excludes []string
	}{
		{
			name:   "no filter lists everything",
			filter: "",
			contains: []string{
				"Found 3 installed package(s):",
				"vlc",
				"firefox",
				"VLC (org.videolan.VLC)",
			},
		},
		{
			name:     "filter is case insensitive and matches both origins",
			filter:   "VLC",
			contains: []string{"Found 2 installed package(s) matching \"VLC\":", "[native]", "[flatpak]"},
			excludes: []string{"firefox"},
		},
		{
			name:     "filter matches summary text",
			filter:   "browser",
			contains: []string{"Found 1 installed package(s) matching \"browser\":", "firefox"},
			excludes: []string{"vlc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, f := newFixture(t, true)
			f.native.EXPECT().ListInstalled(gomock.Any()).Return(installed[:2], nil)
			f.flatpak.EXPECT().ListInstalled(gomock.Any()).Return(installed[2:], nil)

			out := svc.ListInstalledPackages(context.Background(), tt.filter)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}

func TestListInstalledPackagesEmptyMessages(t *testing.T) {
	t.Run("nothing installed", func(t *testing.T) {
		svc, f := newFixture(t, false)
		f.native.EXPECT().ListInstalled(gomock.Any()).Return(nil, nil)

		out := svc.ListInstalledPackages(context.Background(), "")
		assert.Equal(t, "No user-installed packages found.", out)
	})

	t.Run("filter matches nothing", func(t *testing.T) {
		svc, f := newFixture(t, false)
		f.native.EXPECT().ListInstalled(gomock.Any()).Return([]model.Package{nativePkg("vlc", "3.0.20-1", "")}, nil)

		out := svc.ListInstalledPackages(context.Background(), "nomatch")
		assert.Equal(t, "No installed packages found matching \"nomatch\".", out)
	})
}

func TestListInstalledPackagesTruncation(t *testing.T) {
	installed := make([]model.Package, 80)
	for i := range installed {
		installed[i] = nativePkg(fmt.Sprintf("pkg-%03d", i), "1.0", "")
	}

	svc, f := newFixture(t, false)
	f.native.EXPECT().ListInstalled(gomock.Any()).Return(installed, nil)

	out := svc.ListInstalledPackages(context.Background(), "")
	assert.Contains(t, out, "Found 80 installed package(s):")
	assert.Contains(t, out, "(Showing 50 of 80. Use a more specific filter to narrow results.)")
	assert.Contains(t, out, "pkg-049")
	assert.NotContains(t, out, "pkg-050")
}

func TestGetPackageInfo(t *testing.T) {
	installed := []model.Package{
		nativePkg("vlc", "3.0.20-1", "VLC media player"),
		{Name: "VLC", ID: "org.videolan.VLC", Version: "3.0.20", Origin: model.OriginFlatpak},
	}

	t.Run("returns a block for every match across origins", func(t *testing.T) {
		svc, f := newFixture(t, true)
		f.native.EXPECT().ListInstalled(gomock.Any()).Return(installed[:1], nil)
		f.flatpak.EXPECT().ListInstalled(gomock.Any()).Return(installed[1:], nil)
		f.native.EXPECT().Info(gomock.Any(), "vlc").Return("Name: vlc\nVersion: 3.0.20", nil)
		f.flatpak.EXPECT().Info(gomock.Any(), "org.videolan.VLC").Return("ID: org.videolan.VLC", nil)

		out := svc.GetPackageInfo(context.Background(), "vlc")
		assert.Contains(t, out, "[native]  vlc")
		assert.Contains(t, out, "Name: vlc")
		assert.Contains(t, out, "[flatpak] VLC (org.videolan.VLC)")
		assert.Contains(t, out, "ID: org.videolan.VLC")
	})

	t.Run("exact id match resolves only that package", func(t *testing.T) {
		svc, f := newFixture(t, true)
		f.native.EXPECT().ListInstalled(gomock.Any()).Return(installed[:1], nil)
		f.flatpak.EXPECT().ListInstalled(gomock.Any()).Return(installed[1:], nil)
		f.flatpak.EXPECT().Info(gomock.Any(), "org.videolan.VLC").Return("flatpak detail", nil)

		out := svc.GetPackageInfo(context.Background(), "org.videolan.VLC")
		assert.Contains(t, out, "flatpak detail")
		assert.NotContains(t, out, "[native]")
	})

	t.Run("unknown name", func(t *testing.T) {
		svc, f := newFixture(t, false)
		f.native.EXPECT().ListInstalled(gomock.Any()).Return(installed[:1], nil)

		out := svc.GetPackageInfo(context.Background(), "doesnotexist")
		assert.Equal(t, "No installed package found matching \"doesnotexist\".", out)
	})

	t.Run("info failure is reported inline", func(t *testing.T) {
		svc, f := newFixture(t, false)
		f.native.EXPECT().ListInstalled(gomock.Any()).Return(installed[:1], nil)
		f.native.EXPECT().Info(gomock.Any(), "vlc").Return("", assert.AnError)

		out := svc.GetPackageInfo(context.Background(), "vlc")
		assert.Contains(t, out, "Error getting info for \"vlc\"")
	})
}

func TestSearchFlathub(t *testing.T) {
	t.Run("flatpak unavailable", func(t *testing.T) {
		svc, _ := newFixture(t, false)
		out := svc.SearchFlathub(context.Background(), "gimp")
		assert.Equal(t, "Flatpak is not available on this system.", out)
	})

	t.Run("no results", func(t *testing.T) {
		svc, f := newFixture(t, true)
		f.flatpak.EXPECT().Search(gomock.Any(), "gimp").Return(nil, nil)

		out := svc.SearchFlathub(context.Background(), "gimp")
		assert.Equal(t, "No Flatpak applications found on Flathub matching \"gimp\".", out)
	})

	t.Run("renders rows with full count", func(t *testing.T) {
		svc, f := newFixture(t, true)
		f.flatpak.EXPECT().Search(gomock.Any(), "gimp").Return([]model.Package{
			{Name: "GIMP", ID: "org.gimp.GIMP", Version: "2.10.38", Summary: "Image editor", Origin: model.OriginFlatpak},
		}, nil)

		out := svc.SearchFlathub(context.Background(), "gimp")
		assert.Contains(t, out, "Flathub results for \"gimp\" (1 found):")
		assert.Contains(t, out, "GIMP (org.gimp.GIMP)")
		assert.Contains(t, out, "Image editor")
	})

	t.Run("caps display but reports the true total", func(t *testing.T) {
		rows := make([]model.Package, 35)
		for i := range rows {
			rows[i] = model.Package{
				Name:   fmt.Sprintf("App %d", i),
				ID:     fmt.Sprintf("org.example.App%d", i),
				Origin: model.OriginFlatpak,
			}
		}
		svc, f := newFixture(t, true)
		f.flatpak.EXPECT().Search(gomock.Any(), "app").Return(rows, nil)

		out := svc.SearchFlathub(context.Background(), "app")
		assert.Contains(t, out, "(showing 20 of 35)")
		assert.NotContains(t, out, "org.example.App20")
	})
}

func TestSearchNative(t *testing.T) {
	t.Run("no backend", func(t *testing.T) {
		svc, f := newFixture(t, false)
		f.native.EXPECT().Search(gomock.Any(), "vlc").Return(nil, errors.ErrNoBackend)

		out := svc.SearchNative(context.Background(), "vlc")
		assert.Equal(t, "No supported native package manager detected on this system.", out)
	})

	t.Run("no results", func(t *testing.T) {
		svc, f := newFixture(t, false)
		f.native.EXPECT().Search(gomock.Any(), "vlc").Return(nil, nil)

		out := svc.SearchNative(context.Background(), "vlc")
		assert.Equal(t, "No native packages found matching \"vlc\".", out)
	})

	t.Run("marks installed rows", func(t *testing.T) {
		svc, f := newFixture(t, false)
		f.native.EXPECT().Search(gomock.Any(), "vlc").Return([]model.Package{
			{Name: "vlc", ID: "extra/vlc", Version: "3.0.20-1", Summary: "VLC media player", Origin: model.OriginNative, Installed: true},
		}, nil)

		out := svc.SearchNative(context.Background(), "vlc")
		assert.Contains(t, out, "[native] results for \"vlc\" (1 found):")
		assert.Contains(t, out, "[installed] extra/vlc 3.0.20-1 — VLC media player")
	})
}

func TestCheckUpdates(t *testing.T) {
	t.Run("everything up to date", func(t *testing.T) {
		svc, f := newFixture(t, true)
		f.native.EXPECT().CheckUpdates(gomock.Any()).Return("", nil)
		f.flatpak.EXPECT().CheckUpdates(gomock.Any()).Return("", nil)

		out := svc.CheckUpdates(context.Background())
		assert.Contains(t, out, "All native packages are up to date.")
		assert.Contains(t, out, "All Flatpak applications are up to date.")
	})

	t.Run("independent degrade", func(t *testing.T) {
		svc, f := newFixture(t, true)
		f.native.EXPECT().CheckUpdates(gomock.Any()).Return("", assert.AnError)
		f.flatpak.EXPECT().CheckUpdates(gomock.Any()).Return("org.gimp.GIMP\t2.10.38", nil)

		out := svc.CheckUpdates(context.Background())
		assert.Contains(t, out, "Error checking native updates:")
		assert.Contains(t, out, "Flatpak updates available:")
	})

	t.Run("no native backend", func(t *testing.T) {
		svc, f := newFixture(t, false)
		f.native.EXPECT().CheckUpdates(gomock.Any()).Return("", errors.ErrNoBackend)

		out := svc.CheckUpdates(context.Background())
		assert.Contains(t, out, "No supported native package manager detected on this system.")
	})
}

func TestMutationsInvalidateCache(t *testing.T) {
	svc, f := newFixture(t, false)
	ctx := context.Background()

	// Prime the cache, mutate, then expect a second fetch: the mutation
	// must have invalidated the cached list despite the TTL being fresh.
	f.native.EXPECT().ListInstalled(gomock.Any()).Return(nil, nil).Times(2)
	f.native.EXPECT().Install(gomock.Any(), "htop").Return("installed htop", nil)

	svc.ListInstalledPackages(ctx, "")
	out, err := svc.Install(ctx, "htop", model.OriginNative)
	require.NoError(t, err)
	assert.Equal(t, "installed htop", out)
	svc.ListInstalledPackages(ctx, "")
}

func TestMutations(t *testing.T) {
	t.Run("remove wraps the backend error", func(t *testing.T) {
		svc, f := newFixture(t, false)
		f.native.EXPECT().Remove(gomock.Any(), "htop").Return("no such package", assert.AnError)

		out, err := svc.Remove(context.Background(), "htop", model.OriginNative)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to remove \"htop\"")
		assert.Equal(t, "no such package", out)
	})

	t.Run("update all dispatches the sentinel id", func(t *testing.T) {
		svc, f := newFixture(t, false)
		f.native.EXPECT().Update(gomock.Any(), backend.UpdateAll).Return("42 packages updated", nil)

		out, err := svc.Update(context.Background(), backend.UpdateAll, model.OriginNative)
		require.NoError(t, err)
		assert.Equal(t, "42 packages updated", out)
	})

	t.Run("flatpak mutation without flatpak", func(t *testing.T) {
		svc, _ := newFixture(t, false)

		_, err := svc.Install(context.Background(), "org.gimp.GIMP", model.OriginFlatpak)
		assert.ErrorIs(t, err, errors.ErrFlatpakUnavailable)
	})
}

func TestResolveOrdersExactBeforeFuzzy(t *testing.T) {
	installed := []model.Package{
		nativePkg("vlc-plugin", "1.0", ""),
		nativePkg("vlc", "3.0.20-1", ""),
	}
	matches := resolve(installed, "vlc")
	require.Len(t, matches, 2)
	assert.Equal(t, "vlc", matches[0].Name)
	assert.Equal(t, "vlc-plugin", matches[1].Name)
}

func TestFormatSearchRowSkipsEmptyFields(t *testing.T) {
	row := formatSearchRow(model.Package{ID: "htop", Origin: model.OriginNative})
	assert.Equal(t, "htop", row)
	assert.False(t, strings.HasSuffix(row, " "))
}
