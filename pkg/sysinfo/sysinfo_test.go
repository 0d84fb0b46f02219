package sysinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/hostpkg/pkg/model"
)

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "etc/os-release", "NAME=\"Fedora Linux\"\nPRETTY_NAME=\"Fedora Linux 40 (Workstation Edition)\"\nID=fedora\n")
	writeFixture(t, root, "proc/cpuinfo", "processor\t: 0\nvendor_id\t: AuthenticAMD\nmodel name\t: AMD Ryzen 7 5800X 8-Core Processor\n")
	writeFixture(t, root, "proc/meminfo", "MemTotal:       32768000 kB\nMemFree:         1024000 kB\n")

	sys := &model.System{Native: model.BackendDNF, Flatpak: true}
	info := NewCollectorAt(root).Collect(sys)

	assert.Equal(t, "Fedora Linux 40 (Workstation Edition)", info.OSName)
	assert.Equal(t, "AMD Ryzen 7 5800X 8-Core Processor", info.CPUModel)
	assert.InDelta(t, 31.25, info.MemoryGB, 0.01)
	assert.Equal(t, model.BackendDNF, info.Backend)
	assert.True(t, info.Flatpak)
}

func TestOSNameFallsBackToName(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "etc/os-release", "NAME=\"Arch Linux\"\nID=arch\n")

	info := NewCollectorAt(root).Collect(&model.System{Native: model.BackendPacman})
	assert.Equal(t, "Arch Linux", info.OSName)
}

func TestCollectDegradesOnMissingFiles(t *testing.T) {
	info := NewCollectorAt(t.TempDir()).Collect(&model.System{Native: model.BackendNone})

	assert.Equal(t, "unknown", info.OSName)
	assert.Equal(t, "unknown", info.CPUModel)
	assert.Zero(t, info.MemoryGB)
}

func TestSummary(t *testing.T) {
	info := Info{
		OSName:   "Fedora Linux 40",
		CPUModel: "AMD Ryzen 7 5800X",
		MemoryGB: 31.25,
		Backend:  model.BackendDNF,
		Flatpak:  true,
	}
	assert.Equal(t, "Fedora Linux 40 | AMD Ryzen 7 5800X | 31.2 GB RAM | backend: dnf | flatpak: yes", info.Summary())
}

func TestSummaryUnknownMemory(t *testing.T) {
	info := Info{OSName: "unknown", CPUModel: "unknown", Backend: model.BackendNone}
	assert.Contains(t, info.Summary(), "unknown RAM")
	assert.Contains(t, info.Summary(), "flatpak: no")
}
