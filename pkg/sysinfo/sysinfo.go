// Package sysinfo reads basic host facts from /etc/os-release and procfs.
package sysinfo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/glorpus-work/hostpkg/pkg/model"
)

// Info describes the host the backends operate on.
type Info struct {
	OSName   string
	CPUModel string
	MemoryGB float64
	Backend  model.Backend
	Flatpak  bool
}

// Collector gathers host facts. root is prepended to every path it
// reads, so tests can point it at a fixture tree.
type Collector struct {
	root string
}

// NewCollector returns a Collector reading from the real filesystem.
func NewCollector() *Collector {
	return &Collector{root: "/"}
}

// NewCollectorAt returns a Collector rooted at dir.
func NewCollectorAt(dir string) *Collector {
	return &Collector{root: dir}
}

// Collect reads the host facts. Missing or unreadable files degrade to
// "unknown" fields rather than failing the whole collection.
func (c *Collector) Collect(sys *model.System) Info {
	return Info{
		OSName:   c.osName(),
		CPUModel: c.cpuModel(),
		MemoryGB: c.memoryGB(),
		Backend:  sys.Native,
		Flatpak:  sys.Flatpak,
	}
}

// Summary renders the facts as a single line, e.g.
// "Fedora Linux 40 | AMD Ryzen 7 5800X | 31.3 GB RAM | backend: dnf | flatpak: yes".
func (i Info) Summary() string {
	flatpak := "no"
	if i.Flatpak {
		flatpak = "yes"
	}
	mem := "unknown RAM"
	if i.MemoryGB > 0 {
		mem = fmt.Sprintf("%.1f GB RAM", i.MemoryGB)
	}
	return fmt.Sprintf("%s | %s | %s | backend: %s | flatpak: %s",
		i.OSName, i.CPUModel, mem, i.Backend, flatpak)
}

// osName returns PRETTY_NAME from os-release, falling back to NAME.
func (c *Collector) osName() string {
	values, err := c.parseOSRelease()
	if err != nil {
		return "unknown"
	}
	if name := values["PRETTY_NAME"]; name != "" {
		return name
	}
	if name := values["NAME"]; name != "" {
		return name
	}
	return "unknown"
}

func (c *Collector) parseOSRelease() (map[string]string, error) {
	f, err := os.Open(filepath.Join(c.root, "etc/os-release"))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		values[key] = strings.Trim(value, `"`)
	}
	return values, scanner.Err()
}

func (c *Collector) cpuModel() string {
	f, err := os.Open(filepath.Join(c.root, "proc/cpuinfo"))
	if err != nil {
		return "unknown"
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if key, value, ok := strings.Cut(scanner.Text(), ":"); ok {
			if strings.TrimSpace(key) == "model name" {
				return strings.TrimSpace(value)
			}
		}
	}
	return "unknown"
}

// memoryGB converts the MemTotal kB figure from meminfo. Returns 0 when
// the file or the field is missing.
func (c *Collector) memoryGB() float64 {
	f, err := os.Open(filepath.Join(c.root, "proc/meminfo"))
	if err != nil {
		return 0
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok || strings.TrimSpace(key) != "MemTotal" {
			continue
		}
		fields := strings.Fields(value)
		if len(fields) == 0 {
			return 0
		}
		kb, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0
		}
		return kb / (1024 * 1024)
	}
	return 0
}
