package cli

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/glorpus-work/hostpkg/pkg/backend"
	"github.com/glorpus-work/hostpkg/pkg/sysinfo"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show host and backend status",
		Long:  "Display the host OS, hardware summary, and which package backends were detected.",
		RunE: func(*cobra.Command, []string) error {
			return runStatus()
		},
	}

	return cmd
}

func runStatus() error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	sys := backend.Detect()
	info := sysinfo.NewCollector().Collect(sys)

	flatpak := color.Red.Sprint("not detected")
	if info.Flatpak {
		flatpak = color.Green.Sprint("detected")
	}

	fmt.Printf("%s %s\n", color.Cyan.Sprintf("%-16s", "OS:"), info.OSName)
	fmt.Printf("%s %s\n", color.Cyan.Sprintf("%-16s", "CPU:"), info.CPUModel)
	if info.MemoryGB > 0 {
		fmt.Printf("%s %.1f GB\n", color.Cyan.Sprintf("%-16s", "Memory:"), info.MemoryGB)
	} else {
		fmt.Printf("%s unknown\n", color.Cyan.Sprintf("%-16s", "Memory:"))
	}
	fmt.Printf("%s %s\n", color.Cyan.Sprintf("%-16s", "Native backend:"), info.Backend)
	fmt.Printf("%s %s\n", color.Cyan.Sprintf("%-16s", "Flatpak:"), flatpak)
	return nil
}
