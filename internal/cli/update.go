package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/hostpkg/pkg/backend"
)

// NewUpdateCmd creates the update command.
func NewUpdateCmd() *cobra.Command {
	var (
		check   bool
		flatpak bool
	)

	cmd := &cobra.Command{
		Use:   "update [PACKAGE]",
		Short: "Update packages or check for pending updates",
		Long: `Update a single package, or everything when no package is named.
With --check no changes are made; pending updates for both the native
backend and Flatpak are listed instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args, check, flatpak)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Only list pending updates")
	cmd.Flags().BoolVar(&flatpak, "flatpak", false, "Update a Flatpak application")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string, check, flatpak bool) error {
	svc, err := loadService()
	if err != nil {
		return err
	}

	if check {
		fmt.Println(svc.CheckUpdates(cmd.Context()))
		return nil
	}

	target := backend.UpdateAll
	if len(args) == 1 {
		target = args[0]
	}

	out, err := svc.Update(cmd.Context(), target, originFor(flatpak))
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
