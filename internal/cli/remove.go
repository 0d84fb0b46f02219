package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRemoveCmd creates the remove command.
func NewRemoveCmd() *cobra.Command {
	var flatpak bool

	cmd := &cobra.Command{
		Use:   "remove PACKAGE...",
		Short: "Remove installed packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			for _, pkg := range args {
				out, err := svc.Remove(cmd.Context(), pkg, originFor(flatpak))
				if err != nil {
					return err
				}
				fmt.Println(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flatpak, "flatpak", false, "Remove a Flatpak application")

	return cmd
}
