package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [FILTER]",
		Short: "List user-installed packages",
		Long: `List user-installed packages from the native package manager and
Flatpak. An optional keyword narrows the list by name, id, or summary.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			return runList(cmd, filter)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command, filter string) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	fmt.Println(svc.ListInstalledPackages(cmd.Context(), filter))
	return nil
}
