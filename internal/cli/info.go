package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info command.
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info NAME",
		Short: "Show details for an installed package",
		Long: `Show the backend detail text for an installed package. NAME is
matched against package names and ids, exactly or as a substring; every
match is shown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			fmt.Println(svc.GetPackageInfo(cmd.Context(), args[0]))
			return nil
		},
	}

	return cmd
}
