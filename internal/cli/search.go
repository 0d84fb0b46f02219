package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var flathub bool

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search for available packages",
		Long: `Search the native package repositories for packages matching a
keyword. With --flathub the search runs against Flathub instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], flathub)
		},
	}

	cmd.Flags().BoolVar(&flathub, "flathub", false, "Search Flathub instead of the native repositories")

	return cmd
}

func runSearch(cmd *cobra.Command, query string, flathub bool) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	if flathub {
		fmt.Println(svc.SearchFlathub(cmd.Context(), query))
		return nil
	}
	fmt.Println(svc.SearchNative(cmd.Context(), query))
	return nil
}
