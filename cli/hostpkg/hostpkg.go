package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/hostpkg/internal/cli"
)

var (
	configPath string
	verbose    bool
	noColor    bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hostpkg",
		Short: "One front end for the host's package managers",
		Long: `hostpkg is a uniform front end for whichever package manager the
host runs (dnf, apt, pacman, or zypper) plus Flatpak:
- Query: list installed packages, show package details
- Search: native repositories and Flathub
- Maintain: install, remove, update, and check for updates`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor

	// Add subcommands
	cmd.AddCommand(
		cli.NewListCmd(),
		cli.NewInfoCmd(),
		cli.NewSearchCmd(),
		cli.NewInstallCmd(),
		cli.NewRemoveCmd(),
		cli.NewUpdateCmd(),
		cli.NewStatusCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
