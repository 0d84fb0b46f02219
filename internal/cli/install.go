package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/hostpkg/pkg/model"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var flatpak bool

	cmd := &cobra.Command{
		Use:   "install PACKAGE...",
		Short: "Install packages",
		Long: `Install one or more packages through the native package manager,
or from Flathub with --flatpak. Native installs run under sudo.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, args, originFor(flatpak))
		},
	}

	cmd.Flags().BoolVar(&flatpak, "flatpak", false, "Install from Flathub")

	return cmd
}

func runInstall(cmd *cobra.Command, packages []string, origin model.Origin) error {
	svc, err := loadService()
	if err != nil {
		return err
	}
	for _, pkg := range packages {
		out, err := svc.Install(cmd.Context(), pkg, origin)
		if err != nil {
			return err
		}
		fmt.Println(out)
	}
	return nil
}

func originFor(flatpak bool) model.Origin {
	if flatpak {
		return model.OriginFlatpak
	}
	return model.OriginNative
}
