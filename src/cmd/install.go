package cmd

import (
	"context"
	"fmt"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/node"
	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <version>",
	Short: "Install a Node.js version",
	Long: `Install a Node.js version through the active version manager.
The version may be a number or an alias the manager understands.

Examples:
  nvmux install 20.11.0
  nvmux install 20
  nvmux install lts
  nvmux install lts/iron`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		version, err := node.Parse(args[0])
		if err != nil {
			ui.Error("Invalid version %q: %v", args[0], err)
			return
		}

		s, err := openSession(cmd.Context())
		if err != nil {
			describeBackendError(err)
			return
		}
		ui.Debug("installing %s via %s", version, s.provider.Info().Kind)

		spinner := ui.NewSpinner(fmt.Sprintf("Installing node %s...", version))
		spinner.Start()

		installed, err := s.provider.Install(cmd.Context(), version, func(progress backend.InstallProgress) {
			switch progress.Phase {
			case backend.PhaseResolving:
				spinner.UpdateMessage(fmt.Sprintf("Resolving node %s...", version))
			case backend.PhaseDownloading:
				if progress.Percent > 0 {
					spinner.UpdateMessage(fmt.Sprintf("Downloading node %s... %3.0f%%", version, progress.Percent))
				} else {
					spinner.UpdateMessage(fmt.Sprintf("Downloading node %s...", version))
				}
			case backend.PhaseExtracting:
				spinner.UpdateMessage(fmt.Sprintf("Extracting node %s...", version))
			case backend.PhaseLinking:
				spinner.UpdateMessage(fmt.Sprintf("Linking node %s...", version))
			}
		})
		if err != nil {
			spinner.Error(fmt.Sprintf("Installation failed: %v", err))
			return
		}

		spinner.Success(fmt.Sprintf("Installed node v%s", installed.Version))

		// First install on a fresh setup becomes the default.
		autoSetDefaultIfNeeded(cmd.Context(), s, installed)
	},
}

// autoSetDefaultIfNeeded makes the freshly installed version the
// default when no version holds that role yet.
func autoSetDefaultIfNeeded(ctx context.Context, s *session, installed *node.Installed) {
	if installed.Default {
		return
	}

	listing, err := s.provider.ListInstalled(ctx)
	if err != nil {
		ui.Debug("default check skipped: %v", err)
		return
	}
	for _, iv := range listing {
		if iv.Default {
			return
		}
	}

	if err := s.provider.SetDefault(ctx, installed.Version); err != nil {
		ui.Warning("Could not set default version: %v", err)
		return
	}
	ui.Info("Set as default version (first install)")
}

func init() {
	rootCmd.AddCommand(installCmd)
}
