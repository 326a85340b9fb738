package cmd

import (
	"fmt"
	"strings"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/constants"
	"github.com/nvmux/nvmux/src/internal/node"
	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/spf13/cobra"
)

var uninstallYesFlag bool

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <version>",
	Short: "Uninstall a Node.js version",
	Long: `Remove an installed Node.js version through the active version manager.

Examples:
  nvmux uninstall 18.19.0
  nvmux uninstall 18.19.0 --yes`,
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

		if !uninstallYesFlag {
			fmt.Printf("Remove node %s installed via %s? [y/N]: ", version, s.provider.Info().DisplayName)
			var response string
			_, _ = fmt.Scanln(&response)
			response = strings.ToLower(strings.TrimSpace(response))
			if response != constants.ResponseY && response != constants.ResponseYes {
				ui.Info("Canceled")
				return
			}
		}

		if err := s.provider.Uninstall(cmd.Context(), version); err != nil {
			ui.Error("%v", err)
			if backend.IsVersionNotFound(err) {
				ui.Info("Run 'nvmux list' to see installed versions")
			}
			return
		}

		ui.Success("Uninstalled node %s", ui.HighlightVersion(version.String()))
	},
}

func init() {
	uninstallCmd.Flags().BoolVarP(&uninstallYesFlag, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(uninstallCmd)
}
