package cmd

import (
	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/node"
	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/spf13/cobra"
)

var defaultCmd = &cobra.Command{
	Use:   "default <version>",
	Short: "Set the default Node.js version",
	Long: `Make an installed version the one new shells pick up.

Examples:
  nvmux default 20.11.0
  nvmux default lts/iron`,
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

		if err := s.provider.SetDefault(cmd.Context(), version); err != nil {
			ui.Error("%v", err)
			if backend.IsVersionNotFound(err) {
				ui.Info("Run 'nvmux list' to see installed versions")
				ui.Info("Run 'nvmux install %s' to install it first", version)
			}
			return
		}

		ui.Success("Default version set to %s", ui.HighlightVersion(version.String()))
	},
}

func init() {
	rootCmd.AddCommand(defaultCmd)
}
