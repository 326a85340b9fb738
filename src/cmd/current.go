package cmd

import (
	"fmt"

	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the default Node.js version",
	Long: `Show the version the active version manager hands to new shells,
along with the manager that provides it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession(cmd.Context())
		if err != nil {
			describeBackendError(err)
			return
		}

		if s.outcome.Version != nil {
			ui.Debug("%s %s at %s", s.provider.Info().Executable, s.outcome.Version, s.outcome.Path)
		}

		installed, err := s.provider.ListInstalled(cmd.Context())
		if err != nil {
			ui.Error("%v", err)
			return
		}

		for _, iv := range installed {
			if iv.Default {
				fmt.Printf("%s: %s\n", ui.Highlight(s.provider.Info().DisplayName), ui.HighlightVersion("v"+iv.Version.String()))
				return
			}
		}

		if len(installed) == 0 {
			ui.Warning("No versions installed via %s", s.provider.Info().DisplayName)
			ui.Info("Install one with: nvmux install lts")
			return
		}

		ui.Warning("%s has no default version set", s.provider.Info().DisplayName)
		ui.Info("Set one with: nvmux default <version>")
	},
}

func init() {
	rootCmd.AddCommand(currentCmd)
}
