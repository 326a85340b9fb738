package cmd

import (
	"fmt"

	"github.com/nvmux/nvmux/src/internal/tui"
	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed Node.js versions",
	Long: `List the Node.js versions installed through the active version manager.
The default version is highlighted.

Examples:
  nvmux list
  nvmux list --backend nvm`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		s, err := openSession(cmd.Context())
		if err != nil {
			describeBackendError(err)
			return
		}

		installed, err := s.provider.ListInstalled(cmd.Context())
		if err != nil {
			ui.Error("%v", err)
			return
		}

		if len(installed) == 0 {
			ui.Info("No versions installed via %s", s.provider.Info().DisplayName)
			ui.Info("Install one with: nvmux install lts")
			return
		}

		table := tui.NewTable("", "Version", "Notes")
		table.SetTitle(fmt.Sprintf("Installed via %s", s.provider.Info().DisplayName))

		for _, iv := range installed {
			notes := ""
			if iv.Arch != "" {
				notes = iv.Arch
			}
			if iv.Default {
				if notes != "" {
					notes += ", "
				}
				notes += "default"
				table.AddActiveRow(tui.GetCheckMark(), "v"+iv.Version.String(), notes)
				continue
			}
			table.AddRow("", "v"+iv.Version.String(), notes)
		}

		fmt.Println(table.Render())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
