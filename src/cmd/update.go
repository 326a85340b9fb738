package cmd

import (
	"fmt"

	"github.com/nvmux/nvmux/src/internal/release"
	"github.com/nvmux/nvmux/src/internal/tui"
	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for updates to nvmux and the active version manager",
	Long: `Query the release feeds for newer versions of nvmux itself and of
the version manager behind it. Nothing is installed; the command only
reports what is available.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Info("Checking for updates...")
		fmt.Println()

		table := tui.NewTable("Component", "Installed", "Latest", "Status")
		table.SetTitle("Update Check")

		client := release.NewClient()
		updates := 0

		// nvmux itself
		appUpdate, err := client.AppUpdate(cmd.Context(), Version)
		switch {
		case err != nil:
			table.AddRow("nvmux", Version, "?", "check failed")
			ui.Debug("app update check: %v", err)
		case appUpdate != nil:
			table.AddActiveRow("nvmux", Version, appUpdate.Latest.String(), "update available")
			updates++
		default:
			table.AddRow("nvmux", Version, Version, "up to date")
		}

		// The backend tool
		s, err := openSession(cmd.Context())
		if err != nil {
			table.AddRow("backend", "?", "?", "not detected")
			ui.Debug("backend resolution: %v", err)
		} else {
			name := string(s.provider.Info().Kind)
			if s.outcome.Version == nil {
				table.AddRow(name, "?", "?", "version unknown")
			} else {
				current := *s.outcome.Version
				toolUpdate, err := s.provider.CheckUpdate(cmd.Context(), current)
				switch {
				case err != nil:
					table.AddRow(name, current.String(), "?", "check failed")
					ui.Debug("%s update check: %v", name, err)
				case toolUpdate != nil:
					table.AddActiveRow(name, current.String(), toolUpdate.Latest.String(), "update available")
					updates++
				default:
					table.AddRow(name, current.String(), current.String(), "up to date")
				}
			}
		}

		fmt.Println(table.Render())
		fmt.Println()

		if updates == 0 {
			ui.Success("Everything is up to date")
			return
		}
		if appUpdate != nil {
			ui.Info("Get the new nvmux from: %s", appUpdate.URL)
		}
		if s != nil && s.provider.Capabilities().SelfUpdate {
			ui.Info("Update the backend with its own mechanism or: nvmux setup %s", s.provider.Info().Kind)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
