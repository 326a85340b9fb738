package cmd

import (
	"fmt"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/tui"
	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Show which version managers are installed",
	Long: `Probe the machine for every supported version manager and report
where each one lives. Run with --verbose to see the probed locations.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		table := tui.NewTable("", "Backend", "Location", "Version")
		table.SetTitle("Detected version managers")

		found := 0
		for _, kind := range backend.Kinds() {
			va, err := backend.Get(kind)
			if err != nil {
				continue
			}

			out, err := va.Detect(cmd.Context(), backend.DetectOptions{})
			if err != nil {
				ui.Error("%s: %v", kind, err)
				continue
			}

			switch out.Kind {
			case backend.OutcomeFound:
				version := ""
				if out.Version != nil {
					version = out.Version.String()
				}
				table.AddActiveRow(tui.GetCheckMark(), va.Info().DisplayName, out.Path, version)
				found++
			case backend.OutcomeFoundInWSL:
				table.AddActiveRow(tui.GetCheckMark(), va.Info().DisplayName, fmt.Sprintf("%s (WSL: %s)", out.Path, out.Distro), "")
				found++
			default:
				table.AddRow(tui.GetCrossMark(), va.Info().DisplayName, "not found", "")
				for _, probe := range out.Probed {
					ui.Debug("%s probed %s", kind, probe)
				}
			}
		}

		fmt.Println(table.Render())

		if found == 0 {
			fmt.Println()
			ui.Info("Install one with: nvmux setup fnm (or nvmux setup nvm)")
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
