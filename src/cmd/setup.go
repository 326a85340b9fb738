package cmd

import (
	"fmt"
	"strings"

	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/constants"
	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/spf13/cobra"
)

var setupYesFlag bool

var setupCmd = &cobra.Command{
	Use:   "setup <backend>",
	Short: "Install a version manager via its official installer",
	Long: `Install fnm or nvm itself using the official mechanism for this
platform, then verify the installation.

Examples:
  nvmux setup fnm
  nvmux setup nvm --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		kind, err := backend.ParseKind(args[0])
		if err != nil {
			ui.Error("%v", err)
			return
		}
		va, err := backend.Get(kind)
		if err != nil {
			ui.Error("%v", err)
			return
		}

		out, err := va.Detect(cmd.Context(), backend.DetectOptions{})
		if err != nil {
			ui.Error("%v", err)
			return
		}
		if out.Kind != backend.OutcomeNotFound {
			ui.Info("%s is already installed at %s", va.Info().DisplayName, ui.Highlight(out.Path))
			return
		}

		if !setupYesFlag {
			fmt.Printf("Install %s via its official installer? [y/N]: ", va.Info().DisplayName)
			var response string
			_, _ = fmt.Scanln(&response)
			response = strings.ToLower(strings.TrimSpace(response))
			if response != constants.ResponseY && response != constants.ResponseYes {
				ui.Info("Canceled")
				return
			}
		}

		spinner := ui.NewSpinner(fmt.Sprintf("Installing %s...", va.Info().DisplayName))
		spinner.Start()

		err = va.Bootstrap(cmd.Context(), func(progress backend.InstallProgress) {
			switch progress.Phase {
			case backend.PhaseDownloading:
				if progress.Percent > 0 {
					spinner.UpdateMessage(fmt.Sprintf("Downloading %s... %3.0f%%", va.Info().Executable, progress.Percent))
				} else {
					spinner.UpdateMessage(fmt.Sprintf("Downloading %s...", va.Info().Executable))
				}
			case backend.PhaseExtracting:
				spinner.UpdateMessage(fmt.Sprintf("Extracting %s...", va.Info().Executable))
			}
		})
		if err != nil {
			spinner.Error(fmt.Sprintf("Setup failed: %v", err))
			return
		}

		// Verify the install landed somewhere we can find it again.
		out, err = va.Detect(cmd.Context(), backend.DetectOptions{})
		if err != nil || out.Kind == backend.OutcomeNotFound {
			spinner.Warning(fmt.Sprintf("%s installed, but not detectable yet; a new shell may be required", va.Info().DisplayName))
			return
		}

		spinner.Success(fmt.Sprintf("%s installed at %s", va.Info().DisplayName, out.Path))
		ui.Info("Make it the configured backend with: nvmux backend %s", kind)
	},
}

func init() {
	setupCmd.Flags().BoolVarP(&setupYesFlag, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(setupCmd)
}
