package cmd

import (
	"github.com/nvmux/nvmux/src/internal/backend"
	"github.com/nvmux/nvmux/src/internal/settings"
	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/spf13/cobra"
)

var backendPathFlag string

var backendCmd = &cobra.Command{
	Use:   "backend [fnm|nvm]",
	Short: "Show or set the configured version manager",
	Long: `Without arguments, show which version manager nvmux is configured to
use. With one, make it the configured backend for future invocations.

Examples:
  nvmux backend
  nvmux backend fnm
  nvmux backend nvm --path /opt/nvm/nvm.sh`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := settings.Load()
		if err != nil {
			ui.Error("%v", err)
			return
		}

		if len(args) == 0 {
			if cfg.Backend == "" {
				ui.Info("No backend configured; the first detected manager is used")
				ui.Info("Pick one with: nvmux backend fnm (or nvmux backend nvm)")
				return
			}
			ui.Info("Configured backend: %s", ui.Highlight(cfg.Backend))
			if cfg.BackendPath != "" {
				ui.Info("Path override: %s", cfg.BackendPath)
			}
			return
		}

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
		out, err := va.Detect(cmd.Context(), backend.DetectOptions{Override: backendPathFlag})
		if err != nil {
			ui.Error("%v", err)
			return
		}
		if out.Kind == backend.OutcomeNotFound {
			ui.Warning("%s is not detectable on this machine yet", va.Info().DisplayName)
			ui.Info("Install it first with: nvmux setup %s", kind)
		}

		cfg.Backend = string(kind)
		cfg.BackendPath = backendPathFlag

		store := settings.NewStore()
		store.Put(cfg)
		if err := store.Close(); err != nil {
			ui.Error("Failed to save settings: %v", err)
			return
		}

		ui.Success("Configured backend set to %s", ui.Highlight(string(kind)))
		if out.Kind != backend.OutcomeNotFound {
			ui.Info("Detected at: %s", out.Path)
		}
	},
}

func init() {
	backendCmd.Flags().StringVar(&backendPathFlag, "path", "", "Explicit path to the manager executable (or nvm.sh)")
	rootCmd.AddCommand(backendCmd)
}
