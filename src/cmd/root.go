// Package cmd implements the CLI commands for nvmux
package cmd

import (
	"fmt"
	"os"

	"github.com/nvmux/nvmux/src/internal/tui"
	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	backendFlag string
)

var rootCmd = &cobra.Command{
	Use:   "nvmux",
	Short: "One front end for your Node version managers",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.CheckVerboseEnv()
		if verbose {
			ui.SetVerbose(true)
		}
	},
}

func Execute() {
	// Check for --version or -v flag before Cobra parses
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			versionCmd.Run(versionCmd, []string{})
			return
		}
	}

	if err := rootCmd.Execute(); err != nil {
		// Error already printed by Cobra, just exit with error code
		os.Exit(1)
	}
}

func init() {
	// Hide the completion command until we implement it
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Version manager to use for this invocation (fnm or nvm)")

	// Set custom usage and help functions with TUI table for commands
	rootCmd.SetUsageFunc(customUsage)
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		_ = customUsage(cmd)
	})
}

func customUsage(cmd *cobra.Command) error {
	const tableWidth = 95 // Consistent width for all tables

	// Print header box with title and description
	headerTable := tui.NewTable("")
	headerTable.SetTitle(cmd.Short)
	headerTable.HideHeader()
	headerTable.SetMinWidth(tableWidth)
	headerTable.AddRow("nvmux drives fnm and nvm through a single interface, so scripts and muscle memory")
	headerTable.AddRow("keep working no matter which Node version manager a machine happens to have.")

	fmt.Println(headerTable.Render())
	fmt.Println()

	// Build commands table
	table := tui.NewTable("Command", "Description")
	table.SetTitle("Available Commands")
	table.SetMinWidth(tableWidth)

	for _, c := range cmd.Commands() {
		// Skip hidden commands and completion
		if c.Hidden || c.Name() == "completion" {
			continue
		}
		table.AddRow(c.Name(), c.Short)
	}

	fmt.Println(table.Render())
	return nil
}
