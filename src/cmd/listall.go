package cmd

import (
	"fmt"
	"strings"

	"github.com/nvmux/nvmux/src/internal/node"
	"github.com/nvmux/nvmux/src/internal/tui"
	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/spf13/cobra"
)

var listAllCmd = &cobra.Command{
	Use:   "list-all",
	Short: "List Node.js versions available for installation",
	Long: `Display the versions the active version manager can install, grouped
by major release line, newest first. Installed versions are marked with
a ✓ indicator.

Examples:
  nvmux list-all
  nvmux list-all --majors 3
  nvmux list-all --filter 20.11
  nvmux list-all --lts
  nvmux list-all --latest --majors 0`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		filter, _ := cmd.Flags().GetString("filter")
		majors, _ := cmd.Flags().GetInt("majors")
		ltsOnly, _ := cmd.Flags().GetBool("lts")
		latestOnly, _ := cmd.Flags().GetBool("latest")

		s, err := openSession(cmd.Context())
		if err != nil {
			describeBackendError(err)
			return
		}

		ui.Info("Fetching available versions...")

		remote, err := s.provider.ListRemote(cmd.Context())
		if err != nil {
			ui.Error("Failed to fetch available versions: %v", err)
			return
		}
		if len(remote) == 0 {
			ui.Warning("No versions found")
			return
		}

		// Index the remote metadata so grouped versions can find their
		// LTS codenames again.
		type meta struct {
			lts      bool
			codename string
		}
		metaByRaw := make(map[string]meta, len(remote))
		versions := make([]node.Version, 0, len(remote))
		for _, rv := range remote {
			if filter != "" && !strings.Contains(rv.Version.Raw, filter) {
				continue
			}
			if ltsOnly && !rv.LTS {
				continue
			}
			metaByRaw[rv.Version.Raw] = meta{lts: rv.LTS, codename: rv.Codename}
			versions = append(versions, rv.Version)
		}
		if len(versions) == 0 {
			ui.Warning("No versions match the filter")
			return
		}

		installed, err := s.provider.ListInstalled(cmd.Context())
		if err != nil {
			ui.Warning("Could not check installed versions: %v", err)
		}
		installedMap := make(map[string]bool, len(installed))
		for _, iv := range installed {
			installedMap[iv.Version.Raw] = true
		}

		groups := node.GroupByMajor(versions)
		shown := 0

		table := tui.NewTable("", "Version", "Notes")
		table.SetTitle(fmt.Sprintf("Available via %s", s.provider.Info().DisplayName))

		for i, group := range groups {
			if majors > 0 && i >= majors {
				break
			}
			if i > 0 && !latestOnly {
				table.AddSeparatorRow()
			}
			rows := group.Versions
			if latestOnly && len(rows) > 1 {
				rows = rows[:1]
			}
			for _, v := range rows {
				marker := ""
				if installedMap[v.Raw] {
					marker = tui.GetCheckMark()
				}
				notes := ""
				if m := metaByRaw[v.Raw]; m.lts {
					notes = tui.RenderLTS("LTS")
					if m.codename != "" {
						notes = tui.RenderLTS("LTS " + m.codename)
					}
				}
				table.AddRow(marker, "v"+v.String(), notes)
				shown++
			}
		}

		fmt.Println()
		fmt.Println(table.Render())
		fmt.Println()

		if hidden := len(versions) - shown; hidden > 0 && !latestOnly {
			ui.Info("%d older version(s) hidden; raise --majors to see more", hidden)
		}
		ui.Info("Install a version with: nvmux install <version>")
	},
}

func init() {
	listAllCmd.Flags().StringP("filter", "f", "", "Filter versions by substring (e.g., '20.11')")
	listAllCmd.Flags().IntP("majors", "m", 5, "Number of major release lines to show (0 for all)")
	listAllCmd.Flags().Bool("lts", false, "Only show LTS releases")
	listAllCmd.Flags().Bool("latest", false, "Only show the newest version of each major line")
	rootCmd.AddCommand(listAllCmd)
}
