package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nvmux/nvmux/src/internal/release"
	"github.com/nvmux/nvmux/src/internal/settings"
	"github.com/nvmux/nvmux/src/internal/tui"
	"github.com/nvmux/nvmux/src/internal/ui"
	"github.com/nvmux/nvmux/src/internal/writeq"
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the Node.js release schedule",
	Long: `Display the upstream Node.js release lines with their support status.
The schedule is fetched from the Node.js release working group and
cached; offline the cache is used, then a snapshot bundled with the
binary.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := release.NewClient()

		source := ""
		schedule, err := client.Schedule(cmd.Context())
		if err != nil {
			ui.Debug("schedule fetch: %v", err)
			schedule, err = cachedSchedule()
			source = " (cached)"
			if err != nil {
				ui.Debug("schedule cache read: %v", err)
				schedule, err = release.EmbeddedSchedule()
				source = " (bundled)"
			}
			if err != nil {
				ui.Error("Could not load the release schedule: %v", err)
				return
			}
		} else {
			persistScheduleCache(schedule)
		}

		now := time.Now()
		table := tui.NewTable("Line", "Codename", "Status", "LTS since", "End of life")
		table.SetTitle("Node.js release schedule" + source)

		shown := 0
		for _, cycle := range schedule.Cycles {
			if cycle.Major() < 0 {
				continue // pre-io.js 0.x lines
			}
			status := cycle.Status(now)
			if status == "end-of-life" && !scheduleAllFlag {
				continue
			}
			row := []string{cycle.Line, cycle.Codename, status, cycle.LTS, cycle.End}
			if status == "active lts" {
				table.AddActiveRow(row...)
			} else {
				table.AddRow(row...)
			}
			shown++
		}

		fmt.Println(table.Render())

		if !scheduleAllFlag {
			fmt.Println()
			ui.Info("%d line(s) shown; add --all to include end-of-life lines", shown)
		}
	},
}

var scheduleAllFlag bool

// persistScheduleCache writes the schedule to the cache file through a
// debounced queue, so a burst of refreshes settles into one write.
func persistScheduleCache(schedule *release.Schedule) {
	path := settings.ScheduleCachePath()
	queue := writeq.New(func(s *release.Schedule) error {
		data, err := s.Encode()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	})
	queue.Push(schedule)
	if err := queue.Close(); err != nil {
		ui.Debug("schedule cache write: %v", err)
	}
}

func cachedSchedule() (*release.Schedule, error) {
	data, err := os.ReadFile(settings.ScheduleCachePath())
	if err != nil {
		return nil, err
	}
	return release.DecodeSchedule(data)
}

func init() {
	scheduleCmd.Flags().BoolVar(&scheduleAllFlag, "all", false, "Include end-of-life release lines")
	rootCmd.AddCommand(scheduleCmd)
}
