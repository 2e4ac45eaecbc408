package cmd

import (
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/aximo-works/boardwatch/internal/board"
	"github.com/aximo-works/boardwatch/internal/clierr"
	"github.com/aximo-works/boardwatch/internal/output"
	"github.com/aximo-works/boardwatch/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists the visible working set, ranked by urgency within each status.
Archived, aged-out and test-marked tasks are hidden unless flags say otherwise.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().String("status", "", "filter by status")
	listCmd.Flags().String("owner", "", "filter by owner")
	listCmd.Flags().Bool("show-test", false, "include test-marked tasks")
	listCmd.Flags().Bool("archived", false, "include archived tasks")
	listCmd.Flags().Bool("all", false, "skip visibility filtering entirely")
	listCmd.Flags().String("sort", "pressure", "sort order (pressure, due, created)")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	status, _ := cmd.Flags().GetString("status")
	owner, _ := cmd.Flags().GetString("owner")
	showTest, _ := cmd.Flags().GetBool("show-test")
	withArchived, _ := cmd.Flags().GetBool("archived")
	all, _ := cmd.Flags().GetBool("all")
	sortBy, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt("limit")

	if status != "" && !task.ValidStatus(status) {
		return clierr.Newf(clierr.InvalidStatus, "invalid status %q", status)
	}
	switch sortBy {
	case "pressure", "due", "created":
	default:
		return clierr.Newf(clierr.InvalidInput, "invalid sort order %q (want pressure, due or created)", sortBy)
	}

	gw := newGateway(cfg)
	tasks, err := fetchTasks(cfg, gw)
	if err != nil {
		return err
	}

	now := nowFunc()
	if !all {
		opts := board.VisibilityOptions{ShowTest: showTest, Now: now}
		if !withArchived {
			store, storeErr := newStore(cfg)
			if storeErr != nil {
				return storeErr
			}
			opts.Archive = store
		}
		tasks = board.Visible(tasks, opts)
	}

	var filtered []task.Task
	for _, t := range tasks {
		if status != "" && t.Status != status {
			continue
		}
		if owner != "" && t.Owner != owner {
			continue
		}
		filtered = append(filtered, t)
	}

	sortTasks(filtered, sortBy, now)
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	format := outputFormat()
	if format == output.FormatJSON {
		if filtered == nil {
			filtered = []task.Task{}
		}
		return output.JSON(os.Stdout, filtered)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, filtered, now)
		return nil
	}

	output.TaskTable(os.Stdout, filtered, now)
	return nil
}

func sortTasks(tasks []task.Task, by string, now time.Time) {
	switch by {
	case "due":
		sort.SliceStable(tasks, func(i, j int) bool {
			di, iOK := task.ParseDueRaw(tasks[i].DueDate)
			dj, jOK := task.ParseDueRaw(tasks[j].DueDate)
			if iOK != jOK {
				return iOK
			}
			if !iOK {
				return false
			}
			return di.Before(dj)
		})
	case "created":
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedTime().After(tasks[j].CreatedTime())
		})
	default:
		board.Rank(tasks, now)
	}
}
