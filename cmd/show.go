package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aximo-works/boardwatch/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Long: `Displays full details of a single task. The ID may be abbreviated to any
unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tasks, err := fetchTasks(cfg, newGateway(cfg))
	if err != nil {
		return err
	}

	t, err := findTask(tasks, args[0])
	if err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	now := nowFunc()
	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	if format == output.FormatCompact {
		output.TaskDetailCompact(os.Stdout, t, now)
		return nil
	}

	output.TaskDetail(os.Stdout, t, store.Has(t.ID), now)
	return nil
}
