package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aximo-works/boardwatch/internal/board"
	"github.com/aximo-works/boardwatch/internal/clierr"
	"github.com/aximo-works/boardwatch/internal/output"
	"github.com/aximo-works/boardwatch/internal/task"
)

var moveCmd = &cobra.Command{
	Use:   "move ID STATUS",
	Short: "Move a task to another status",
	Long:  "Moves a task to one of: " + strings.Join(task.ColumnStatuses(), ", ") + ".",
	Args:  cobra.ExactArgs(2), //nolint:mnd // ID and STATUS
	RunE:  runMove,
}

func init() {
	rootCmd.AddCommand(moveCmd)
}

func runMove(_ *cobra.Command, args []string) error {
	status := args[1]
	if !task.ValidStatus(status) {
		return clierr.Newf(clierr.InvalidStatus, "invalid status %q; valid: %s",
			status, strings.Join(task.ColumnStatuses(), ", "))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gw := newGateway(cfg)

	tasks, err := fetchTasks(cfg, gw)
	if err != nil {
		return err
	}
	t, err := findTask(tasks, args[0])
	if err != nil {
		return err
	}

	ctx, cancel := mutationContext(cfg)
	defer cancel()
	if err := gw.UpdateStatus(ctx, t.ID, status); err != nil {
		return clierr.Newf(clierr.GatewayError, "moving task %s: %v", t.ID, err)
	}

	board.LogMutation(cfg.Dir(), "move", t.ID, status)
	output.Messagef(os.Stdout, "Moved task %s to %s", output.ShortID(t.ID), status)
	return nil
}
