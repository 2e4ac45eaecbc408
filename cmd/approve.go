package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aximo-works/boardwatch/internal/board"
	"github.com/aximo-works/boardwatch/internal/clierr"
	"github.com/aximo-works/boardwatch/internal/output"
)

var approveCmd = &cobra.Command{
	Use:   "approve ID",
	Short: "Approve a pending task",
	Args:  cobra.ExactArgs(1),
	RunE:  runApprove,
}

func init() {
	rootCmd.AddCommand(approveCmd)
}

func runApprove(_ *cobra.Command, args []string) error {
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
	if err := gw.Approve(ctx, t.ID); err != nil {
		return clierr.Newf(clierr.GatewayError, "approving task %s: %v", t.ID, err)
	}

	board.LogMutation(cfg.Dir(), "approve", t.ID, "")
	output.Messagef(os.Stdout, "Approved task %s", output.ShortID(t.ID))
	return nil
}
