package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/aximo-works/boardwatch/internal/board"
	"github.com/aximo-works/boardwatch/internal/clierr"
	"github.com/aximo-works/boardwatch/internal/output"
	"github.com/aximo-works/boardwatch/internal/sanitize"
)

var rejectCmd = &cobra.Command{
	Use:   "reject ID",
	Short: "Reject a pending task",
	Long: `Rejects a pending task, optionally with a reason. Prompts for confirmation
in interactive mode.`,
	Args: cobra.ExactArgs(1),
	RunE: runReject,
}

func init() {
	rejectCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "message" {
			name = "reason"
		}
		return pflag.NormalizedName(name)
	})
	rejectCmd.Flags().String("reason", "", "optional rejection reason")
	rejectCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	rootCmd.AddCommand(rejectCmd)
}

func runReject(cmd *cobra.Command, args []string) error {
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

	var reason *string
	if cmd.Flags().Changed("reason") {
		v, _ := cmd.Flags().GetString("reason")
		v = sanitize.Text(v)
		if v != "" {
			reason = &v
		}
	}

	// Require confirmation in TTY mode unless --yes.
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(os.Stderr, "Reject task %s %q? [y/N] ",
			output.ShortID(t.ID), sanitize.Hint(t.Text))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	ctx, cancel := mutationContext(cfg)
	defer cancel()
	if err := gw.Reject(ctx, t.ID, reason); err != nil {
		return clierr.Newf(clierr.GatewayError, "rejecting task %s: %v", t.ID, err)
	}

	detail := ""
	if reason != nil {
		detail = *reason
	}
	board.LogMutation(cfg.Dir(), "reject", t.ID, detail)
	output.Messagef(os.Stdout, "Rejected task %s", output.ShortID(t.ID))
	return nil
}
