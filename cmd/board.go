package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aximo-works/boardwatch/internal/board"
	"github.com/aximo-works/boardwatch/internal/config"
	"github.com/aximo-works/boardwatch/internal/gateway"
	"github.com/aximo-works/boardwatch/internal/output"
)

var flagWatch bool

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"summary"},
	Short:   "Show board summary",
	Long: `Displays a summary of the board: task counts, aggregate pressure, and
overdue counts per status column.

Use --watch to keep the display live-updating on the refresh interval.
Press Ctrl+C to stop.`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
	boardCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the board summary")
}

func runBoard(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gw := newGateway(cfg)

	if err := renderBoard(cfg, gw); err != nil {
		return err
	}

	if !flagWatch {
		return nil
	}

	return watchBoard(cfg, gw)
}

func renderBoard(cfg *config.Config, gw *gateway.Client) error {
	tasks, err := fetchTasks(cfg, gw)
	if err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	now := nowFunc()
	visible := board.Visible(tasks, board.VisibilityOptions{Archive: store, Now: now})
	summary := board.Summarize(visible, now)

	format := outputFormat()
	if format == output.FormatJSON {
		return output.JSON(os.Stdout, summary)
	}
	if format == output.FormatCompact {
		output.OverviewCompact(os.Stdout, summary)
		return nil
	}

	output.OverviewTable(os.Stdout, summary)
	return nil
}

func watchBoard(cfg *config.Config, gw *gateway.Client) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	ticker := time.NewTicker(cfg.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			clearScreen()
			if err := renderBoard(cfg, gw); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: rendering board: %v\n", err)
			}
		}
	}
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
