package cmd

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aximo-works/boardwatch/internal/archive"
	"github.com/aximo-works/boardwatch/internal/config"
	"github.com/aximo-works/boardwatch/internal/health"
	"github.com/aximo-works/boardwatch/internal/tui"
	"github.com/aximo-works/boardwatch/internal/watcher"
)

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	model := tui.NewBoard(cfg,
		newGateway(cfg),
		newProbe(cfg),
		health.NewMonitor(cfg.AlertCooldown()),
		health.NewAlerter(cfg.Webhook(), logger),
		store,
	)
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startArchiveWatcher(ctx, cfg.Dir(), p)

	_, err = p.Run()
	return err
}

// startArchiveWatcher pushes a reload into the TUI whenever the archive
// record or the config file changes on disk (another boardwatch process,
// or a manual edit).
func startArchiveWatcher(ctx context.Context, dir string, p *tea.Program) {
	names := []string{archive.StorageKey + ".json", config.ConfigFileName}
	w, err := watcher.New([]string{dir}, names, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, nil)
}
