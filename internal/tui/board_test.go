package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aximo-works/boardwatch/internal/archive"
	"github.com/aximo-works/boardwatch/internal/config"
	"github.com/aximo-works/boardwatch/internal/gateway"
	"github.com/aximo-works/boardwatch/internal/health"
	"github.com/aximo-works/boardwatch/internal/task"
)

func newTestBoard(t *testing.T, cfg *config.Config) *Board {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{Version: 1, Backend: config.BackendConfig{BaseURL: "http://localhost:0"}}
	}
	store, err := archive.NewStore(archive.NewMemory())
	require.NoError(t, err)
	b := NewBoard(cfg,
		gateway.New(cfg.Backend.BaseURL, "", "X-API-Token", time.Second, nil),
		health.NewProbe(cfg.Backend.BaseURL, "", "X-API-Token", time.Second, nil),
		health.NewMonitor(0),
		health.NewAlerter("", nil),
		store,
	)
	b.SetNow(func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) })
	b.width = 120
	b.height = 40
	return b
}

func ptr(s string) *string { return &s }

func cardByID(b *Board, col column, id string) string {
	for _, n := range col.rows {
		if n.Task.ID == id {
			return strings.Join(b.cardContentLines(n, 40), "\n")
		}
	}
	return ""
}

func TestActionFailureShowsOnCardOnly(t *testing.T) {
	b := newTestBoard(t, nil)
	b.tasks = []task.Task{
		{ID: "task-1", Text: "first", Status: task.StatusPending, CreatedAt: "2026-03-09T10:00:00Z"},
		{ID: "task-2", Text: "second", Status: task.StatusPending, CreatedAt: "2026-03-09T11:00:00Z"},
	}
	b.rebuild()

	_, _ = b.Update(actionMsg{id: "task-1", err: errors.New("HTTP 500: boom")})

	col := b.columns[0]
	require.Len(t, col.rows, 2)
	assert.Contains(t, cardByID(b, col, "task-1"), "HTTP 500: boom")
	assert.NotContains(t, cardByID(b, col, "task-2"), "HTTP 500")

	// Not a global toast.
	assert.NotContains(t, b.renderStatusBar(), "HTTP 500")

	// The next successful action against the task clears the card error.
	_, _ = b.Update(actionMsg{id: "task-1"})
	assert.NotContains(t, cardByID(b, col, "task-1"), "HTTP 500")
}

func TestColumnCountIgnoresCollapse(t *testing.T) {
	b := newTestBoard(t, nil)
	b.tasks = []task.Task{
		{ID: "p1", Text: "parent", Status: task.StatusPending, CreatedAt: "2026-03-09T10:00:00Z"},
		{ID: "c1", Text: "child", Status: task.StatusPending, ParentID: ptr("p1"), CreatedAt: "2026-03-09T11:00:00Z"},
	}
	b.rebuild()

	require.Equal(t, 2, b.columns[0].count)
	require.Len(t, b.columns[0].rows, 2)

	// Collapsing the root hides the child row but not its share of the count.
	b.expanded = map[string]bool{"p1": false}
	b.rebuild()

	col := b.columns[0]
	assert.Len(t, col.rows, 1)
	assert.Equal(t, 2, col.count)
	assert.Contains(t, b.renderColumn(0, col, 40), "(2)")
	assert.Equal(t, 2, b.visibleCount())
}

func TestReloadPicksUpConfigChanges(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Init(dir, "http://localhost:0")
	require.NoError(t, err)

	b := newTestBoard(t, cfg)
	require.NotEqual(t, 5*time.Minute, b.cfg.RefreshInterval())

	edited := *cfg
	edited.TUI.RefreshInterval = "5m"
	require.NoError(t, edited.Save())

	_, _ = b.Update(ReloadMsg{})
	assert.Equal(t, 5*time.Minute, b.cfg.RefreshInterval())
}
