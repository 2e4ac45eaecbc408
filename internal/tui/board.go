// Package tui implements the terminal UI for the boardwatch task board.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aximo-works/boardwatch/internal/archive"
	"github.com/aximo-works/boardwatch/internal/board"
	"github.com/aximo-works/boardwatch/internal/config"
	"github.com/aximo-works/boardwatch/internal/gateway"
	"github.com/aximo-works/boardwatch/internal/health"
	"github.com/aximo-works/boardwatch/internal/pressure"
	"github.com/aximo-works/boardwatch/internal/sanitize"
	"github.com/aximo-works/boardwatch/internal/task"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewDetail
	viewArchived
	viewReject
)

// Key and layout constants.
const (
	keyEsc = "esc"

	boardChrome = 2 // blank line + status bar below the column area
	errorChrome = 1 // extra line when error toast is displayed

	rejectReasonLimit = 200
)

// Board is the top-level bubbletea model.
type Board struct {
	cfg     *config.Config
	gw      *gateway.Client
	probe   *health.Probe
	monitor *health.Monitor
	alerter *health.Alerter
	store   *archive.Store
	now     func() time.Time

	tasks     []task.Task
	columns   []column
	activeCol int
	activeRow int
	view      view
	width     int
	height    int
	loading   bool
	loadErr   error
	actionErr string
	// Last backend-action failure per task id, rendered inline on the card.
	taskErrs map[string]string

	// Display toggles.
	showTest bool
	grouped  bool

	// Per-root expansion state, reset when the visible set changes.
	expanded  map[string]bool
	expandSig string

	// Backend health as last observed by the poll loop.
	healthKnown bool
	healthOK    bool
	healthHint  string

	// fetchSeq guards against stale fetch responses landing after a newer
	// request was issued.
	fetchSeq int

	// Detail view.
	detailID string

	// Reject prompt.
	rejectID    string
	rejectInput textinput.Model

	// Archived panel.
	archivedRows []task.Task
	archivedRow  int
}

// column groups the rendered rows of a single status.
type column struct {
	status    string
	title     string
	rows      []*board.Node
	count     int // tasks in the column, independent of collapse state
	pressure  int
	scrollOff int // first visible row index
}

// NewBoard creates a new Board model wired to the backend and archive store.
func NewBoard(cfg *config.Config, gw *gateway.Client, probe *health.Probe,
	monitor *health.Monitor, alerter *health.Alerter, store *archive.Store) *Board {
	ti := textinput.New()
	ti.Placeholder = "reason (optional)"
	ti.CharLimit = rejectReasonLimit

	return &Board{
		cfg:         cfg,
		gw:          gw,
		probe:       probe,
		monitor:     monitor,
		alerter:     alerter,
		store:       store,
		now:         time.Now,
		grouped:     true,
		showTest:    cfg.TUI.ShowTestTasks,
		healthOK:    true,
		loading:     true,
		rejectInput: ti,
		taskErrs:    make(map[string]string),
	}
}

// SetNow overrides the clock used for urgency computation (for testing).
func (b *Board) SetNow(fn func() time.Time) {
	b.now = fn
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return tea.Batch(
		b.fetchCmd(),
		b.healthCmd(),
		refreshTickCmd(b.cfg.RefreshInterval()),
		healthTickCmd(b.cfg.HealthInterval()),
	)
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil
	case tasksMsg:
		return b.handleTasks(msg)
	case healthMsg:
		return b.handleHealth(msg)
	case actionMsg:
		return b.handleAction(msg)
	case refreshTickMsg:
		return b, tea.Batch(b.fetchCmd(), refreshTickCmd(b.cfg.RefreshInterval()))
	case healthTickMsg:
		return b, tea.Batch(b.healthCmd(), healthTickCmd(b.cfg.HealthInterval()))
	case ReloadMsg:
		// Archive record or config changed on disk under us. A bad config
		// edit keeps the last good one.
		_ = b.store.Reload()
		if cfg, err := config.Load(b.cfg.Dir()); err == nil {
			b.cfg = cfg
		}
		b.rebuild()
		return b, nil
	}
	return b, nil
}

// View implements tea.Model.
func (b *Board) View() string {
	if b.width == 0 {
		return "Loading..."
	}

	switch b.view {
	case viewDetail:
		return b.viewDetail()
	case viewArchived:
		return b.viewArchived()
	case viewReject:
		return b.viewReject()
	default:
		return b.viewBoard()
	}
}

// --- Message handling ---

func (b *Board) handleTasks(msg tasksMsg) (tea.Model, tea.Cmd) {
	if msg.seq != b.fetchSeq {
		// A newer fetch is already in flight or landed; drop this one.
		return b, nil
	}
	b.loading = false
	if msg.err != nil {
		// Keep showing the previous snapshot alongside the error.
		b.loadErr = msg.err
		return b, nil
	}
	b.loadErr = nil
	b.tasks = msg.tasks
	b.rebuild()
	return b, nil
}

func (b *Board) handleHealth(msg healthMsg) (tea.Model, tea.Cmd) {
	b.healthKnown = true
	b.healthOK = msg.report.OK
	b.healthHint = msg.report.Hint

	decision := b.monitor.Observe(msg.report)
	if decision.Alert && b.alerter.Enabled() {
		reason := decision.Reason
		return b, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), b.cfg.BackendTimeout())
			defer cancel()
			b.alerter.Send(ctx, reason)
			return nil
		}
	}
	return b, nil
}

func (b *Board) handleAction(msg actionMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		b.taskErrs[msg.id] = msg.err.Error()
		return b, nil
	}
	delete(b.taskErrs, msg.id)
	return b, b.fetchCmd()
}

// --- Key handling ---

func (b *Board) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return b, tea.Quit
	}

	switch b.view {
	case viewBoard:
		return b.handleBoardKey(msg)
	case viewDetail:
		return b.handleDetailKey(msg)
	case viewArchived:
		return b.handleArchivedKey(msg)
	case viewReject:
		return b.handleRejectKey(msg)
	}

	return b, nil
}

func (b *Board) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return b, tea.Quit
	case "h", "left":
		if b.activeCol > 0 {
			b.activeCol--
			b.clampRow()
		}
	case "l", "right":
		if b.activeCol < len(b.columns)-1 {
			b.activeCol++
			b.clampRow()
		}
	case "j", "down":
		col := b.currentColumn()
		if col != nil && b.activeRow < len(col.rows)-1 {
			b.activeRow++
			b.ensureVisible()
		}
	case "k", "up":
		if b.activeRow > 0 {
			b.activeRow--
			b.ensureVisible()
		}
	case "r":
		b.loading = true
		return b, b.fetchCmd()
	case "R":
		// Retry: re-check health and refetch in one go.
		b.loading = true
		return b, tea.Batch(b.healthCmd(), b.fetchCmd())
	case "t":
		b.showTest = !b.showTest
		b.rebuild()
	case "g":
		b.grouped = !b.grouped
		b.rebuild()
	case " ":
		b.toggleExpand()
	case "v":
		b.openArchived()
	case "enter":
		if n := b.selectedNode(); n != nil {
			b.detailID = n.Task.ID
			b.view = viewDetail
		}
	case "a":
		return b.mutate(func(id string) tea.Cmd { return b.approveCmd(id) })
	case "x":
		return b.startReject()
	case "m":
		return b.mutate(func(id string) tea.Cmd { return b.cycleStatusCmd(id) })
	case "A":
		return b.archiveSelected()
	}
	return b, nil
}

func (b *Board) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc, "enter":
		b.view = viewBoard
	case "A":
		// Archiving is client-local, so it works even while degraded.
		id := b.detailID
		b.view = viewBoard
		if err := b.store.Archive(id); err != nil {
			b.actionErr = err.Error()
			return b, nil
		}
		board.LogMutation(b.cfg.Dir(), "archive", id, "")
		b.rebuild()
	}
	return b, nil
}

func (b *Board) handleArchivedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc, "v":
		b.view = viewBoard
	case "j", "down":
		if b.archivedRow < len(b.archivedRows)-1 {
			b.archivedRow++
		}
	case "k", "up":
		if b.archivedRow > 0 {
			b.archivedRow--
		}
	case "u":
		if b.archivedRow < len(b.archivedRows) {
			id := b.archivedRows[b.archivedRow].ID
			if !b.store.Has(id) {
				// Auto-aged tasks have nothing to unarchive.
				return b, nil
			}
			if err := b.store.Unarchive(id); err != nil {
				b.actionErr = err.Error()
				return b, nil
			}
			board.LogMutation(b.cfg.Dir(), "unarchive", id, "")
			b.rebuild()
			b.openArchived()
		}
	}
	return b, nil
}

func (b *Board) handleRejectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		// Cancel: no request leaves the client.
		b.view = viewBoard
		b.rejectInput.Blur()
		return b, nil
	case "enter":
		id := b.rejectID
		var reason *string
		if v := strings.TrimSpace(b.rejectInput.Value()); v != "" {
			reason = &v
		}
		b.view = viewBoard
		b.rejectInput.Blur()
		return b, b.rejectCmd(id, reason)
	}

	var cmd tea.Cmd
	b.rejectInput, cmd = b.rejectInput.Update(msg)
	return b, cmd
}

// mutate runs a backend mutation for the selected task, unless the backend
// is degraded, in which case the key is ignored.
func (b *Board) mutate(fn func(id string) tea.Cmd) (tea.Model, tea.Cmd) {
	if b.degraded() {
		return b, nil
	}
	n := b.selectedNode()
	if n == nil {
		return b, nil
	}
	return b, fn(n.Task.ID)
}

func (b *Board) startReject() (tea.Model, tea.Cmd) {
	if b.degraded() {
		return b, nil
	}
	n := b.selectedNode()
	if n == nil || n.Task.Status != task.StatusPending {
		return b, nil
	}
	b.rejectID = n.Task.ID
	b.rejectInput.SetValue("")
	b.view = viewReject
	return b, b.rejectInput.Focus()
}

func (b *Board) archiveSelected() (tea.Model, tea.Cmd) {
	n := b.selectedNode()
	if n == nil {
		return b, nil
	}
	if err := b.store.Archive(n.Task.ID); err != nil {
		b.actionErr = err.Error()
		return b, nil
	}
	board.LogMutation(b.cfg.Dir(), "archive", n.Task.ID, "")
	b.rebuild()
	return b, nil
}

func (b *Board) toggleExpand() {
	n := b.selectedNode()
	if n == nil || !n.Collapsible() || len(n.Children) == 0 {
		return
	}
	if b.expanded == nil {
		b.expanded = make(map[string]bool)
	}
	cur, ok := b.expanded[n.Task.ID]
	if !ok {
		cur = true // default expanded
	}
	b.expanded[n.Task.ID] = !cur
	b.rebuild()
}

func (b *Board) openArchived() {
	b.archivedRows = board.ArchivedView(b.tasks, b.store, b.now())
	if b.archivedRow >= len(b.archivedRows) {
		b.archivedRow = 0
	}
	b.view = viewArchived
}

// degraded reports whether the backend is known-bad, which disables every
// mutating key while leaving navigation and retry alone.
func (b *Board) degraded() bool {
	if b.healthKnown && !b.healthOK {
		b.actionErr = "backend degraded; actions disabled (R to retry)"
		return true
	}
	return false
}

// --- Commands ---

// ReloadMsg is sent by the file watcher when the archive record or the
// config file changes.
type ReloadMsg struct{}

type tasksMsg struct {
	seq   int
	tasks []task.Task
	err   error
}

type healthMsg struct{ report health.Report }

type actionMsg struct {
	id  string
	err error
}

type refreshTickMsg struct{}

type healthTickMsg struct{}

func (b *Board) fetchCmd() tea.Cmd {
	b.fetchSeq++
	seq := b.fetchSeq
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), b.cfg.BackendTimeout())
		defer cancel()
		tasks, err := b.gw.ListTasks(ctx)
		return tasksMsg{seq: seq, tasks: tasks, err: err}
	}
}

func (b *Board) healthCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), b.cfg.BackendTimeout())
		defer cancel()
		return healthMsg{report: b.probe.Check(ctx)}
	}
}

func (b *Board) approveCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), b.cfg.BackendTimeout())
		defer cancel()
		return actionMsg{id: id, err: b.gw.Approve(ctx, id)}
	}
}

func (b *Board) rejectCmd(id string, reason *string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), b.cfg.BackendTimeout())
		defer cancel()
		return actionMsg{id: id, err: b.gw.Reject(ctx, id, reason)}
	}
}

// cycleStatusCmd moves the selected task to the next column, wrapping after
// done.
func (b *Board) cycleStatusCmd(id string) tea.Cmd {
	var current string
	for _, t := range b.tasks {
		if t.ID == id {
			current = t.Status
			break
		}
	}

	statuses := task.ColumnStatuses()
	next := statuses[0]
	for i, s := range statuses {
		if s == current {
			next = statuses[(i+1)%len(statuses)]
			break
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), b.cfg.BackendTimeout())
		defer cancel()
		return actionMsg{id: id, err: b.gw.UpdateStatus(ctx, id, next)}
	}
}

func refreshTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func healthTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return healthTickMsg{} })
}

// --- Board state ---

// rebuild recomputes the visible working set and the rendered columns from
// the current snapshot.
func (b *Board) rebuild() {
	now := b.now()
	visible := board.Visible(b.tasks, board.VisibilityOptions{
		Archive:  b.store,
		ShowTest: b.showTest,
		Now:      now,
	})

	// A changed visible set invalidates manual collapse state.
	if sig := board.ExpandSignature(visible); sig != b.expandSig {
		b.expandSig = sig
		b.expanded = nil
	}

	cols := board.Columns(visible, now)
	b.columns = make([]column, len(cols))
	for i, c := range cols {
		var rows []*board.Node
		if b.grouped {
			rows = board.Flatten(board.Group(c.Tasks), b.isExpanded)
		} else {
			for _, t := range c.Tasks {
				rows = append(rows, &board.Node{Task: t})
			}
		}
		b.columns[i] = column{
			status:   c.Status,
			title:    c.Title,
			rows:     rows,
			count:    len(c.Tasks),
			pressure: c.Pressure,
		}
	}

	b.clampRow()
}

func (b *Board) isExpanded(rootID string) bool {
	if b.expanded == nil {
		return true
	}
	v, ok := b.expanded[rootID]
	if !ok {
		return true
	}
	return v
}

func (b *Board) currentColumn() *column {
	if b.activeCol >= 0 && b.activeCol < len(b.columns) {
		return &b.columns[b.activeCol]
	}
	return nil
}

func (b *Board) selectedNode() *board.Node {
	col := b.currentColumn()
	if col == nil || len(col.rows) == 0 {
		return nil
	}
	if b.activeRow >= 0 && b.activeRow < len(col.rows) {
		return col.rows[b.activeRow]
	}
	return nil
}

func (b *Board) selectedTaskByID(id string) *task.Task {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return &b.tasks[i]
		}
	}
	return nil
}

func (b *Board) clampRow() {
	col := b.currentColumn()
	if col == nil || len(col.rows) == 0 {
		b.activeRow = 0
		return
	}
	if b.activeRow >= len(col.rows) {
		b.activeRow = len(col.rows) - 1
	}
	b.ensureVisible()
}

// chromeHeight returns the number of lines consumed by non-card elements
// below the column area.
func (b *Board) chromeHeight() int {
	h := boardChrome
	if b.loadErr != nil || b.actionErr != "" {
		h += errorChrome
	}
	return h
}

// visibleCardsForColumn returns the number of cards that fit in the column,
// accounting for scroll indicator lines ("↑ N more" / "↓ N more") that
// consume vertical space.
func (b *Board) visibleCardsForColumn(col *column, width int) int {
	budget := b.height - b.chromeHeight()
	if budget < 1 {
		return 1
	}

	// Always need 1 line for column header.
	avail := budget - 1

	if col.scrollOff > 0 {
		avail--
	}

	n := b.fitCardsInHeight(col, avail, width)

	if col.scrollOff+n < len(col.rows) {
		// Re-compute with 1 fewer line for the down indicator.
		n = b.fitCardsInHeight(col, avail-1, width)
		if n < 1 {
			n = 1
		}
	}

	return n
}

// ensureVisible adjusts the active column's scroll offset so the selected
// row is within the visible window.
func (b *Board) ensureVisible() {
	col := b.currentColumn()
	if col == nil {
		return
	}
	w := b.columnWidth()

	for range len(col.rows) + 1 {
		maxVis := b.visibleCardsForColumn(col, w)

		switch {
		case b.activeRow >= col.scrollOff+maxVis:
			col.scrollOff = b.activeRow - maxVis + 1
		case b.activeRow < col.scrollOff:
			col.scrollOff = b.activeRow
		default:
			return // selected row is visible
		}
	}
}

func (b *Board) fitCardsInHeight(col *column, avail, width int) int {
	if len(col.rows) == 0 {
		return 1
	}
	if avail < 1 {
		return 1
	}

	used := 0
	count := 0
	for i := col.scrollOff; i < len(col.rows); i++ {
		cardLines := b.cardHeight(col.rows[i], width)
		if count > 0 && used+cardLines > avail {
			break
		}
		count++
		used += cardLines
		if used >= avail {
			break
		}
	}

	if count < 1 {
		return 1
	}
	return count
}

// --- Styles ---

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginBottom(0)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1).
			MarginBottom(0)

	orphanCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("94")).
			Padding(0, 1).
			MarginBottom(0)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	degradedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	faintStyle = lipgloss.NewStyle().Faint(true)

	// Urgency bucket colors, hottest first.
	bucketStyles = map[pressure.Bucket]lipgloss.Style{
		pressure.BucketOverdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		pressure.BucketDueSoon:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		pressure.BucketUpcoming: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		pressure.BucketNone:     dimStyle,
	}

	ownerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)
)

// --- View rendering ---

func (b *Board) viewBoard() string {
	if len(b.columns) == 0 {
		if b.loading {
			return "Loading tasks..."
		}
		return "No tasks."
	}

	colWidth := b.columnWidth()

	renderedCols := make([]string, len(b.columns))
	for i, col := range b.columns {
		renderedCols[i] = b.renderColumn(i, col, colWidth)
	}

	boardView := lipgloss.JoinHorizontal(lipgloss.Top, renderedCols...)
	if b.healthKnown && !b.healthOK {
		boardView = faintStyle.Render(boardView)
	}

	// Clamp the board area to the height budget, padding when short.
	targetHeight := b.height - b.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(boardView, "\n") + 1
		if actual > targetHeight {
			viewLines := strings.SplitN(boardView, "\n", targetHeight+1)
			boardView = strings.Join(viewLines[:targetHeight], "\n")
		} else if actual < targetHeight {
			boardView += strings.Repeat("\n", targetHeight-actual)
		}
	}

	statusBar := b.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, boardView, "", statusBar)
}

func (b *Board) columnWidth() int {
	if b.width == 0 || len(b.columns) == 0 {
		return 30 //nolint:mnd // default column width
	}
	w := b.width / len(b.columns)
	const maxColWidth = 75
	if w > maxColWidth {
		w = maxColWidth
	}
	return w
}

func (b *Board) renderColumn(colIdx int, col column, width int) string {
	headerText := fmt.Sprintf("%s (%d)", col.title, col.count)
	if col.pressure > 0 {
		headerText = fmt.Sprintf("%s (%d) p2:%d", col.title, col.count, col.pressure)
	}
	const headerPad = 2
	headerText = truncate(headerText, width-headerPad)

	var header string
	if colIdx == b.activeCol {
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	} else {
		header = columnHeaderStyle.Width(width).Render(headerText)
	}

	maxVis := b.visibleCardsForColumn(&col, width)
	start := col.scrollOff
	end := start + maxVis
	if end > len(col.rows) {
		end = len(col.rows)
	}
	if start > len(col.rows) {
		start = len(col.rows)
	}

	parts := []string{header}

	if start > 0 {
		indicator := fmt.Sprintf("  ↑ %d more", start)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	if len(col.rows) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  (empty)"))
	} else {
		for rowIdx := start; rowIdx < end; rowIdx++ {
			n := col.rows[rowIdx]
			active := colIdx == b.activeCol && rowIdx == b.activeRow
			parts = append(parts, b.renderCard(n, active, width))
		}
	}

	if end < len(col.rows) {
		remaining := len(col.rows) - end
		indicator := fmt.Sprintf("  ↓ %d more", remaining)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *Board) renderCard(n *board.Node, active bool, width int) string {
	contentLines := b.cardContentLines(n, width)
	content := strings.Join(contentLines, "\n")

	style := cardStyle
	if n.Orphan {
		style = orphanCardStyle
	}
	if active {
		style = activeCardStyle
	}

	indent := n.Depth * 2 //nolint:mnd // two spaces per tree level
	cardWidth := width - 2 - indent
	if cardWidth < 8 { //nolint:mnd // minimum usable card width
		cardWidth = 8
		indent = 0
	}

	rendered := style.Width(cardWidth).Render(content)
	if indent == 0 {
		return rendered
	}
	pad := strings.Repeat(" ", indent)
	lines := strings.Split(rendered, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

func (b *Board) cardHeight(n *board.Node, width int) int {
	contentLines := b.cardContentLines(n, width)
	return len(contentLines) + 2 //nolint:mnd // top and bottom borders
}

func (b *Board) cardContentLines(n *board.Node, width int) []string {
	const cardChrome = 4 // border (2) + padding (2)
	cardWidth := width - cardChrome - n.Depth*2
	if cardWidth < 1 {
		cardWidth = 1
	}

	const maxTextLines = 2
	t := n.Task
	res := pressure.Compute(t, b.now())

	var contentLines []string

	// First line: text, with collapse marker and p2 suffix.
	prefix := ""
	if n.Collapsible() && len(n.Children) > 0 {
		prefix = "▸ "
		if b.isExpanded(t.ID) {
			prefix = "▾ "
		}
	} else if n.Orphan {
		prefix = "? "
	}

	suffix := ""
	if res.P2 > 0 {
		suffix = " " + bucketStyles[res.Bucket].Render("p2:"+strconv.Itoa(res.P2))
	}

	text := sanitize.Text(t.Text)
	textWidth := cardWidth - len(prefix) - lipgloss.Width(suffix)
	if textWidth < 1 {
		textWidth = 1
	}
	wrapped := wrapText(text, textWidth, maxTextLines)
	for i, line := range wrapped {
		if i == 0 {
			contentLines = append(contentLines, prefix+line+suffix)
		} else {
			contentLines = append(contentLines, line)
		}
	}

	// Meta line: urgency, due, owner.
	var meta []string
	if res.Bucket != pressure.BucketNone {
		meta = append(meta, bucketStyles[res.Bucket].Render(res.Bucket.Label()))
	}
	if res.DueAt != nil {
		due := "due " + humanDue(*res.DueAt, b.now())
		meta = append(meta, dimStyle.Render(due))
	}
	if t.Owner != "" {
		meta = append(meta, ownerStyle.Render("@"+t.Owner))
	}
	if len(meta) > 0 {
		contentLines = append(contentLines, truncate(strings.Join(meta, " "), cardWidth))
	}

	// Last failed action against this task, shown on the card itself.
	if errStr, ok := b.taskErrs[t.ID]; ok {
		line := truncate("! "+sanitize.Hint(errStr), cardWidth)
		contentLines = append(contentLines, errorStyle.Render(line))
	}

	return contentLines
}

func (b *Board) renderStatusBar() string {
	healthStr := "health:ok"
	if !b.healthKnown {
		healthStr = "health:?"
	} else if !b.healthOK {
		healthStr = degradedStyle.Render("health:degraded")
	}

	loadingStr := ""
	if b.loading {
		loadingStr = " | fetching..."
	}

	status := fmt.Sprintf(" %s | %d tasks%s | r:refresh a:approve x:reject m:move A:archive v:archived t:test g:group q:quit",
		healthStr, b.visibleCount(), loadingStr)
	status = truncate(status, b.width)

	toast := ""
	switch {
	case b.actionErr != "":
		toast = errorStyle.Render(truncate("Error: "+sanitize.Hint(b.actionErr), b.width))
	case b.loadErr != nil:
		toast = errorStyle.Render(truncate("Fetch failed: "+sanitize.Hint(b.loadErr.Error()), b.width))
	case b.healthKnown && !b.healthOK && b.healthHint != "":
		toast = degradedStyle.Render(truncate("Backend degraded: "+b.healthHint, b.width))
	}

	if toast != "" {
		return toast + "\n" + statusBarStyle.Render(status)
	}
	return statusBarStyle.Render(status)
}

func (b *Board) visibleCount() int {
	total := 0
	for _, col := range b.columns {
		total += col.count
	}
	return total
}

func (b *Board) viewDetail() string {
	t := b.selectedTaskByID(b.detailID)
	if t == nil {
		// The task disappeared between render and refresh.
		return dialogStyle.Render("Task no longer on the board.\n\n" + dimStyle.Render("esc:back"))
	}

	res := pressure.Compute(*t, b.now())

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(sanitize.Text(t.Text)))
	sb.WriteString("\n\n")

	field := func(label, value string) {
		sb.WriteString(fmt.Sprintf("  %-10s %s\n", label+":", value))
	}

	field("id", t.ID)
	field("status", task.StatusTitle(t.Status))
	field("priority", priorityDisplay(t))
	field("urgency", bucketStyles[res.Bucket].Render(res.Bucket.Label()))
	field("pressure", strconv.Itoa(res.P2))
	if res.DueAt != nil {
		field("due", res.DueAt.Format("2006-01-02 15:04")+" ("+humanDue(*res.DueAt, b.now())+")")
	}
	if t.Owner != "" {
		field("owner", "@"+t.Owner)
	}
	if t.HasParent() {
		field("parent", t.Parent())
	}
	if t.CreatedAt != "" {
		field("created", t.CreatedAt)
	}
	if t.UpdatedAt != "" {
		field("updated", t.UpdatedAt)
	}
	if t.RejectReason != "" {
		field("reason", sanitize.Text(t.RejectReason))
	}
	if b.store.Has(t.ID) {
		field("archived", "yes")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("A:archive  esc:back"))

	return dialogStyle.Render(sb.String())
}

func (b *Board) viewArchived() string {
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Archived tasks"))
	sb.WriteString("\n\n")

	if len(b.archivedRows) == 0 {
		sb.WriteString(dimStyle.Render("  (none)"))
	}
	for i, t := range b.archivedRows {
		cursor := "  "
		if i == b.archivedRow {
			cursor = "> "
		}
		kind := "auto"
		if b.store.Has(t.ID) {
			kind = "manual"
		}
		line := fmt.Sprintf("%s%s [%s] %s", cursor, shortID(t.ID), kind,
			truncate(sanitize.Text(t.Text), 60)) //nolint:mnd // list text cap
		if i == b.archivedRow {
			sb.WriteString(line)
		} else {
			sb.WriteString(dimStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("u:unarchive  esc:back"))

	return dialogStyle.Render(sb.String())
}

func (b *Board) viewReject() string {
	t := b.selectedTaskByID(b.rejectID)
	text := b.rejectID
	if t != nil {
		text = truncate(sanitize.Text(t.Text), 60) //nolint:mnd // prompt text cap
	}

	content := errorStyle.Render("Reject task?") + "\n\n" +
		"  " + text + "\n\n" +
		"  " + b.rejectInput.View() + "\n\n" +
		dimStyle.Render("enter:reject  esc:cancel")

	return dialogStyle.Render(content)
}

// --- Helpers ---

// wrapText splits text across maxLines lines, word-wrapping at word
// boundaries. Each line is at most maxWidth characters.
func wrapText(text string, maxWidth, maxLines int) []string {
	if maxLines < 1 {
		maxLines = 1
	}
	if lipgloss.Width(text) <= maxWidth || maxLines == 1 {
		return []string{truncate(text, maxWidth)}
	}

	words := strings.Fields(text)
	lines := make([]string, 0, maxLines)
	var current strings.Builder

	for i, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if lipgloss.Width(current.String())+1+lipgloss.Width(word) <= maxWidth {
			current.WriteByte(' ')
			current.WriteString(word)
		} else {
			lines = append(lines, truncate(current.String(), maxWidth))
			current.Reset()
			current.WriteString(word)
			if len(lines) == maxLines-1 {
				// Last line: append all remaining words.
				for _, w := range words[i+1:] {
					current.WriteByte(' ')
					current.WriteString(w)
				}
				break
			}
		}
	}
	if current.Len() > 0 {
		lines = append(lines, truncate(current.String(), maxWidth))
	}
	return lines
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}

func shortID(id string) string {
	const short = 8
	if len(id) <= short {
		return id
	}
	return id[:short]
}

func priorityDisplay(t *task.Task) string {
	if t.Priority == "" {
		return task.PriorityMedium
	}
	return t.Priority
}

// humanDue formats the distance to a due date as a compact label.
// Examples: "in 5m", "in 2h", "in 3d", "1h ago".
func humanDue(due, now time.Time) string {
	d := due.Sub(now)
	if d < 0 {
		return humanDuration(-d) + " ago"
	}
	return "in " + humanDuration(d)
}

// humanDuration formats a duration as a compact human-readable string.
// Examples: "<1m", "5m", "2h", "3d", "2w", "3mo", "1y".
func humanDuration(d time.Duration) string {
	const (
		day   = 24 * time.Hour
		week  = 7 * day
		month = 30 * day
		year  = 365 * day
	)

	switch {
	case d < time.Minute:
		return "<1m"
	case d < time.Hour:
		return strconv.Itoa(int(d.Minutes())) + "m"
	case d < day:
		return strconv.Itoa(int(d.Hours())) + "h"
	case d < week:
		return strconv.Itoa(int(d/day)) + "d"
	case d < month:
		return strconv.Itoa(int(d/week)) + "w"
	case d < year:
		return strconv.Itoa(int(d/month)) + "mo"
	default:
		return strconv.Itoa(int(d/year)) + "y"
	}
}
