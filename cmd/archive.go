package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aximo-works/boardwatch/internal/archive"
	"github.com/aximo-works/boardwatch/internal/board"
	"github.com/aximo-works/boardwatch/internal/output"
	"github.com/aximo-works/boardwatch/internal/task"
)

var archiveCmd = &cobra.Command{
	Use:   "archive ID",
	Short: "Hide a task from the board",
	Long: `Adds a task id to the local archive set. Archiving is client-side only:
the backend record is untouched and other clients still see the task.`,
	Args: cobra.ExactArgs(1),
	RunE: runArchive,
}

var unarchiveCmd = &cobra.Command{
	Use:   "unarchive ID",
	Short: "Restore an archived task to the board",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnarchive,
}

var archivedCmd = &cobra.Command{
	Use:   "archived",
	Short: "List archived tasks",
	Long: `Lists everything hidden from the board: manually archived tasks plus done
tasks that aged out automatically.`,
	RunE: runArchived,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
	rootCmd.AddCommand(archivedCmd)
}

func runArchive(_ *cobra.Command, args []string) error {
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
	if err := store.Archive(t.ID); err != nil {
		return err
	}

	board.LogMutation(cfg.Dir(), "archive", t.ID, "")
	output.Messagef(os.Stdout, "Archived task %s", output.ShortID(t.ID))
	return nil
}

func runUnarchive(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	id := resolveArchivedID(store, args[0])
	if err := store.Unarchive(id); err != nil {
		return err
	}

	board.LogMutation(cfg.Dir(), "unarchive", id, "")
	output.Messagef(os.Stdout, "Unarchived task %s", output.ShortID(id))
	return nil
}

// resolveArchivedID resolves an id argument against the archived set, not
// the backend: the task may no longer exist upstream and must still be
// removable. Unique prefixes resolve; anything else passes through as-is.
func resolveArchivedID(store *archive.Store, id string) string {
	if id == "" || store.Has(id) {
		return id
	}
	var matches []string
	for _, candidate := range store.IDs() {
		if strings.HasPrefix(candidate, id) {
			matches = append(matches, candidate)
		}
	}
	if len(matches) == 1 {
		return matches[0]
	}
	return id
}

func runArchived(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tasks, err := fetchTasks(cfg, newGateway(cfg))
	if err != nil {
		return err
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	now := nowFunc()
	archived := board.ArchivedView(tasks, store, now)

	format := outputFormat()
	if format == output.FormatJSON {
		if archived == nil {
			archived = []task.Task{}
		}
		return output.JSON(os.Stdout, archived)
	}
	if format == output.FormatCompact {
		output.TaskCompact(os.Stdout, archived, now)
		return nil
	}
	output.TaskTable(os.Stdout, archived, now)
	return nil
}
