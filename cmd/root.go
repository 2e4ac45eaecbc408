// Package cmd implements the boardwatch CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aximo-works/boardwatch/internal/archive"
	"github.com/aximo-works/boardwatch/internal/clierr"
	"github.com/aximo-works/boardwatch/internal/config"
	"github.com/aximo-works/boardwatch/internal/gateway"
	"github.com/aximo-works/boardwatch/internal/health"
	"github.com/aximo-works/boardwatch/internal/output"
	"github.com/aximo-works/boardwatch/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagConfig  string
	flagNoColor bool
	flagDebug   bool
)

var logger = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "boardwatch",
	Short: "Terminal client for the aximo task board",
	Long: `boardwatch displays the task board served by an aximo backend as a live
terminal UI, ranks tasks by urgency, and alerts when the backend degrades.
Just run boardwatch to open the TUI.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Best-effort .env loading for tokens and webhook URLs.
		_ = godotenv.Load()

		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		if flagDebug {
			logger.SetLevel(logrus.DebugLevel)
		}

		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError — exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("BOARDWATCH_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// resolveConfigDir returns the config directory: --config flag or the
// per-user default.
func resolveConfigDir() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	return config.DefaultDir()
}

// loadConfig loads the boardwatch config.
func loadConfig() (*config.Config, error) {
	dir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			return nil, clierr.New(clierr.ConfigNotFound,
				"no config found (run 'boardwatch init --backend URL' to create one)")
		}
		return nil, err
	}
	return cfg, nil
}

// newGateway builds the backend client from a config.
func newGateway(cfg *config.Config) *gateway.Client {
	return gateway.New(cfg.Backend.BaseURL, cfg.Token(), cfg.TokenHeader(),
		cfg.BackendTimeout(), logger)
}

// newProbe builds the health probe from a config.
func newProbe(cfg *config.Config) *health.Probe {
	return health.NewProbe(cfg.Backend.BaseURL, cfg.Token(), cfg.TokenHeader(),
		cfg.BackendTimeout(), logger)
}

// newStore opens the archive store backed by the config directory.
func newStore(cfg *config.Config) (*archive.Store, error) {
	return archive.NewStore(archive.NewFile(cfg.Dir()))
}

// fetchTasks lists all tasks from the backend, mapping failures to a
// gateway error code.
func fetchTasks(cfg *config.Config, gw *gateway.Client) ([]task.Task, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.BackendTimeout())
	defer cancel()

	tasks, err := gw.ListTasks(ctx)
	if err != nil {
		return nil, clierr.Newf(clierr.GatewayError, "fetching tasks: %v", err)
	}
	return tasks, nil
}

// findTask resolves an id argument against the fetched task list. Exact
// matches win; otherwise a unique id prefix is accepted.
func findTask(tasks []task.Task, arg string) (task.Task, error) {
	if arg == "" {
		return task.Task{}, clierr.New(clierr.InvalidTaskID, "task id is required")
	}

	for _, t := range tasks {
		if t.ID == arg {
			return t, nil
		}
	}

	var matches []task.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return task.Task{}, clierr.Newf(clierr.TaskNotFound, "no task with id %q", arg)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, 0, len(matches))
		for _, t := range matches {
			ids = append(ids, t.ID)
		}
		return task.Task{}, clierr.Newf(clierr.AmbiguousTaskID,
			"id prefix %q matches %d tasks", arg, len(matches)).
			WithDetails(map[string]any{"matches": ids})
	}
}

// mutationContext returns a request context bounded by the backend timeout.
func mutationContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), cfg.BackendTimeout())
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// nowFunc is the clock used by display commands; swapped in tests.
var nowFunc = time.Now
