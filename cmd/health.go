package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/aximo-works/boardwatch/internal/clierr"
	"github.com/aximo-works/boardwatch/internal/output"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend health",
	Long: `Performs one end-to-end health check against the backend and prints the
result. Exits non-zero when the backend is degraded, for use in scripts.`,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BackendTimeout())
	defer cancel()

	report := newProbe(cfg).Check(ctx)

	if err := output.JSON(os.Stdout, report); err != nil {
		return err
	}
	if !report.OK {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
