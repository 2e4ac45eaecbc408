package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aximo-works/boardwatch/internal/clierr"
	"github.com/aximo-works/boardwatch/internal/config"
	"github.com/aximo-works/boardwatch/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a boardwatch config",
	Long: `Writes a default config file pointing at the given backend. The config
lives in ~/.config/boardwatch unless --config overrides the directory.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("backend", "", "backend base URL (required)")
	_ = initCmd.MarkFlagRequired("backend")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	backend, _ := cmd.Flags().GetString("backend")

	dir, err := resolveConfigDir()
	if err != nil {
		return err
	}

	cfg, err := config.Init(dir, backend)
	if err != nil {
		if errors.Is(err, config.ErrExists) {
			return clierr.Newf(clierr.ConfigExists, "config already exists at %s", dir)
		}
		if errors.Is(err, config.ErrInvalid) {
			return clierr.Newf(clierr.InvalidInput, "%v", err)
		}
		return err
	}

	output.Messagef(os.Stdout, "Created %s", cfg.ConfigPath())
	output.Messagef(os.Stdout, "Set %s to authenticate against the backend.", config.DefaultTokenEnv)
	return nil
}
