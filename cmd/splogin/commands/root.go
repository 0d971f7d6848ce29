package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/splogin/splogin/internal/config"
	"github.com/splogin/splogin/internal/logging"
)

// NewRootCommand assembles the CLI. cfg is filled in during
// PersistentPreRunE, after flags and the optional env file have been
// parsed, so subcommand RunE bodies always see a ready logger.
func NewRootCommand(cfg *config.Config, deps *Deps) *cobra.Command {
	var (
		debug   bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "splogin",
		Short: "Republish Spotify session cookies to Home Assistant",
		Long: `splogin logs into the Spotify web player with a headless browser,
extracts the sp_dc and sp_key session cookies, and fires a Home
Assistant event carrying them. Credentials live in the OS keyring.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.EnvFile != "" {
				if err := config.LoadEnvFile(cfg.EnvFile); err != nil {
					return err
				}
			}
			if !debug && os.Getenv(config.EnvPrefix+"LOG_LEVEL") == "DEBUG" {
				debug = true
			}
			if cfg.Logger == nil {
				cfg.Logger = logging.New(debug, noColor)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVar(&cfg.NonInteractive, "non-interactive", false, "never prompt; fail when input would be required")
	cmd.PersistentFlags().StringVar(&cfg.EnvFile, "env-file", "", "dotenv file applied to the environment before running")

	cmd.AddCommand(
		NewRunCommand(cfg, deps),
		NewUserCommand(cfg, deps),
		NewHassCommand(cfg, deps),
		NewValidateCommand(cfg, deps),
	)

	return cmd
}
