package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/splogin/splogin/internal/config"
	"github.com/splogin/splogin/internal/credential"
	sperrors "github.com/splogin/splogin/internal/errors"
)

// NewHassCommand manages the stored Home Assistant instance
// credential. The instance URL plays the username role; the long-lived
// API token is the secret.
func NewHassCommand(cfg *config.Config, deps *Deps) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "hass [instance-url|rm]",
		Short: "Show, set, or remove the Home Assistant instance credential",
		Long: `Without arguments, reports the currently stored Home Assistant
instance and probes its API. With an instance URL, stores or replaces
the credential; the token comes from --token, SPLOGIN_HASS_TOKEN, or a
masked prompt. The literal argument "rm" removes the stored
credential.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cfg.Logger
			mgr := deps.hassManager(cfg)

			probe := func(cred *credential.Credential) {
				if err := deps.publisher(cred, log).CheckConnectivity(cmd.Context()); err != nil {
					log.Warn("Instance API check failed: %v", err)
					return
				}
				log.Info("Instance API is reachable")
			}

			if len(args) == 1 && args[0] == rmSentinel {
				url, err := mgr.Delete()
				if err != nil {
					logDomainError(log, err)
					return err
				}
				log.Info("Deleted Home Assistant instance %s", url)
				return nil
			}

			if len(args) == 1 {
				token = resolve(cmd, "token", "HASS_TOKEN", token)
				cred, op, err := mgr.Rotate(args[0], token)
				if err != nil {
					logDomainError(log, err)
					return err
				}
				defer cred.Close()
				log.Info("%s Home Assistant instance %s", op, cred.Username)
				probe(cred)
				return nil
			}

			cred, err := mgr.Load()
			if err != nil {
				var missing sperrors.CredentialMissingError
				if errors.As(err, &missing) {
					log.Warn("No Home Assistant instance stored")
					return nil
				}
				logDomainError(log, err)
				return err
			}
			defer cred.Close()
			log.Info("Found Home Assistant instance %s", cred.Username)
			probe(cred)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Home Assistant long-lived access token (prompted when omitted)")

	return cmd
}
