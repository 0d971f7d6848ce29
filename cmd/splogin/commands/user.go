package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/splogin/splogin/internal/config"
	sperrors "github.com/splogin/splogin/internal/errors"
)

// NewUserCommand manages the stored Spotify account credential.
func NewUserCommand(cfg *config.Config, deps *Deps) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "user [username|rm]",
		Short: "Show, set, or remove the Spotify account credential",
		Long: `Without arguments, reports the currently stored Spotify user. With a
username, stores or replaces the credential; the password comes from
--password or a masked prompt. The literal argument "rm" removes the
stored credential.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cfg.Logger
			mgr := deps.userManager(cfg)

			if len(args) == 0 {
				cred, err := mgr.Load()
				if err != nil {
					var missing sperrors.CredentialMissingError
					if errors.As(err, &missing) {
						log.Warn("No Spotify credentials stored")
						return nil
					}
					logDomainError(log, err)
					return err
				}
				defer cred.Close()
				log.Info("Found Spotify credentials for %s", cred.Username)
				return nil
			}

			if args[0] == rmSentinel {
				username, err := mgr.Delete()
				if err != nil {
					logDomainError(log, err)
					return err
				}
				log.Info("Deleted Spotify credentials for %s", username)
				return nil
			}

			cred, op, err := mgr.Rotate(args[0], password)
			if err != nil {
				logDomainError(log, err)
				return err
			}
			defer cred.Close()
			log.Info("%s Spotify credentials for %s", op, cred.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Spotify password (prompted when omitted)")

	return cmd
}
