package commands

import (
	"github.com/spf13/cobra"

	"github.com/splogin/splogin/internal/config"
	"github.com/splogin/splogin/internal/spotify"
)

// DefaultEventName is the Home Assistant event fired after a
// successful cookie extraction.
const DefaultEventName = "splogin_cookies_updated"

// NewRunCommand builds the default workflow: log into Spotify with a
// headless browser and republish the session cookies to Home
// Assistant.
func NewRunCommand(cfg *config.Config, deps *Deps) *cobra.Command {
	var (
		loginCfg = spotify.DefaultLoginConfig()
		event    = DefaultEventName
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Log into Spotify and publish the session cookies",
		Long: `Loads both stored credentials, performs the Spotify web login in a
headless browser, extracts the sp_dc and sp_key session cookies, and
fires a Home Assistant event carrying them.

Each tunable falls back to its SPLOGIN_-prefixed environment variable
when the flag is not set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cfg.Logger

			loginCfg.Page = resolve(cmd, "login-page", "SPOTIFY_LOGIN_PAGE", loginCfg.Page)
			loginCfg.UsernameField = resolve(cmd, "username-field", "SPOTIFY_USERNAME_FIELD", loginCfg.UsernameField)
			loginCfg.PasswordField = resolve(cmd, "password-field", "SPOTIFY_PASSWORD_FIELD", loginCfg.PasswordField)
			loginCfg.SubmitButton = resolve(cmd, "submit-button", "SPOTIFY_LOGIN_BUTTON", loginCfg.SubmitButton)
			event = resolve(cmd, "event", "EVENT_NAME", event)

			if err := loginCfg.Validate(); err != nil {
				logDomainError(log, err)
				return err
			}

			userCred, err := deps.userManager(cfg).Load()
			if err != nil {
				logDomainError(log, err)
				return err
			}
			defer userCred.Close()

			hassCred, err := deps.hassManager(cfg).Load()
			if err != nil {
				logDomainError(log, err)
				return err
			}
			defer hassCred.Close()

			hass := deps.publisher(hassCred, log)
			if err := hass.CheckConnectivity(cmd.Context()); err != nil {
				logDomainError(log, err)
				return err
			}

			cookies, err := deps.engine(log).Login(cmd.Context(), userCred, loginCfg)
			if err != nil {
				logDomainError(log, err)
				return err
			}
			log.Info("Logged into Spotify as %s", userCred.Username)

			if err := hass.PublishEvent(cmd.Context(), event, cookies.EventPayload()); err != nil {
				logDomainError(log, err)
				return err
			}
			log.Info("Fired %s on %s", event, hassCred.Username)

			return nil
		},
	}

	cmd.Flags().StringVar(&loginCfg.Page, "login-page", loginCfg.Page, "Spotify login page URL")
	cmd.Flags().StringVar(&loginCfg.UsernameField, "username-field", loginCfg.UsernameField, "DOM id of the username input")
	cmd.Flags().StringVar(&loginCfg.PasswordField, "password-field", loginCfg.PasswordField, "DOM id of the password input")
	cmd.Flags().StringVar(&loginCfg.SubmitButton, "submit-button", loginCfg.SubmitButton, "DOM id of the submit control")
	cmd.Flags().StringVar(&event, "event", event, "Home Assistant event name to fire")

	return cmd
}
