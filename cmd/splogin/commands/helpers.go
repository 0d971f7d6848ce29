package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/splogin/splogin/internal/config"
	"github.com/splogin/splogin/internal/credential"
	"github.com/splogin/splogin/internal/homeassistant"
	"github.com/splogin/splogin/internal/keyring"
	"github.com/splogin/splogin/internal/logging"
	"github.com/splogin/splogin/internal/spotify"
)

// rmSentinel is the positional argument that turns a credential
// subcommand into a delete.
const rmSentinel = "rm"

// Publisher is the Home Assistant surface the run and hass commands
// depend on; homeassistant.Client implements it.
type Publisher interface {
	CheckConnectivity(ctx context.Context) error
	PublishEvent(ctx context.Context, event string, payload any) error
}

// Deps carries the external collaborators so tests can substitute
// fakes. Zero fields fall back to the real implementations.
type Deps struct {
	Store   keyring.Store
	Prompt  credential.Prompter
	Engine  spotify.Engine
	Publish func(cred *credential.Credential, log *logging.Logger) Publisher

	// CheckInstance overrides the validate command's instance probe.
	CheckInstance func(ctx context.Context, cred *credential.Credential) error
}

func (d *Deps) store() keyring.Store {
	if d.Store == nil {
		d.Store = keyring.NewSystemStore()
	}
	return d.Store
}

func (d *Deps) prompter(cfg *config.Config) credential.Prompter {
	if cfg.NonInteractive {
		return nil
	}
	if d.Prompt == nil {
		d.Prompt = credential.NewTerminalPrompter()
	}
	return d.Prompt
}

func (d *Deps) engine(log *logging.Logger) spotify.Engine {
	if d.Engine == nil {
		d.Engine = spotify.NewChromeEngine(log, spotify.ChromeConfig{})
	}
	return d.Engine
}

func (d *Deps) publisher(cred *credential.Credential, log *logging.Logger) Publisher {
	if d.Publish == nil {
		return homeassistant.NewClient(cred, log)
	}
	return d.Publish(cred, log)
}

func (d *Deps) userManager(cfg *config.Config) *credential.Manager {
	return credential.SpotifyUser(d.store(), cfg.Logger, d.prompter(cfg))
}

func (d *Deps) hassManager(cfg *config.Config) *credential.Manager {
	return credential.HomeAssistantInstance(d.store(), cfg.Logger, d.prompter(cfg))
}

// resolve applies the flag > SPLOGIN_<envKey> env var > default
// precedence for a tunable. current is the parsed flag value, which
// already equals the default when the flag was not set.
func resolve(cmd *cobra.Command, flag, envKey, current string) string {
	if cmd.Flags().Changed(flag) {
		return current
	}
	return config.FromEnv(envKey, current)
}

// logDomainError reports a domain failure the way the workflow wants
// it surfaced: one user-facing message at error level, the cause at
// debug level only.
func logDomainError(log *logging.Logger, err error) {
	log.Error("%v", err)
	if cause := unwrapCause(err); cause != nil {
		log.Debug("cause: %v", cause)
	}
}

func unwrapCause(err error) error {
	type unwrapper interface{ Unwrap() error }
	if u, ok := err.(unwrapper); ok {
		return u.Unwrap()
	}
	return nil
}
