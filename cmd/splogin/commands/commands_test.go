package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/splogin/splogin/internal/config"
	"github.com/splogin/splogin/internal/credential"
	"github.com/splogin/splogin/internal/keyring"
	"github.com/splogin/splogin/internal/logging"
	"github.com/splogin/splogin/internal/spotify"
	"github.com/splogin/splogin/internal/spotify/spotifytest"
)

type publishedEvent struct {
	Name    string
	Payload any
}

// hubSpy stands in for the Home Assistant client.
type hubSpy struct {
	ConnectivityErr error
	PublishErr      error

	ConnectivityCalls int
	Events            []publishedEvent
}

func (h *hubSpy) CheckConnectivity(context.Context) error {
	h.ConnectivityCalls++
	return h.ConnectivityErr
}

func (h *hubSpy) PublishEvent(_ context.Context, name string, payload any) error {
	if h.PublishErr != nil {
		return h.PublishErr
	}
	h.Events = append(h.Events, publishedEvent{Name: name, Payload: payload})
	return nil
}

type fixture struct {
	cfg    *config.Config
	deps   *Deps
	store  *keyring.MemStore
	engine *spotifytest.SpyEngine
	hub    *hubSpy
	prompt *credential.StaticPrompter
	logBuf *bytes.Buffer
}

func newFixture() *fixture {
	f := &fixture{
		store: keyring.NewMemStore(),
		engine: &spotifytest.SpyEngine{
			Cookies: &spotify.SessionCookies{SPDC: "dc-value", SPKey: "key-value"},
		},
		hub: &hubSpy{},
		prompt: &credential.StaticPrompter{
			UsernameValue: "prompted-user",
			SecretValue:   "prompted-secret",
		},
		logBuf: &bytes.Buffer{},
	}
	f.cfg = &config.Config{Logger: logging.NewWithWriter(true, true, f.logBuf)}
	f.deps = &Deps{
		Store:  f.store,
		Prompt: f.prompt,
		Engine: f.engine,
		Publish: func(*credential.Credential, *logging.Logger) Publisher {
			return f.hub
		},
	}
	return f
}

func (f *fixture) seedUser(t *testing.T) {
	t.Helper()
	if err := f.store.Set("splogin-user", "user@example.com", "sp-password"); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) seedHass(t *testing.T) {
	t.Helper()
	if err := f.store.Set("splogin-hass", "http://hass.local:8123", "ha-token"); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) logs() string {
	return f.logBuf.String()
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}
