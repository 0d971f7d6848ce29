package spotify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromedp/cdproto/network"
	sperrors "github.com/splogin/splogin/internal/errors"
)

func validConfig() LoginConfig {
	return LoginConfig{
		Page:          "https://accounts.spotify.com/de/login",
		UsernameField: "login-username",
		PasswordField: "login-password",
		SubmitButton:  "login-button",
	}
}

func TestDefaultLoginConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultLoginConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "https://accounts.spotify.com/de/login", cfg.Page)
}

func TestLoginConfigValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*LoginConfig)
		field  string
	}{
		{"missing page", func(c *LoginConfig) { c.Page = "" }, "login-page"},
		{"missing username field", func(c *LoginConfig) { c.UsernameField = "" }, "username-field"},
		{"missing password field", func(c *LoginConfig) { c.PasswordField = "" }, "password-field"},
		{"missing submit button", func(c *LoginConfig) { c.SubmitButton = "" }, "submit-button"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			var invalid sperrors.InvalidLoginConfigError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestExtractSessionAllOrNothing(t *testing.T) {
	t.Parallel()

	full := []*network.Cookie{
		{Name: "sp_dc", Value: "dc-value"},
		{Name: "sp_key", Value: "key-value"},
		{Name: "unrelated", Value: "x"},
	}

	session, err := extractSession(full)
	require.NoError(t, err)
	assert.Equal(t, "dc-value", session.SPDC)
	assert.Equal(t, "key-value", session.SPKey)

	onlyDC := []*network.Cookie{{Name: "sp_dc", Value: "dc-value"}}
	session, err = extractSession(onlyDC)
	assert.Nil(t, session)
	assert.ErrorContains(t, err, "sp_key")

	session, err = extractSession(nil)
	assert.Nil(t, session)
	assert.Error(t, err)
}

func TestEventPayloadUsesCookieNames(t *testing.T) {
	t.Parallel()

	payload := SessionCookies{SPDC: "a", SPKey: "b"}.EventPayload()
	assert.Equal(t, map[string]string{"sp_dc": "a", "sp_key": "b"}, payload)
}

func TestChromeEngineRejectsBadConfigBeforeLaunch(t *testing.T) {
	t.Parallel()

	// A nil credential would panic on any launch attempt; reaching the
	// validation error proves no browser work happened first.
	engine := NewChromeEngine(testLogger(), ChromeConfig{})

	cfg := validConfig()
	cfg.SubmitButton = ""

	_, err := engine.Login(t.Context(), nil, cfg)
	var invalid sperrors.InvalidLoginConfigError
	assert.ErrorAs(t, err, &invalid)
}

func TestChromeEngineDefaults(t *testing.T) {
	t.Parallel()

	engine := NewChromeEngine(testLogger(), ChromeConfig{})
	assert.NotZero(t, engine.cfg.SettleWait)
	assert.NotZero(t, engine.cfg.Timeout)
}
