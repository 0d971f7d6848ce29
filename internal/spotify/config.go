// Package spotify drives a headless browser through the Spotify web
// login form and extracts the session cookies Home Assistant needs.
package spotify

import sperrors "github.com/splogin/splogin/internal/errors"

// Cookie names required from the login session. Missing either one is
// a total extraction failure.
const (
	CookieSPDC  = "sp_dc"
	CookieSPKey = "sp_key"
)

// Defaults matching the Spotify accounts login form as last observed.
// Every value can be overridden per run, since Spotify changes the
// markup without notice.
const (
	DefaultLoginPage     = "https://accounts.spotify.com/de/login"
	DefaultUsernameField = "login-username"
	DefaultPasswordField = "login-password"
	DefaultSubmitButton  = "login-button"
)

// DefaultLoginConfig returns a LoginConfig populated with the built-in
// form defaults.
func DefaultLoginConfig() LoginConfig {
	return LoginConfig{
		Page:          DefaultLoginPage,
		UsernameField: DefaultUsernameField,
		PasswordField: DefaultPasswordField,
		SubmitButton:  DefaultSubmitButton,
	}
}

// LoginConfig locates the login form on the page. The element ids are
// caller-supplied and brittle, which is why Validate runs before any
// browser is launched.
type LoginConfig struct {
	Page          string // login page URL
	UsernameField string // DOM id of the username input
	PasswordField string // DOM id of the password input
	SubmitButton  string // DOM id of the submit control
}

// Validate reports the first missing field as InvalidLoginConfigError.
func (c LoginConfig) Validate() error {
	checks := []struct {
		name  string
		value string
	}{
		{"login-page", c.Page},
		{"username-field", c.UsernameField},
		{"password-field", c.PasswordField},
		{"submit-button", c.SubmitButton},
	}
	for _, check := range checks {
		if check.value == "" {
			return sperrors.InvalidLoginConfigError{Field: check.name}
		}
	}
	return nil
}

// SessionCookies is the fixed, named cookie set extracted after a
// successful login. No partial sets are ever produced.
type SessionCookies struct {
	SPDC  string
	SPKey string
}

// EventPayload renders the cookies as the Home Assistant event body.
func (s SessionCookies) EventPayload() map[string]string {
	return map[string]string{
		CookieSPDC:  s.SPDC,
		CookieSPKey: s.SPKey,
	}
}
