// Package errors defines the typed failures the splogin workflow can
// surface. Each component raises the most specific kind it can
// determine; the command layer matches them with errors.As and logs a
// single user-facing message plus a debug-level cause.
package errors

import (
	"errors"
	"fmt"
)

// CredentialMissingError reports that the secret store holds no usable
// entry for a service. An entry without a secret counts as missing,
// never as a credential with a blank password.
type CredentialMissingError struct {
	Service string
	Err     error
}

func (e CredentialMissingError) Error() string {
	return fmt.Sprintf("%s: no credentials found", e.Service)
}

func (e CredentialMissingError) Unwrap() error {
	return e.Err
}

// InvalidLoginConfigError reports an incomplete login automation
// configuration. It is raised before any browser is launched.
type InvalidLoginConfigError struct {
	Field string
}

func (e InvalidLoginConfigError) Error() string {
	return fmt.Sprintf("login configuration is missing %q", e.Field)
}

// BrowserUnavailableError reports that the automation engine cannot
// launch a browser at all.
type BrowserUnavailableError struct {
	Err error
}

func (e BrowserUnavailableError) Error() string {
	return "no usable browser for login automation"
}

func (e BrowserUnavailableError) Unwrap() error {
	return e.Err
}

// LoginFailedError collapses every failure of a started login attempt
// (navigation, fill, click, cookie extraction) into one opaque outcome
// carrying the underlying cause.
type LoginFailedError struct {
	Username string
	Err      error
}

func (e LoginFailedError) Error() string {
	return fmt.Sprintf("unable to log into Spotify as %s", e.Username)
}

func (e LoginFailedError) Unwrap() error {
	return e.Err
}

// RemoteAPIError reports a connectivity or event-publish failure
// against the Home Assistant API. Unreachable distinguishes
// connection-level failures from HTTP-status failures; callers may log
// the detail but should not branch on it.
type RemoteAPIError struct {
	URL         string
	StatusCode  int
	Unreachable bool
	Err         error
}

func (e RemoteAPIError) Error() string {
	if e.Unreachable {
		return fmt.Sprintf("Home Assistant %q is unreachable", e.URL)
	}
	return fmt.Sprintf("Home Assistant API returned %d", e.StatusCode)
}

func (e RemoteAPIError) Unwrap() error {
	return e.Err
}

// IsDomain reports whether err belongs to the splogin failure
// taxonomy. The run workflow catches this union; anything else is
// handled only at the outermost boundary.
func IsDomain(err error) bool {
	var (
		credMissing CredentialMissingError
		badConfig   InvalidLoginConfigError
		noBrowser   BrowserUnavailableError
		loginFailed LoginFailedError
		remoteAPI   RemoteAPIError
	)
	return errors.As(err, &credMissing) ||
		errors.As(err, &badConfig) ||
		errors.As(err, &noBrowser) ||
		errors.As(err, &loginFailed) ||
		errors.As(err, &remoteAPI)
}
