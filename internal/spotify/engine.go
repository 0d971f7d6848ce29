package spotify

import (
	"context"

	"github.com/splogin/splogin/internal/credential"
)

// Engine is the browser automation surface the run and validate flows
// depend on. The chromedp implementation lives in ChromeEngine; tests
// substitute a spy.
type Engine interface {
	// Probe checks that a browser can launch at all, without touching
	// any real page. Failure is BrowserUnavailableError.
	Probe(ctx context.Context) error

	// Login performs the automated login and returns the required
	// session cookies. Config errors surface as
	// InvalidLoginConfigError before any launch; everything after
	// launch collapses into LoginFailedError.
	Login(ctx context.Context, cred *credential.Credential, cfg LoginConfig) (*SessionCookies, error)

	// Install attempts to make a browser available for Probe to
	// succeed. Failures are reported, never retried.
	Install(ctx context.Context) error
}
