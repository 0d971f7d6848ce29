package spotify

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/splogin/splogin/internal/credential"
	sperrors "github.com/splogin/splogin/internal/errors"
	"github.com/splogin/splogin/internal/logging"
)

// chromeCandidates are the binary names Install probes for, most
// specific first.
var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
	"chrome",
}

// ChromeConfig tunes the chromedp engine.
type ChromeConfig struct {
	// ExecPath pins a browser binary; empty lets chromedp discover one.
	ExecPath string

	// SettleWait bounds the post-submit wait for the login round-trip
	// to finish before cookies are read.
	SettleWait time.Duration

	// Timeout bounds one whole login attempt.
	Timeout time.Duration
}

// ChromeEngine automates the login with a headless Chrome via
// chromedp. Every call opens a fresh, ephemeral browser context and
// tears it down again, so no session state survives between logins.
type ChromeEngine struct {
	log *logging.Logger
	cfg ChromeConfig
}

// NewChromeEngine builds the engine with defaults filled in.
func NewChromeEngine(log *logging.Logger, cfg ChromeConfig) *ChromeEngine {
	if cfg.SettleWait == 0 {
		cfg.SettleWait = 5 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 90 * time.Second
	}
	return &ChromeEngine{log: log, cfg: cfg}
}

func (e *ChromeEngine) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(e.cfg.ExecPath))
	}
	return opts
}

// Probe launches a browser against about:blank and closes it again.
// It never touches the login page, so validate can check browser
// availability without attempting a real login.
func (e *ChromeEngine) Probe(ctx context.Context) error {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, e.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	probeCtx, cancelProbe := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancelProbe()

	if err := chromedp.Run(probeCtx, chromedp.Navigate("about:blank")); err != nil {
		return sperrors.BrowserUnavailableError{Err: err}
	}
	return nil
}

// Login navigates to the login page, fills both form fields by DOM id,
// submits, waits for the round-trip to settle, and extracts the
// required session cookies from the ephemeral browser context.
func (e *ChromeEngine) Login(ctx context.Context, cred *credential.Credential, cfg LoginConfig) (*SessionCookies, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	password, err := cred.Secret()
	if err != nil {
		return nil, fmt.Errorf("opening %s secret: %w", cred.ServiceName, err)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, e.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, e.cfg.Timeout)
	defer cancelRun()

	e.log.Debug("filling credentials for %s", cred.Username)

	var cookies []*network.Cookie
	err = chromedp.Run(runCtx,
		network.Enable(),
		chromedp.Navigate(cfg.Page),
		chromedp.WaitVisible("#"+cfg.UsernameField, chromedp.ByQuery),
		chromedp.SendKeys("#"+cfg.UsernameField, cred.Username, chromedp.ByQuery),
		chromedp.SendKeys("#"+cfg.PasswordField, password, chromedp.ByQuery),
		chromedp.Click("#"+cfg.SubmitButton, chromedp.ByQuery),
		// The settle wait is a heuristic for "login round-trip done";
		// cookie presence below is the actual assertion.
		chromedp.Sleep(e.cfg.SettleWait),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = network.GetCookies().Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, sperrors.LoginFailedError{Username: cred.Username, Err: err}
	}

	session, err := extractSession(cookies)
	if err != nil {
		return nil, sperrors.LoginFailedError{Username: cred.Username, Err: err}
	}

	e.log.Debug("extracted cookies sp_dc=%s sp_key=%s",
		logging.Secret(session.SPDC), logging.Secret(session.SPKey))
	return session, nil
}

// Install looks for a usable Chrome or Chromium binary on PATH and
// pins it as the engine's exec path. There is nothing to download
// here; a missing binary is reported with the candidate list so the
// operator knows what to install.
func (e *ChromeEngine) Install(ctx context.Context) error {
	for _, name := range chromeCandidates {
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		e.log.Info("Using browser binary %s", path)
		e.cfg.ExecPath = path
		return nil
	}
	return sperrors.BrowserUnavailableError{
		Err: fmt.Errorf("none of %v found in PATH", chromeCandidates),
	}
}

// extractSession pulls the required named cookies out of the browser
// session. All-or-nothing: one missing name fails the whole set.
func extractSession(cookies []*network.Cookie) (*SessionCookies, error) {
	values := map[string]string{}
	for _, c := range cookies {
		values[c.Name] = c.Value
	}

	for _, name := range []string{CookieSPDC, CookieSPKey} {
		if values[name] == "" {
			return nil, fmt.Errorf("session cookie %q not present after login", name)
		}
	}
	return &SessionCookies{
		SPDC:  values[CookieSPDC],
		SPKey: values[CookieSPKey],
	}, nil
}

var _ Engine = (*ChromeEngine)(nil)
