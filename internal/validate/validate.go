// Package validate runs the read-only self-checks over the splogin
// setup and, in fix mode, attempts interactive repair of whatever
// failed. Validation is advisory: a failed check is reported, never
// escalated to a process-fatal error.
package validate

import (
	"context"
	"errors"

	"github.com/splogin/splogin/internal/credential"
	sperrors "github.com/splogin/splogin/internal/errors"
	"github.com/splogin/splogin/internal/homeassistant"
	"github.com/splogin/splogin/internal/logging"
	"github.com/splogin/splogin/internal/spotify"
)

// Outcome is the state of one check.
type Outcome int

const (
	Unchecked Outcome = iota
	Passed
	Failed
)

// String renders the outcome for the report table.
func (o Outcome) String() string {
	switch o {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "unchecked"
	}
}

// CheckResult is the outcome of one subsystem check.
type CheckResult struct {
	Name    string
	Outcome Outcome
	Detail  string
}

// Report collects the three check results of one validation run. It is
// produced fresh every run and never cached.
type Report struct {
	User     CheckResult
	Instance CheckResult
	Browser  CheckResult
}

// Results returns the checks in their run order.
func (r *Report) Results() []CheckResult {
	return []CheckResult{r.User, r.Instance, r.Browser}
}

// PassedCount reports how many checks passed.
func (r *Report) PassedCount() int {
	n := 0
	for _, c := range r.Results() {
		if c.Outcome == Passed {
			n++
		}
	}
	return n
}

// FixInput pre-supplies repair values so fix mode can run without a
// terminal. Empty fields fall back to interactive prompts.
type FixInput struct {
	Username    string
	Password    string
	InstanceURL string
	Token       string
}

// Orchestrator runs the checks. All three run unconditionally; a
// failure in one never short-circuits the others.
type Orchestrator struct {
	User     *credential.Manager
	Instance *credential.Manager
	Engine   spotify.Engine
	Log      *logging.Logger

	Fix   bool
	Input FixInput

	// CheckInstance verifies reachability of a loaded remote-instance
	// credential. Overridable for tests; defaults to a Home Assistant
	// connectivity check.
	CheckInstance func(ctx context.Context, cred *credential.Credential) error
}

// New wires an orchestrator over the two managers and the engine.
func New(user, instance *credential.Manager, engine spotify.Engine, log *logging.Logger) *Orchestrator {
	return &Orchestrator{
		User:     user,
		Instance: instance,
		Engine:   engine,
		Log:      log,
		CheckInstance: func(ctx context.Context, cred *credential.Credential) error {
			return homeassistant.NewClient(cred, log).CheckConnectivity(ctx)
		},
	}
}

// Run executes the three checks in order: end-user credential, remote
// instance, browser availability.
func (o *Orchestrator) Run(ctx context.Context) *Report {
	report := &Report{}
	report.User = o.checkUser()
	report.Instance = o.checkInstance(ctx)
	report.Browser = o.checkBrowser(ctx)
	return report
}

func (o *Orchestrator) checkUser() CheckResult {
	result := CheckResult{Name: "Spotify credentials"}

	o.Log.Info("Checking existence of credentials for Spotify Web login")
	cred, err := o.User.Load()
	if err == nil {
		result.Outcome = Passed
		result.Detail = "user " + cred.Username
		o.Log.Info("Using Spotify user %s", cred)
		return result
	}

	result.Outcome = Failed
	result.Detail = err.Error()
	if !o.Fix || !isMissing(err) {
		o.Log.Warn("Spotify user not set")
		return result
	}

	o.Log.Warn("No valid Spotify credentials found. Creating now...")
	username := o.Input.Username
	if username == "" {
		username, err = o.User.PromptUsername()
		if err != nil {
			o.Log.Warn("Cannot read Spotify username: %v", err)
			return result
		}
	}
	cred, op, err := o.User.Rotate(username, o.Input.Password)
	if err != nil {
		o.Log.Warn("Cannot store Spotify credentials: %v", err)
		return result
	}

	o.Log.Info("%s Spotify credentials for %s", op, cred)
	result.Outcome = Passed
	result.Detail = "user " + cred.Username
	return result
}

func (o *Orchestrator) checkInstance(ctx context.Context) CheckResult {
	result := CheckResult{Name: "Home Assistant instance"}

	o.Log.Info("Checking existence and reachability of Home Assistant instance")
	cred, err := o.Instance.Load()
	if err != nil {
		result.Outcome = Failed
		result.Detail = err.Error()
		if !o.Fix || !isMissing(err) {
			o.Log.Warn("No Home Assistant instance configured")
			return result
		}

		o.Log.Warn("No Home Assistant instance found. Creating now...")
		url := o.Input.InstanceURL
		if url == "" {
			url, err = o.Instance.PromptUsername()
			if err != nil {
				o.Log.Warn("Cannot read Home Assistant URL: %v", err)
				return result
			}
		}
		var op credential.Operation
		cred, op, err = o.Instance.Rotate(url, o.Input.Token)
		if err != nil {
			o.Log.Warn("Cannot store Home Assistant instance: %v", err)
			return result
		}
		o.Log.Info("%s Home Assistant instance %s", op, cred)
	}

	// Reachability is checked even right after a repair, but an
	// unreachable instance is not auto-repairable: report only.
	if err := o.CheckInstance(ctx, cred); err != nil {
		o.Log.Warn("Home Assistant instance check failed: %v", err)
		result.Outcome = Failed
		result.Detail = err.Error()
		return result
	}

	o.Log.Info("Using Home Assistant instance %s", cred)
	result.Outcome = Passed
	result.Detail = "instance " + cred.Username
	return result
}

func (o *Orchestrator) checkBrowser(ctx context.Context) CheckResult {
	result := CheckResult{Name: "Browser availability"}

	o.Log.Info("Checking browser availability for Spotify Web login")
	err := o.Engine.Probe(ctx)
	if err == nil {
		o.Log.Info("Browser for login automation is available")
		result.Outcome = Passed
		return result
	}
	result.Outcome = Failed
	result.Detail = err.Error()

	if !o.Fix {
		o.Log.Warn("Found no usable browser for login automation")
		return result
	}

	if err := o.Engine.Install(ctx); err != nil {
		o.Log.Warn("Cannot install browser for login automation: %v", err)
		return result
	}

	if err := o.Engine.Probe(ctx); err != nil {
		o.Log.Warn("Browser still unavailable after install: %v", err)
		result.Detail = err.Error()
		return result
	}

	o.Log.Info("Browser for login automation is available")
	result.Outcome = Passed
	result.Detail = ""
	return result
}

func isMissing(err error) bool {
	var missing sperrors.CredentialMissingError
	return errors.As(err, &missing)
}
