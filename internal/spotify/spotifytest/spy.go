// Package spotifytest provides a spy Engine for tests of the run and
// validate flows.
package spotifytest

import (
	"context"

	"github.com/splogin/splogin/internal/credential"
	"github.com/splogin/splogin/internal/spotify"
)

// SpyEngine records calls and returns scripted results. The zero value
// succeeds everywhere and returns empty cookies from Login.
type SpyEngine struct {
	ProbeErr   error
	LoginErr   error
	InstallErr error
	Cookies    *spotify.SessionCookies

	ProbeCalls   int
	LoginCalls   int
	InstallCalls int
	LastConfig   spotify.LoginConfig
}

// Probe implements spotify.Engine.
func (s *SpyEngine) Probe(context.Context) error {
	s.ProbeCalls++
	return s.ProbeErr
}

// Login implements spotify.Engine. It applies the same fail-fast
// config validation as the real engine, so precondition tests can
// assert zero launch calls.
func (s *SpyEngine) Login(_ context.Context, _ *credential.Credential, cfg spotify.LoginConfig) (*spotify.SessionCookies, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s.LoginCalls++
	s.LastConfig = cfg
	if s.LoginErr != nil {
		return nil, s.LoginErr
	}
	if s.Cookies != nil {
		return s.Cookies, nil
	}
	return &spotify.SessionCookies{}, nil
}

// Install implements spotify.Engine.
func (s *SpyEngine) Install(context.Context) error {
	s.InstallCalls++
	return s.InstallErr
}

var _ spotify.Engine = (*SpyEngine)(nil)
