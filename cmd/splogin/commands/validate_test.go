package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splogin/splogin/internal/credential"
	sperrors "github.com/splogin/splogin/internal/errors"
)

// stubInstanceCheck keeps validate tests off the network.
func stubInstanceCheck(f *fixture, err error) *int {
	calls := new(int)
	f.deps.CheckInstance = func(context.Context, *credential.Credential) error {
		*calls++
		return err
	}
	return calls
}

func TestValidateAllChecksPass(t *testing.T) {
	f := newFixture()
	f.seedUser(t)
	f.seedHass(t)
	calls := stubInstanceCheck(f, nil)

	out, err := execute(t, NewValidateCommand(f.cfg, f.deps))
	require.NoError(t, err)

	assert.Contains(t, out, "CHECK")
	assert.Contains(t, f.logs(), "3/3 checks passed")
	assert.Equal(t, 1, *calls)
	assert.Zero(t, f.engine.InstallCalls)
}

func TestValidateFailuresStayAdvisory(t *testing.T) {
	f := newFixture()
	stubInstanceCheck(f, nil)
	f.engine.ProbeErr = sperrors.BrowserUnavailableError{}

	out, err := execute(t, NewValidateCommand(f.cfg, f.deps))

	require.NoError(t, err, "validate reports, it never fails the process")
	assert.Contains(t, out, "failed")
	assert.Contains(t, f.logs(), "0/3 checks passed")
	assert.Zero(t, f.store.Writes)
}

func TestValidateFixRepairsMissingCredentials(t *testing.T) {
	f := newFixture()
	stubInstanceCheck(f, nil)

	_, err := execute(t, NewValidateCommand(f.cfg, f.deps),
		"--fix",
		"--username", "user@example.com",
		"--password", "hunter2",
		"--url", "http://hass.local:8123",
		"--token", "tok")
	require.NoError(t, err)

	assert.Contains(t, f.logs(), "3/3 checks passed")
	assert.Equal(t, 2, f.store.Len())

	username, _, err := f.store.Get("splogin-user")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", username)
}

func TestValidateFixInstallsBrowser(t *testing.T) {
	f := newFixture()
	f.seedUser(t)
	f.seedHass(t)
	stubInstanceCheck(f, nil)
	f.engine.ProbeErr = sperrors.BrowserUnavailableError{}

	_, err := execute(t, NewValidateCommand(f.cfg, f.deps), "--fix")
	require.NoError(t, err)
	assert.Equal(t, 1, f.engine.InstallCalls)
}
