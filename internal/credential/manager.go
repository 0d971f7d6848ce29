package credential

import (
	"errors"
	"fmt"

	sperrors "github.com/splogin/splogin/internal/errors"
	"github.com/splogin/splogin/internal/keyring"
	"github.com/splogin/splogin/internal/logging"
)

// Operation names what a rotate did to the store.
type Operation string

const (
	// OpCreated means no previous entry existed.
	OpCreated Operation = "Created"
	// OpUpdated means an existing entry was replaced.
	OpUpdated Operation = "Updated"
	// OpDeleted is used by the command layer when reporting removals.
	OpDeleted Operation = "Deleted"
)

// Labels carry the display-only strings that distinguish the two
// credential variants. They never influence behavior.
type Labels struct {
	ServiceAlias string // "Spotify", "Home Assistant"
	SecretAlias  string // "credentials", "instance"
	SecretType   string // "password", "token"
	UserAlias    string // "user", "instance-url"
}

// Manager binds a service name and its labels to a Store. The Spotify
// and Home Assistant variants are the same type with different label
// tables, not subclasses.
type Manager struct {
	Service string
	Labels  Labels

	store  keyring.Store
	log    *logging.Logger
	prompt Prompter

	loaded *Credential
}

// NewManager builds a manager over the given store. prompt may be nil
// for strictly non-interactive use.
func NewManager(service string, labels Labels, store keyring.Store, log *logging.Logger, prompt Prompter) *Manager {
	return &Manager{
		Service: service,
		Labels:  labels,
		store:   store,
		log:     log,
		prompt:  prompt,
	}
}

// SpotifyUser manages the end-user Spotify account credential.
func SpotifyUser(store keyring.Store, log *logging.Logger, prompt Prompter) *Manager {
	return NewManager("splogin-user", Labels{
		ServiceAlias: "Spotify",
		SecretAlias:  "credentials",
		SecretType:   "password",
		UserAlias:    "user",
	}, store, log, prompt)
}

// HomeAssistantInstance manages the remote-instance credential, whose
// username is the instance URL and whose secret is the API token.
func HomeAssistantInstance(store keyring.Store, log *logging.Logger, prompt Prompter) *Manager {
	return NewManager("splogin-hass", Labels{
		ServiceAlias: "Home Assistant",
		SecretAlias:  "instance",
		SecretType:   "token",
		UserAlias:    "instance-url",
	}, store, log, prompt)
}

// Load fetches the service entry from the store. A missing entry, or
// one without a secret, is a CredentialMissingError, never a
// credential with blank fields.
func (m *Manager) Load() (*Credential, error) {
	username, secret, err := m.store.Get(m.Service)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, sperrors.CredentialMissingError{Service: m.Service, Err: err}
		}
		return nil, fmt.Errorf("reading %s from keyring: %w", m.Service, err)
	}

	m.log.Debug("loaded %s entry for %s", m.Service, username)
	cred := newCredential(m.Service, username, secret)
	m.loaded = cred
	return cred, nil
}

// Rotate replaces the service entry with (username, secret) using
// delete-then-write, which keeps last-write-wins semantics regardless
// of the underlying store's update behavior. An empty secret triggers
// a masked interactive prompt. The returned Operation reports whether
// the delete found a previous entry.
func (m *Manager) Rotate(username, secret string) (*Credential, Operation, error) {
	op := OpUpdated
	if err := m.store.Delete(m.Service, username); err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			return nil, "", fmt.Errorf("removing previous %s entry: %w", m.Service, err)
		}
		op = OpCreated
	} else {
		m.log.Debug("deleted existing %s entry for %s", m.Service, username)
	}

	if secret == "" {
		if m.prompt == nil {
			return nil, "", fmt.Errorf("%s %s required but no prompt available in non-interactive mode", m.Labels.ServiceAlias, m.Labels.SecretType)
		}
		var err error
		secret, err = m.prompt.Secret(m.Labels.SecretType)
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", m.Labels.SecretType, err)
		}
	}

	if err := m.store.Set(m.Service, username, secret); err != nil {
		return nil, "", fmt.Errorf("writing %s to keyring: %w", m.Service, err)
	}

	cred, err := m.Load()
	if err != nil {
		return nil, "", err
	}
	return cred, op, nil
}

// Delete removes the stored entry and returns the username that held
// it. It requires a successful load, so deleting an absent entry
// surfaces as CredentialMissingError.
func (m *Manager) Delete() (string, error) {
	if m.loaded == nil {
		if _, err := m.Load(); err != nil {
			return "", err
		}
	}

	username := m.loaded.Username
	if err := m.store.Delete(m.Service, username); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", sperrors.CredentialMissingError{Service: m.Service, Err: err}
		}
		return "", fmt.Errorf("deleting %s from keyring: %w", m.Service, err)
	}

	m.loaded.Close()
	m.loaded = nil
	return username, nil
}

// PromptUsername asks interactively for the variant's username value
// (Spotify email, instance URL). Used by validate --fix when no value
// was pre-supplied.
func (m *Manager) PromptUsername() (string, error) {
	if m.prompt == nil {
		return "", fmt.Errorf("%s %s required but no prompt available in non-interactive mode", m.Labels.ServiceAlias, m.Labels.UserAlias)
	}
	return m.prompt.Username(m.Labels.UserAlias)
}
