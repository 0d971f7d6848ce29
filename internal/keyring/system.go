package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// indexAccount is the account name under which the current username of
// a service is recorded. The OS keyring is keyed by (service, account)
// and offers no "any account" lookup, so the adapter keeps this index
// entry alongside the secret itself.
const indexAccount = "splogin-current-user"

// SystemStore is the OS keyring (Keychain, Secret Service, Credential
// Manager) behind the Store interface.
type SystemStore struct{}

// NewSystemStore returns the process-wide OS keyring adapter.
func NewSystemStore() *SystemStore {
	return &SystemStore{}
}

// Get looks up the service's current username via the index entry and
// then its secret. Either entry missing, or an empty secret, reports
// ErrNotFound.
func (s *SystemStore) Get(service string) (string, string, error) {
	username, err := keyring.Get(service, indexAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", "", ErrNotFound
		}
		return "", "", err
	}

	secret, err := keyring.Get(service, username)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", "", ErrNotFound
		}
		return "", "", err
	}
	if secret == "" {
		return "", "", ErrNotFound
	}
	return username, secret, nil
}

// Set writes the secret under (service, username) and updates the
// index entry so Get can find the pair without a username hint.
func (s *SystemStore) Set(service, username, secret string) error {
	if err := keyring.Set(service, username, secret); err != nil {
		return err
	}
	return keyring.Set(service, indexAccount, username)
}

// Delete removes the secret and the index entry for a service.
func (s *SystemStore) Delete(service, username string) error {
	err := keyring.Delete(service, username)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	// The index entry may point at a different username after a manual
	// edit; its absence is not an error here.
	if err := keyring.Delete(service, indexAccount); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

var _ Store = (*SystemStore)(nil)
