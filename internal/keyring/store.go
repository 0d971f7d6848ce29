// Package keyring adapts the OS secret store to the single
// username+secret-per-service shape splogin works with.
package keyring

import "errors"

// ErrNotFound reports that a service has no stored entry. An entry
// whose secret is empty is treated as not found as well.
var ErrNotFound = errors.New("keyring: entry not found")

// Store persists one username+secret pair per service name.
type Store interface {
	// Get returns the stored username and secret for a service.
	Get(service string) (username, secret string, err error)

	// Set writes the pair for a service, overwriting any previous one.
	Set(service, username, secret string) error

	// Delete removes the entry for (service, username). It returns
	// ErrNotFound when nothing was stored.
	Delete(service, username string) error
}
