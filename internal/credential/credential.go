// Package credential holds the in-memory pairing of a service name
// with its loaded username and secret, and the lifecycle operations
// (load, rotate, delete) over the OS secret store.
package credential

import "github.com/splogin/splogin/internal/secure"

// Credential is a successfully loaded secret store entry. It is only
// ever constructed when both a username and a non-empty secret exist
// for the service; the secret is sealed in protected memory.
type Credential struct {
	ServiceName string
	Username    string

	secret *secure.Buffer
}

func newCredential(service, username, secret string) *Credential {
	return &Credential{
		ServiceName: service,
		Username:    username,
		secret:      secure.NewStringBuffer(secret),
	}
}

// Secret opens the sealed secret and returns a plain copy for
// point-of-use consumption (form fill, Authorization header). The
// value must never be logged.
func (c *Credential) Secret() (string, error) {
	return c.secret.OpenString()
}

// Close wipes the in-memory secret. The stored entry is untouched.
func (c *Credential) Close() {
	c.secret.Destroy()
}

// String renders the credential as its stored username, which doubles
// as the instance URL for the Home Assistant variant.
func (c *Credential) String() string {
	return c.Username
}
