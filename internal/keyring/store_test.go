package keyring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemStore()

	_, _, err := store.Get("splogin-user")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set("splogin-user", "a@example.com", "pw"))

	username, secret, err := store.Get("splogin-user")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", username)
	assert.Equal(t, "pw", secret)
}

func TestMemStoreEmptySecretIsMissing(t *testing.T) {
	t.Parallel()

	store := NewMemStore()
	require.NoError(t, store.Set("splogin-user", "a@example.com", ""))

	_, _, err := store.Get("splogin-user")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewMemStore()

	assert.ErrorIs(t, store.Delete("splogin-user", "a@example.com"), ErrNotFound)

	require.NoError(t, store.Set("splogin-user", "a@example.com", "pw"))
	assert.ErrorIs(t, store.Delete("splogin-user", "someone-else"), ErrNotFound)
	require.NoError(t, store.Delete("splogin-user", "a@example.com"))

	_, _, err := store.Get("splogin-user")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreServicesAreIndependent(t *testing.T) {
	t.Parallel()

	store := NewMemStore()
	require.NoError(t, store.Set("splogin-user", "a@example.com", "pw"))
	require.NoError(t, store.Set("splogin-hass", "https://hub.local", "tok"))

	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.Delete("splogin-user", "a@example.com"))
	username, secret, err := store.Get("splogin-hass")
	require.NoError(t, err)
	assert.Equal(t, "https://hub.local", username)
	assert.Equal(t, "tok", secret)
}

func TestMemStoreCountsWrites(t *testing.T) {
	t.Parallel()

	store := NewMemStore()
	require.NoError(t, store.Set("a", "u", "s"))
	require.NoError(t, store.Set("a", "u", "s2"))
	_, _, _ = store.Get("a")

	assert.Equal(t, 2, store.Writes)
}
