package secure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferRoundTrip(t *testing.T) {
	buf := NewStringBuffer("sp_dc_secret_value")

	got, err := buf.OpenString()
	require.NoError(t, err)
	assert.Equal(t, "sp_dc_secret_value", got)

	// Openable more than once before destruction.
	again, err := buf.OpenString()
	require.NoError(t, err)
	assert.Equal(t, "sp_dc_secret_value", again)
}

func TestBufferDestroyYieldsEmpty(t *testing.T) {
	buf := NewStringBuffer("token")
	buf.Destroy()

	got, err := buf.OpenString()
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = buf.Open()
	assert.ErrorIs(t, err, ErrDestroyed)

	// Destroy is idempotent.
	buf.Destroy()
}

func TestBufferOpenLockedCopy(t *testing.T) {
	buf := NewBuffer([]byte("pw"))

	locked, err := buf.Open()
	require.NoError(t, err)
	assert.Equal(t, []byte("pw"), locked.Bytes())
	locked.Destroy()
}
