package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt1234"))

	blob, err := Seal([]byte("ghp_token_value"), key)
	require.NoError(t, err)
	assert.NotContains(t, string(blob), "ghp_token_value")

	got, err := Open(blob, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("ghp_token_value"), got)
}

func TestOpen_WrongKeyFails(t *testing.T) {
	key := DeriveKey([]byte("passphrase"), []byte("salt1234"))
	other := DeriveKey([]byte("different"), []byte("salt1234"))

	blob, err := Seal([]byte("secret"), key)
	require.NoError(t, err)

	_, err = Open(blob, other)
	require.Error(t, err)
}

func TestOpen_TruncatedBlobFails(t *testing.T) {
	key := DeriveKey([]byte("p"), []byte("s"))

	_, err := Open([]byte{1, 2, 3}, key)
	require.Error(t, err)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	a := DeriveKey([]byte("p"), []byte("s"))
	b := DeriveKey([]byte("p"), []byte("s"))
	c := DeriveKey([]byte("p"), []byte("other"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 32)
}
