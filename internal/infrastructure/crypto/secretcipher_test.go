package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretCipher_RoundTrip(t *testing.T) {
	c, err := NewSecretCipher("app-secret")
	require.NoError(t, err)

	enc, err := c.Encrypt("smtp-password")
	require.NoError(t, err)
	assert.NotContains(t, enc, "smtp-password")

	again, err := c.Encrypt("smtp-password")
	require.NoError(t, err)
	assert.NotEqual(t, enc, again, "nonce is random")

	plain, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "smtp-password", plain)
}

func TestSecretCipher_Rejects(t *testing.T) {
	c, err := NewSecretCipher("app-secret")
	require.NoError(t, err)
	other, err := NewSecretCipher("other-secret")
	require.NoError(t, err)

	enc, err := c.Encrypt("pw")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{"wrong key", ""},
		{"not base64", "%%%"},
		{"too short", "AQ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "wrong key" {
				_, err := other.Decrypt(enc)
				assert.ErrorIs(t, err, ErrInvalidCiphertext)
				return
			}
			_, err := c.Decrypt(tt.input)
			assert.ErrorIs(t, err, ErrInvalidCiphertext)
		})
	}

	_, err = NewSecretCipher("")
	assert.Error(t, err)
}
