package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	email, err := NewEmail("  Jane.Doe@District.org ")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@district.org", email.String())

	_, err = NewEmail("not-an-email")
	assert.Error(t, err)

	_, err = NewEmail("   ")
	assert.Error(t, err)
}

func TestDefaultPasswordPolicy(t *testing.T) {
	policy := DefaultPasswordPolicy()

	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Str0ng&Secure!", ""},
		{"too short", "Sh0rt!a", "at least 12 characters"},
		{"no uppercase", "lowercase1234!", "uppercase"},
		{"no lowercase", "UPPERCASE1234!", "lowercase"},
		{"no digit", "NoDigitsHere!!", "number"},
		{"special outside allowed set", "NoSpecial1234_", "special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseUserStatus(t *testing.T) {
	s, err := ParseUserStatus("")
	require.NoError(t, err)
	assert.Equal(t, UserStatusActive, s)

	s, err = ParseUserStatus("INACTIVE")
	require.NoError(t, err)
	assert.False(t, s.IsActive())

	_, err = ParseUserStatus("suspended")
	assert.Error(t, err)
}
