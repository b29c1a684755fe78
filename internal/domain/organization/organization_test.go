package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganizationUpdate(t *testing.T) {
	o, err := NewOrganization("Unified School District")
	require.NoError(t, err)
	assert.Equal(t, SingletonID, o.ID())

	p := o.Profile()
	changed, err := o.Update(p)
	require.NoError(t, err)
	assert.False(t, changed)

	p.Mail = MailSettings{Server: "smtp.example.org", Port: 587, UseTLS: true, DefaultSender: "IT <it@example.org>"}
	changed, err = o.Update(p)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, o.Mail().Configured())
}

func TestOrganizationUpdateValidation(t *testing.T) {
	o, err := NewOrganization("District")
	require.NoError(t, err)

	tests := []struct {
		name string
		p    Profile
	}{
		{"empty name", Profile{}},
		{"tls and ssl", Profile{Name: "d", Mail: MailSettings{Server: "s", Port: 465, UseTLS: true, UseSSL: true}}},
		{"missing port", Profile{Name: "d", Mail: MailSettings{Server: "s"}}},
		{"bad port", Profile{Name: "d", Mail: MailSettings{Server: "s", Port: 70000}}},
		{"bad sender", Profile{Name: "d", Mail: MailSettings{Server: "s", Port: 25, DefaultSender: "not an address"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := o.Update(tt.p)
			assert.Error(t, err)
		})
	}
}

func TestOrganizationMailPassword(t *testing.T) {
	o, err := NewOrganization("District")
	require.NoError(t, err)
	assert.False(t, o.HasMailPassword())

	o.SetEncryptedMailPassword("ciphertext")
	assert.True(t, o.HasMailPassword())
	assert.Equal(t, "ciphertext", o.EncryptedMailPassword())
}
