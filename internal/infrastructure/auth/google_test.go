package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newTestGoogleClient(t *testing.T, verified bool) *GoogleOAuthClient {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code_verifier") != "the-verifier" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "at", "token_type": "Bearer", "expires_in": 3600})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"email": "pat@school.org", "verified_email": verified})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewGoogleOAuthClient(GoogleOAuthConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"})
	c.config.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token", AuthStyle: oauth2.AuthStyleInParams}
	c.userInfoURL = srv.URL + "/userinfo"
	return c
}

func TestGoogleOAuthClient_AuthURLCarriesPKCE(t *testing.T) {
	c := newTestGoogleClient(t, true)

	raw, verifier, err := c.AuthURL("state-1")
	require.NoError(t, err)
	require.NotEmpty(t, verifier)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.NotEmpty(t, q.Get("code_challenge"))
	assert.NotEqual(t, verifier, q.Get("code_challenge"))
}

func TestGoogleOAuthClient_Email(t *testing.T) {
	email, err := newTestGoogleClient(t, true).Email(context.Background(), "code", "the-verifier")
	require.NoError(t, err)
	assert.Equal(t, "pat@school.org", email)

	_, err = newTestGoogleClient(t, true).Email(context.Background(), "code", "wrong-verifier")
	assert.Error(t, err)

	_, err = newTestGoogleClient(t, false).Email(context.Background(), "code", "the-verifier")
	assert.Error(t, err, "unverified addresses are rejected")
}
