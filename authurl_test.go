package authflow

import (
	"net/url"
	"testing"

	"github.com/dpup/authflow/pkce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func urlFlow(t *testing.T) *Flow {
	t.Helper()
	f, err := New(Twitter("client-id", "client-secret"))
	require.NoError(t, err)
	return f
}

func TestAuthCodeURL(t *testing.T) {
	f := urlFlow(t)
	ch := &pkce.Params{CodeVerifier: "v", CodeChallenge: "challenge", Method: pkce.S256}

	raw, err := f.AuthCodeURL("https://app.example/callback", "state-123", ch)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "twitter.com", u.Host)

	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "https://app.example/callback", q.Get("redirect_uri"))
	assert.Equal(t, "tweet.read users.read offline.access", q.Get("scope"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "challenge", q.Get("code_challenge"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
}

func TestAuthCodeURL_ExtrasNeverOverridePKCE(t *testing.T) {
	f := urlFlow(t)
	ch := &pkce.Params{CodeVerifier: "v", CodeChallenge: "real", Method: pkce.S256}

	raw, err := f.AuthCodeURL("https://app.example/callback", "s", ch,
		WithParam("code_challenge", "forged"),
		WithParam("code_challenge_method", "plain"),
		WithParam("prompt", "consent"))
	require.NoError(t, err)

	q, err := url.ParseQuery(mustParse(t, raw).RawQuery)
	require.NoError(t, err)

	require.Len(t, q["code_challenge"], 1)
	require.Len(t, q["code_challenge_method"], 1)
	assert.Equal(t, "real", q.Get("code_challenge"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.Equal(t, "consent", q.Get("prompt"))
}

func TestAuthCodeURL_ScopeOverride(t *testing.T) {
	f := urlFlow(t)
	ch := &pkce.Params{CodeVerifier: "v", CodeChallenge: "c", Method: pkce.S256}

	raw, err := f.AuthCodeURL("https://app.example/callback", "s", ch,
		WithScopes("users.read"))
	require.NoError(t, err)
	assert.Equal(t, "users.read", mustParse(t, raw).Query().Get("scope"))
}

func TestAuthCodeURL_CustomSeparator(t *testing.T) {
	cfg := Twitter("client-id", "client-secret")
	cfg.ScopeSeparator = ","
	f, err := New(cfg)
	require.NoError(t, err)

	ch := &pkce.Params{CodeVerifier: "v", CodeChallenge: "c", Method: pkce.S256}
	raw, err := f.AuthCodeURL("https://app.example/callback", "s", ch,
		WithScopes("a", "b", "c"))
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", mustParse(t, raw).Query().Get("scope"))
}

func TestAuthCodeURL_PreservesEndpointQuery(t *testing.T) {
	cfg := Twitter("client-id", "client-secret")
	cfg.AuthURL = "https://provider.example/authorize?audience=api"
	f, err := New(cfg)
	require.NoError(t, err)

	ch := &pkce.Params{CodeVerifier: "v", CodeChallenge: "c", Method: pkce.S256}
	raw, err := f.AuthCodeURL("https://app.example/callback", "s", ch)
	require.NoError(t, err)
	assert.Equal(t, "api", mustParse(t, raw).Query().Get("audience"))
}

func TestAuthCodeURL_MissingArgs(t *testing.T) {
	f := urlFlow(t)
	ch := &pkce.Params{CodeVerifier: "v", CodeChallenge: "c", Method: pkce.S256}

	_, err := f.AuthCodeURL("", "s", ch)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = f.AuthCodeURL("https://app.example/callback", "", ch)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = f.AuthCodeURL("https://app.example/callback", "s", nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}
