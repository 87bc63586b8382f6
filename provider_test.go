package authflow

import (
	"testing"

	"github.com/dpup/authflow/pkce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderConfig_Validate(t *testing.T) {
	valid := func() ProviderConfig {
		return Twitter("client-id", "client-secret")
	}

	tests := []struct {
		name    string
		mutate  func(*ProviderConfig)
		wantErr bool
	}{
		{"valid", func(c *ProviderConfig) {}, false},
		{"missing auth url", func(c *ProviderConfig) { c.AuthURL = "" }, true},
		{"missing token url", func(c *ProviderConfig) { c.TokenURL = "" }, true},
		{"missing resource owner url", func(c *ProviderConfig) { c.ResourceOwnerURL = "" }, true},
		{"non-https token url", func(c *ProviderConfig) { c.TokenURL = "http://api.twitter.com/2/oauth2/token" }, true},
		{"relative url", func(c *ProviderConfig) { c.AuthURL = "/authorize" }, true},
		{"missing client id", func(c *ProviderConfig) { c.ClientID = "" }, true},
		{"basic auth without secret", func(c *ProviderConfig) { c.ClientSecret = "" }, true},
		{"body auth without secret is a public client", func(c *ProviderConfig) {
			c.ClientSecret = ""
			c.AuthStyle = AuthStyleBodyParams
		}, false},
		{"bad pkce method", func(c *ProviderConfig) { c.PKCEMethod = "S512" }, true},
		{"plain pkce method", func(c *ProviderConfig) { c.PKCEMethod = pkce.Plain }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTwitterPreset(t *testing.T) {
	cfg := Twitter("id", "secret")

	assert.Equal(t, "https://twitter.com/i/oauth2/authorize", cfg.AuthURL)
	assert.Equal(t, "https://api.twitter.com/2/oauth2/token", cfg.TokenURL)
	assert.Equal(t, []string{"tweet.read", "users.read", "offline.access"}, cfg.DefaultScopes)
	assert.Equal(t, " ", cfg.ScopeSeparator)
	assert.Equal(t, pkce.S256, cfg.PKCEMethod)
	assert.Equal(t, AuthStyleBasicHeader, cfg.AuthStyle)
	assert.NoError(t, cfg.Validate())
}

func TestJoinScopes(t *testing.T) {
	cfg := ProviderConfig{}
	assert.Equal(t, "a b c", cfg.joinScopes([]string{"a", "b", "c"}))

	cfg.ScopeSeparator = ","
	assert.Equal(t, "a,b", cfg.joinScopes([]string{"a", "b"}))
	assert.Equal(t, "", cfg.joinScopes(nil))
}

func TestNew_VerifierLengthValidation(t *testing.T) {
	cfg := Twitter("id", "secret")

	_, err := New(cfg, WithVerifierLength(10))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	f, err := New(cfg, WithVerifierLength(pkce.MaxVerifierLength))
	require.NoError(t, err)

	ch, err := f.NewChallenge()
	require.NoError(t, err)
	assert.Len(t, ch.CodeVerifier, pkce.MaxVerifierLength)
	assert.Equal(t, pkce.S256, ch.Method)
}

func TestNewState(t *testing.T) {
	a := NewState()
	b := NewState()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
