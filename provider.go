package authflow

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dpup/authflow/pkce"
)

// AuthStyle selects how client credentials are presented on token requests.
type AuthStyle int

const (
	// AuthStyleBasicHeader sends `Authorization: Basic base64(id:secret)`
	// and keeps the secret out of the request body. Required by providers
	// such as Twitter.
	AuthStyleBasicHeader AuthStyle = iota

	// AuthStyleBodyParams sends client_id and client_secret as form fields
	// and sets no authorization header.
	AuthStyleBodyParams
)

// Default error response field names, overridable per provider.
const (
	defaultErrMessageField = "error_description"
	defaultErrCodeField    = "code"
)

// ProviderConfig is the pluggable, provider-specific half of the engine:
// endpoints, scopes and strategies. Construct one per provider and pass it
// to New. Configs are plain values and are never mutated by the engine.
type ProviderConfig struct {
	// AuthURL is the authorization endpoint the user's browser is sent to.
	AuthURL string

	// TokenURL is the token exchange endpoint.
	TokenURL string

	// ResourceOwnerURL is the provider's "who am I" endpoint.
	ResourceOwnerURL string

	// DefaultScopes are requested when the caller doesn't specify any.
	DefaultScopes []string

	// ScopeSeparator joins scopes in the authorization request. Defaults
	// to a single space.
	ScopeSeparator string

	// PKCEMethod selects plain or S256 challenge derivation. Defaults to
	// S256.
	PKCEMethod pkce.Method

	// ClientID identifies the registered application.
	ClientID string

	// ClientSecret authenticates confidential clients. Never logged.
	ClientSecret string

	// AuthStyle selects where credentials go on token requests.
	AuthStyle AuthStyle

	// ErrorMessageField names the response key holding a human readable
	// error description. Defaults to "error_description".
	ErrorMessageField string

	// ErrorCodeField names the response key holding the provider's error
	// code. Defaults to "code"; the HTTP status is used when absent.
	ErrorCodeField string
}

// Validate reports whether the config can drive a flow. All endpoint URLs
// must be absolute HTTPS URLs and credentials must be present for the
// chosen auth style.
func (c ProviderConfig) Validate() error {
	for name, raw := range map[string]string{
		"auth URL":           c.AuthURL,
		"token URL":          c.TokenURL,
		"resource owner URL": c.ResourceOwnerURL,
	} {
		if raw == "" {
			return fmt.Errorf("%w: missing %s", ErrInvalidConfig, name)
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
		if u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute https URL", ErrInvalidConfig, name)
		}
	}
	if c.ClientID == "" {
		return fmt.Errorf("%w: missing client id", ErrInvalidConfig)
	}
	if c.AuthStyle == AuthStyleBasicHeader && c.ClientSecret == "" {
		return fmt.Errorf("%w: basic header auth requires a client secret", ErrInvalidConfig)
	}
	if m := c.PKCEMethod; m != "" && m != pkce.S256 && m != pkce.Plain {
		return fmt.Errorf("%w: unsupported pkce method %q", ErrInvalidConfig, m)
	}
	return nil
}

func (c ProviderConfig) pkceMethod() pkce.Method {
	if c.PKCEMethod == "" {
		return pkce.S256
	}
	return c.PKCEMethod
}

func (c ProviderConfig) joinScopes(scopes []string) string {
	sep := c.ScopeSeparator
	if sep == "" {
		sep = " "
	}
	return strings.Join(scopes, sep)
}

func (c ProviderConfig) errMessageField() string {
	if c.ErrorMessageField == "" {
		return defaultErrMessageField
	}
	return c.ErrorMessageField
}

func (c ProviderConfig) errCodeField() string {
	if c.ErrorCodeField == "" {
		return defaultErrCodeField
	}
	return c.ErrorCodeField
}
