package authflow

import (
	"fmt"
	"net/url"

	"github.com/dpup/authflow/pkce"
)

// AuthURLOption customizes a single authorization URL.
type AuthURLOption func(*authURLParams)

type authURLParams struct {
	scopes []string
	extras map[string]string
}

// WithScopes overrides the provider's default scopes for this request.
func WithScopes(scopes ...string) AuthURLOption {
	return func(p *authURLParams) { p.scopes = scopes }
}

// WithParam adds an extra query parameter. Extras only apply when the key
// is not already set, so they can never displace the computed parameters,
// in particular code_challenge and code_challenge_method.
func WithParam(key, value string) AuthURLOption {
	return func(p *authURLParams) {
		if p.extras == nil {
			p.extras = map[string]string{}
		}
		p.extras[key] = value
	}
}

// AuthCodeURL builds the URL the user's browser is sent to. No network IO
// is performed. The state must be session-bound and the challenge's
// verifier retained for Exchange.
func (f *Flow) AuthCodeURL(redirectURI, state string, ch *pkce.Params, opts ...AuthURLOption) (string, error) {
	if redirectURI == "" {
		return "", fmt.Errorf("%w: redirect URI required", ErrInvalidRequest)
	}
	if state == "" {
		return "", fmt.Errorf("%w: state required", ErrInvalidRequest)
	}
	if ch == nil || ch.CodeChallenge == "" {
		return "", fmt.Errorf("%w: pkce challenge required", ErrInvalidRequest)
	}

	var p authURLParams
	for _, opt := range opts {
		opt(&p)
	}
	scopes := p.scopes
	if len(scopes) == 0 {
		scopes = f.config.DefaultScopes
	}

	u, err := url.Parse(f.config.AuthURL)
	if err != nil {
		return "", fmt.Errorf("%w: auth URL: %v", ErrInvalidConfig, err)
	}

	// Start from the endpoint's own query so configured params survive.
	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", f.config.ClientID)
	q.Set("redirect_uri", redirectURI)
	if joined := f.config.joinScopes(scopes); joined != "" {
		q.Set("scope", joined)
	}
	q.Set("state", state)
	q.Set("code_challenge", ch.CodeChallenge)
	q.Set("code_challenge_method", string(ch.Method))

	for k, v := range p.extras {
		if !q.Has(k) {
			q.Set(k, v)
		}
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}
