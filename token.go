package authflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Tokens are treated as expired slightly early to absorb clock skew and
// request latency.
const expiryLeeway = 10 * time.Second

// Token is the immutable result of a successful token exchange.
type Token struct {
	// AccessToken authorizes requests to the provider's APIs.
	AccessToken string

	// RefreshToken renews the grant, when the provider issued one.
	RefreshToken string

	// Expiry is when the access token lapses. Zero when the provider did
	// not report a lifetime.
	Expiry time.Time

	// Raw is the full decoded token response, including any
	// provider-specific extras.
	Raw map[string]any
}

// Valid reports whether the token exists and has not expired.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return t.Expiry.IsZero() || time.Until(t.Expiry) > expiryLeeway
}

// Extra returns a provider-specific field from the token response.
func (t *Token) Extra(key string) any {
	if t == nil || t.Raw == nil {
		return nil
	}
	return t.Raw[key]
}

// OAuth2Token converts to the golang.org/x/oauth2 representation so the
// token can be used with any client built on that package. Extras are
// preserved and reachable via (*oauth2.Token).Extra.
func (t *Token) OAuth2Token() *oauth2.Token {
	ot := &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry,
		TokenType:    "Bearer",
	}
	if tt, ok := t.Raw["token_type"].(string); ok && tt != "" {
		ot.TokenType = tt
	}
	if t.Raw != nil {
		ot = ot.WithExtra(t.Raw)
	}
	return ot
}

// IDTokenClaims decodes the claims of an id_token carried in the token
// response, for providers that issue one. The signature is NOT verified;
// callers that rely on the claims must verify against the provider's keys.
func (t *Token) IDTokenClaims() (jwt.MapClaims, error) {
	raw, _ := t.Extra("id_token").(string)
	if raw == "" {
		return nil, fmt.Errorf("%w: no id_token in token response", ErrMalformedResponse)
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: id_token: %v", ErrMalformedResponse, err)
	}
	return claims, nil
}

// TokenSource adapts the flow's refresh grant to oauth2.TokenSource. The
// returned source refreshes through Flow.Refresh when the current token
// expires and is safe for concurrent use. Wrap with oauth2.ReuseTokenSource
// only if an extra caching layer is wanted; the source already reuses the
// current token while valid.
func (f *Flow) TokenSource(ctx context.Context, t *Token) oauth2.TokenSource {
	return &flowTokenSource{ctx: ctx, flow: f, current: t}
}

type flowTokenSource struct {
	ctx  context.Context
	flow *Flow

	mu      sync.Mutex
	current *Token
}

func (s *flowTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Valid() {
		return s.current.OAuth2Token(), nil
	}
	if s.current == nil || s.current.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token expired and no refresh token held", ErrInvalidRequest)
	}
	refreshed, err := s.flow.Refresh(s.ctx, s.current.RefreshToken)
	if err != nil {
		return nil, err
	}
	// Providers that rotate refresh tokens return a new one; keep the old
	// one only when they don't.
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = s.current.RefreshToken
	}
	s.current = refreshed
	return refreshed.OAuth2Token(), nil
}
