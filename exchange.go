package authflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Providers should not need more than this for a token or user response.
const maxResponseBytes = 1 << 20

// Exchange swaps an authorization code for a token. The redirect URI must
// match the one used in AuthCodeURL and the verifier must be the one whose
// challenge was sent on the authorization request.
func (f *Flow) Exchange(ctx context.Context, code, redirectURI, verifier string) (*Token, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: authorization code required", ErrInvalidRequest)
	}
	if redirectURI == "" {
		return nil, fmt.Errorf("%w: redirect URI required", ErrInvalidRequest)
	}
	if verifier == "" {
		return nil, fmt.Errorf("%w: code verifier required", ErrInvalidRequest)
	}
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("code_verifier", verifier)
	return f.requestToken(ctx, form)
}

// Refresh obtains a new token using a refresh token. Same endpoint, same
// auth strategy as Exchange.
func (f *Flow) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token required", ErrInvalidRequest)
	}
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)
	return f.requestToken(ctx, form)
}

func (f *Flow) requestToken(ctx context.Context, form url.Values) (*Token, error) {
	form.Set("client_id", f.config.ClientID)
	if f.config.AuthStyle == AuthStyleBodyParams && f.config.ClientSecret != "" {
		form.Set("client_secret", f.config.ClientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: token URL: %v", ErrInvalidConfig, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if f.config.AuthStyle == AuthStyleBasicHeader {
		req.SetBasicAuth(f.config.ClientID, f.config.ClientSecret)
	}

	f.logger.Debugw("requesting token",
		"endpoint", f.config.TokenURL,
		"grant_type", form.Get("grant_type"))

	body, err := f.do(req)
	if err != nil {
		return nil, err
	}
	return tokenFromResponse(body, time.Now())
}

// do performs one HTTP round trip, checks the response, and decodes the
// body. All engine requests funnel through here so the error mapping is
// uniform.
func (f *Flow) do(req *http.Request) (map[string]any, error) {
	resp, err := f.client.Do(req)
	if err != nil {
		terr := classifyTransport(err)
		f.logger.Warnw("request failed", "endpoint", req.URL.Host, "kind", string(terr.Kind))
		return nil, terr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransport(err)
	}
	if err := checkResponse(resp.StatusCode, raw, f.config); err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return m, nil
}

// tokenFromResponse builds a Token from a decoded 200 token response.
// access_token is the only required field; everything else is preserved
// in Raw for provider-specific extras.
func tokenFromResponse(m map[string]any, now time.Time) (*Token, error) {
	access, _ := m["access_token"].(string)
	if access == "" {
		return nil, fmt.Errorf("%w: missing access_token", ErrMalformedResponse)
	}
	t := &Token{AccessToken: access, Raw: m}
	t.RefreshToken, _ = m["refresh_token"].(string)
	switch v := m["expires_in"].(type) {
	case float64:
		t.Expiry = now.Add(time.Duration(v) * time.Second)
	case string:
		// Some providers quote the number.
		if secs, err := strconv.Atoi(v); err == nil {
			t.Expiry = now.Add(time.Duration(secs) * time.Second)
		}
	}
	return t, nil
}
