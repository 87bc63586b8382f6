package authflow

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// ResourceOwner is the authenticated end user as reported by the
// provider's user info endpoint.
type ResourceOwner struct {
	// ID is the provider's stable identifier for the user.
	ID string

	// Name is the user's display name, when reported.
	Name string

	// Username is the user's handle, when reported.
	Username string

	// ProfileImageURL points at the user's avatar, when reported.
	ProfileImageURL string

	// Raw is the full decoded response.
	Raw map[string]any
}

// ResourceOwner fetches the user behind a token. Twitter and similar
// providers wrap the user fields in a `data` envelope; flat responses are
// accepted too.
func (f *Flow) ResourceOwner(ctx context.Context, tok *Token) (*ResourceOwner, error) {
	if tok == nil || tok.AccessToken == "" {
		return nil, fmt.Errorf("%w: access token required", ErrInvalidRequest)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.config.ResourceOwnerURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: resource owner URL: %v", ErrInvalidConfig, err)
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	req.Header.Set("Accept", "application/json")

	f.logger.Debugw("fetching resource owner", "endpoint", f.config.ResourceOwnerURL)

	m, err := f.do(req)
	if err != nil {
		return nil, err
	}
	return resourceOwnerFromResponse(m)
}

func resourceOwnerFromResponse(m map[string]any) (*ResourceOwner, error) {
	fields := m
	if data, ok := m["data"].(map[string]any); ok {
		fields = data
	}
	ro := &ResourceOwner{Raw: m}
	ro.ID = stringField(fields, "id")
	if ro.ID == "" {
		return nil, fmt.Errorf("%w: resource owner response missing id", ErrMalformedResponse)
	}
	ro.Name = stringField(fields, "name")
	ro.Username = stringField(fields, "username")
	ro.ProfileImageURL = stringField(fields, "profile_image_url")
	return ro, nil
}

// stringField reads a value that providers variously encode as a string or
// a number.
func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
