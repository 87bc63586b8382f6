package authflow

import "github.com/dpup/authflow/pkce"

// Twitter returns the provider config for Twitter's v2 OAuth2 endpoints.
// Twitter requires S256 PKCE and authenticates token requests with HTTP
// Basic credentials rather than body params. The users/me response nests
// the user fields under a `data` envelope.
//
// https://developer.twitter.com/en/docs/authentication/oauth-2-0/authorization-code
func Twitter(clientID, clientSecret string) ProviderConfig {
	return ProviderConfig{
		AuthURL:          "https://twitter.com/i/oauth2/authorize",
		TokenURL:         "https://api.twitter.com/2/oauth2/token",
		ResourceOwnerURL: "https://api.twitter.com/2/users/me?user.fields=profile_image_url",
		DefaultScopes:    []string{"tweet.read", "users.read", "offline.access"},
		ScopeSeparator:   " ",
		PKCEMethod:       pkce.S256,
		ClientID:         clientID,
		ClientSecret:     clientSecret,
		AuthStyle:        AuthStyleBasicHeader,
	}
}
