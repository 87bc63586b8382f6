// Package authflow implements the client side of the OAuth2 authorization
// code grant with PKCE (RFC 7636).
//
// The engine is generic: endpoints, scopes, the PKCE method and the token
// request authentication strategy all come from a ProviderConfig value.
// New providers are added by constructing a new config, not by subclassing
// or wrapping the engine.
//
// # Basic Usage
//
// Run the three-legged flow against Twitter's v2 endpoints:
//
//	flow, err := authflow.New(authflow.Twitter(clientID, clientSecret))
//	if err != nil {
//		return err
//	}
//
//	// Step 1: send the user to the provider. Keep the verifier and state
//	// in the user's session, the engine does not hold them.
//	ch, err := flow.NewChallenge()
//	state := authflow.NewState()
//	loginURL, err := flow.AuthCodeURL(redirectURI, state, ch)
//
//	// Step 2: the provider redirects back with ?code=...&state=...
//	token, err := flow.Exchange(ctx, code, redirectURI, ch.CodeVerifier)
//
//	// Step 3: find out who authorized us.
//	owner, err := flow.ResourceOwner(ctx, token)
//
// Tokens convert to *oauth2.Token via Token.OAuth2Token, and
// Flow.TokenSource adapts the engine's refresh grant to the
// golang.org/x/oauth2 TokenSource interface.
//
// Every operation performs at most one HTTP request, forwards the caller's
// context unchanged, and never retries. Flow values are stateless and safe
// for concurrent use.
package authflow
