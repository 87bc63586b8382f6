// Package pkce generates Proof Key for Code Exchange parameters as defined
// by RFC 7636. A Params value pairs a random code verifier with the derived
// challenge that is sent on the authorization request.
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

// Method selects how the challenge is derived from the verifier.
type Method string

const (
	// S256 derives the challenge as base64url(SHA-256(verifier)). Preferred.
	S256 Method = "S256"

	// Plain uses the verifier itself as the challenge. Only for providers
	// that do not support S256.
	Plain Method = "plain"
)

// Verifier length bounds from RFC 7636 §4.1.
const (
	MinVerifierLength     = 43
	MaxVerifierLength     = 128
	DefaultVerifierLength = 64
)

// Unreserved characters permitted in a code verifier.
const verifierCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

// ErrRandomUnavailable indicates the secure random source could not supply
// entropy. There is no fallback; the flow must not proceed.
var ErrRandomUnavailable = errors.New("pkce: secure random source unavailable")

// Params holds a code verifier and its derived challenge.
type Params struct {
	CodeVerifier  string
	CodeChallenge string
	Method        Method
}

// New generates Params with the default verifier length.
func New(method Method) (*Params, error) {
	return NewWithLength(method, DefaultVerifierLength)
}

// NewWithLength generates Params with a verifier of the given length, which
// must be within [MinVerifierLength, MaxVerifierLength].
func NewWithLength(method Method, length int) (*Params, error) {
	if method != S256 && method != Plain {
		return nil, fmt.Errorf("pkce: unsupported challenge method %q", method)
	}
	if length < MinVerifierLength || length > MaxVerifierLength {
		return nil, fmt.Errorf("pkce: verifier length %d outside [%d, %d]",
			length, MinVerifierLength, MaxVerifierLength)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomUnavailable, err)
	}
	for i, b := range buf {
		buf[i] = verifierCharset[int(b)%len(verifierCharset)]
	}
	verifier := string(buf)

	return &Params{
		CodeVerifier:  verifier,
		CodeChallenge: ChallengeFor(verifier, method),
		Method:        method,
	}, nil
}

// ChallengeFor derives the challenge string for a verifier. Useful when the
// verifier was minted elsewhere (e.g. restored from a session).
func ChallengeFor(verifier string, method Method) string {
	if method == Plain {
		return verifier
	}
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
