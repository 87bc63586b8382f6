package authflow

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
)

// Sentinel errors surfaced by the engine. Match with errors.Is.
var (
	// ErrInvalidConfig indicates a ProviderConfig that cannot be used:
	// missing endpoints, non-HTTPS URLs, or absent credentials.
	ErrInvalidConfig = errors.New("authflow: invalid provider config")

	// ErrInvalidRequest indicates the caller omitted a required argument,
	// such as the redirect URI or state on URL construction.
	ErrInvalidRequest = errors.New("authflow: invalid request")

	// ErrMalformedResponse indicates a success-status response whose body
	// could not be parsed or is missing a required field.
	ErrMalformedResponse = errors.New("authflow: malformed provider response")
)

// TransportKind classifies a failed HTTP round trip.
type TransportKind string

const (
	TransportNetwork   TransportKind = "network"
	TransportTimeout   TransportKind = "timeout"
	TransportCancelled TransportKind = "cancelled"
	TransportTLS       TransportKind = "tls"
)

// TransportError wraps a failure from the HTTP client. The engine never
// retries; retry policy belongs to the caller.
type TransportError struct {
	Kind TransportKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("authflow: transport failure (%s): %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError is a non-success response from the provider, carrying the
// full decoded body for diagnostics.
type ProviderError struct {
	// Message extracted from the configured error message field, or empty.
	Message string
	// Code extracted from the configured error code field, falling back to
	// the HTTP status code.
	Code string
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Raw is the decoded response body, or nil if it was not JSON.
	Raw map[string]any
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("authflow: provider returned %d (code %s)", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("authflow: provider returned %d: %s (code %s)", e.StatusCode, e.Message, e.Code)
}

// checkResponse accepts a 200 or builds a ProviderError from anything else.
// Field extraction is best effort: unknown shapes degrade to an empty
// message and the numeric status code, never a secondary error.
func checkResponse(status int, body []byte, cfg ProviderConfig) error {
	if status == http.StatusOK {
		return nil
	}
	pe := &ProviderError{
		StatusCode: status,
		Code:       strconv.Itoa(status),
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err == nil {
		pe.Raw = m
		if msg, ok := m[cfg.errMessageField()].(string); ok {
			pe.Message = msg
		}
		switch c := m[cfg.errCodeField()].(type) {
		case string:
			pe.Code = c
		case float64:
			pe.Code = strconv.Itoa(int(c))
		}
	}
	return pe
}

// classifyTransport maps an error from http.Client.Do onto a TransportError.
func classifyTransport(err error) *TransportError {
	kind := TransportNetwork

	var (
		verifyErr   *tls.CertificateVerificationError
		recordErr   tls.RecordHeaderError
		authErr     x509.UnknownAuthorityError
		hostErr     x509.HostnameError
		invalidCert x509.CertificateInvalidError
	)
	switch {
	case errors.Is(err, context.Canceled):
		kind = TransportCancelled
	case errors.Is(err, context.DeadlineExceeded):
		kind = TransportTimeout
	case errors.As(err, &verifyErr),
		errors.As(err, &recordErr),
		errors.As(err, &authErr),
		errors.As(err, &hostErr),
		errors.As(err, &invalidCert):
		kind = TransportTLS
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			kind = TransportTimeout
		}
	}
	return &TransportError{Kind: kind, Err: err}
}
