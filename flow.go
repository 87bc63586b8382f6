package authflow

import (
	"fmt"
	"net/http"

	"github.com/dpup/authflow/logging"
	"github.com/dpup/authflow/pkce"
	"github.com/google/uuid"
)

// Flow runs the authorization code + PKCE grant for one provider. A Flow
// holds no per-user state; the verifier and state minted for a login
// attempt belong in the user's session.
type Flow struct {
	config         ProviderConfig
	client         *http.Client
	logger         logging.Logger
	verifierLength int
}

// Option configures a Flow.
type Option func(*Flow)

// WithHTTPClient replaces the HTTP client used for token and resource
// owner requests. Timeouts configured on the client apply as-is.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Flow) { f.client = c }
}

// WithLogger attaches a logger. Requests are logged at debug level;
// credentials and tokens are never included.
func WithLogger(l logging.Logger) Option {
	return func(f *Flow) { f.logger = l }
}

// WithVerifierLength sets the PKCE verifier length for NewChallenge.
func WithVerifierLength(n int) Option {
	return func(f *Flow) { f.verifierLength = n }
}

// New validates the provider config and returns a Flow.
func New(config ProviderConfig, opts ...Option) (*Flow, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	f := &Flow{
		config:         config,
		client:         http.DefaultClient,
		logger:         logging.Nop(),
		verifierLength: pkce.DefaultVerifierLength,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.verifierLength < pkce.MinVerifierLength || f.verifierLength > pkce.MaxVerifierLength {
		return nil, fmt.Errorf("%w: verifier length %d outside [%d, %d]",
			ErrInvalidConfig, f.verifierLength, pkce.MinVerifierLength, pkce.MaxVerifierLength)
	}
	return f, nil
}

// Config returns the provider config the flow was built with.
func (f *Flow) Config() ProviderConfig { return f.config }

// NewChallenge mints PKCE params using the provider's challenge method.
// Callers must retain the verifier until the code exchange.
func (f *Flow) NewChallenge() (*pkce.Params, error) {
	return pkce.NewWithLength(f.config.pkceMethod(), f.verifierLength)
}

// NewState returns a random value for the state parameter. Callers should
// bind it to the user's session and compare it on the callback.
func NewState() string {
	return uuid.NewString()
}
