package authflow

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dpup/authflow/pkce"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables when loading config.
const EnvPrefix = "AUTHFLOW__"

// LoadConfig returns a koanf instance layered from built-in defaults, an
// optional YAML file, and environment variables (later sources override
// earlier ones).
//
// Environment variable transformation:
//   - AUTHFLOW__TWITTER__CLIENT_ID → twitter.clientId
//   - AUTHFLOW__HTTP__TIMEOUT → http.timeout
func LoadConfig(path string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"http.timeout": "10s",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("%w: defaults: %v", ErrInvalidConfig, err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: config file %q: %v", ErrInvalidConfig, path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", transformEnv), nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrInvalidConfig, err)
	}
	return k, nil
}

// ProviderFromConfig builds a ProviderConfig from keys under the given
// prefix, e.g. with prefix "twitter": twitter.authUrl, twitter.tokenUrl,
// twitter.resourceOwnerUrl, twitter.clientId, twitter.clientSecret,
// twitter.scopes, twitter.scopeSeparator, twitter.pkceMethod,
// twitter.authStyle ("basic" or "body"), twitter.errorMessageField,
// twitter.errorCodeField. The result is validated.
func ProviderFromConfig(k *koanf.Koanf, prefix string) (ProviderConfig, error) {
	key := func(s string) string {
		if prefix == "" {
			return s
		}
		return prefix + "." + s
	}

	cfg := ProviderConfig{
		AuthURL:           k.String(key("authUrl")),
		TokenURL:          k.String(key("tokenUrl")),
		ResourceOwnerURL:  k.String(key("resourceOwnerUrl")),
		DefaultScopes:     k.Strings(key("scopes")),
		ScopeSeparator:    k.String(key("scopeSeparator")),
		PKCEMethod:        pkce.Method(k.String(key("pkceMethod"))),
		ClientID:          k.String(key("clientId")),
		ClientSecret:      k.String(key("clientSecret")),
		ErrorMessageField: k.String(key("errorMessageField")),
		ErrorCodeField:    k.String(key("errorCodeField")),
	}

	switch style := k.String(key("authStyle")); style {
	case "", "basic":
		cfg.AuthStyle = AuthStyleBasicHeader
	case "body":
		cfg.AuthStyle = AuthStyleBodyParams
	default:
		return ProviderConfig{}, fmt.Errorf("%w: unknown auth style %q", ErrInvalidConfig, style)
	}

	if err := cfg.Validate(); err != nil {
		return ProviderConfig{}, err
	}
	return cfg, nil
}

// transformEnv converts AUTHFLOW__TWITTER__CLIENT_ID to twitter.clientId.
// Rules: strip the prefix, lowercase, double underscores become dots, and
// single underscores within a segment become camelCase.
func transformEnv(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	segments := strings.Split(s, "__")
	for i, segment := range segments {
		parts := strings.Split(segment, "_")
		for j := 1; j < len(parts); j++ {
			parts[j] = capitalize(parts[j])
		}
		segments[i] = strings.Join(parts, "")
	}
	return strings.Join(segments, ".")
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
