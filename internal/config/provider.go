package config

import (
	"fmt"
	"strings"
)

// Provider identifies the external platform a webhook payload must conform to.
// The set is closed: dispatch code switches exhaustively over these values, so
// adding a provider means touching both this type and the dispatch table.
type Provider string

const (
	ProviderSlack    Provider = "SLACK"
	ProviderDiscord  Provider = "DISCORD"
	ProviderPushover Provider = "PUSHOVER"
	ProviderTelegram Provider = "TELEGRAM"
	ProviderGeneric  Provider = "GENERIC"
)

// Providers lists every supported provider tag in a stable order.
func Providers() []Provider {
	return []Provider{ProviderSlack, ProviderDiscord, ProviderPushover, ProviderTelegram, ProviderGeneric}
}

// ParseProvider converts a stored token into a Provider. Matching is
// case-insensitive so hand-edited config files remain forgiving.
func ParseProvider(value string) (Provider, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(ProviderSlack):
		return ProviderSlack, nil
	case string(ProviderDiscord):
		return ProviderDiscord, nil
	case string(ProviderPushover):
		return ProviderPushover, nil
	case string(ProviderTelegram):
		return ProviderTelegram, nil
	case string(ProviderGeneric):
		return ProviderGeneric, nil
	default:
		return "", fmt.Errorf("unknown webhook provider %q", value)
	}
}

func (p Provider) String() string {
	return string(p)
}

// Valid reports whether the provider is one of the five known tags.
func (p Provider) Valid() bool {
	_, err := ParseProvider(string(p))
	return err == nil
}

// MarshalText serializes the provider as its stable token (e.g. "SLACK").
func (p Provider) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("unknown webhook provider %q", string(p))
	}
	return []byte(p), nil
}

// UnmarshalText parses a provider token from TOML or JSON input.
func (p *Provider) UnmarshalText(text []byte) error {
	parsed, err := ParseProvider(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
