package ocr

import (
	"fmt"
	"strings"
)

// Base URLs for the built-in providers. Read-only after initialization.
var providerBaseURLs = map[Provider]string{
	ProviderTogether: "https://api.together.xyz/v1",
	ProviderGroq:     "https://api.groq.com/openai/v1",
	ProviderOpenAI:   "",
}

// Resolve maps a provider identifier to connection parameters. The custom
// provider requires a caller-supplied endpoint, used verbatim; unknown
// identifiers fail, never silently default.
func Resolve(provider Provider, customEndpoint string) (ProviderConfig, error) {
	switch provider {
	case ProviderTogether, ProviderGroq, ProviderOpenAI:
		return ProviderConfig{ID: provider, BaseURL: providerBaseURLs[provider]}, nil
	case ProviderCustom:
		endpoint := strings.TrimSpace(customEndpoint)
		if endpoint == "" {
			return ProviderConfig{}, ErrMissingEndpoint
		}
		return ProviderConfig{ID: provider, BaseURL: endpoint}, nil
	default:
		return ProviderConfig{}, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}
