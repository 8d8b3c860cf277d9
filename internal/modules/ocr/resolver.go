package ocr

import (
	"strings"

	"github.com/snapocr/core/internal/config"
	"github.com/snapocr/core/internal/models"
)

// DefaultSettings builds the built-in settings backed by the service-wide
// Together key from config.
func DefaultSettings(cfg config.OcrConfig) EffectiveSettings {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	prompt := strings.TrimSpace(cfg.Prompt)
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return EffectiveSettings{
		Provider: ProviderTogether,
		APIKey:   cfg.APIKey,
		Model:    model,
		Prompt:   prompt,
	}
}

// ResolveSettings decides whose credentials one invocation uses. Stored
// settings win only when the user opted in and actually has a key; everything
// else falls back to the defaults. Deterministic and side-effect-free.
func ResolveSettings(stored *models.OcrSettingsModel, defaults EffectiveSettings) EffectiveSettings {
	if stored == nil || !stored.UseOwnKeys || strings.TrimSpace(stored.APIKey) == "" {
		return defaults
	}
	return EffectiveSettings{
		Provider:       Provider(stored.Provider),
		APIKey:         stored.APIKey,
		Model:          stored.Model,
		CustomEndpoint: stored.CustomEndpoint,
		Prompt:         stored.Prompt,
	}
}
