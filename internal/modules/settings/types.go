package settings

// MaskSentinel stands in for a stored API key in every response. Receiving it
// back on an update means "leave the stored key alone".
const MaskSentinel = "••••••••"

type settingsDTO struct {
	Provider       string `json:"apiProvider"`
	APIKey         string `json:"apiKey"`
	Model          string `json:"model"`
	CustomEndpoint string `json:"customEndpoint"`
	UseOwnKeys     bool   `json:"useOwnKeys"`
	Prompt         string `json:"ocrPrompt"`
}

type settingsResponse struct {
	Provider       string `json:"apiProvider"`
	APIKey         string `json:"apiKey"`
	Model          string `json:"model"`
	CustomEndpoint string `json:"customEndpoint,omitempty"`
	UseOwnKeys     bool   `json:"useOwnKeys"`
	Prompt         string `json:"ocrPrompt"`
}
