package ocr

import (
	"errors"
	"fmt"
)

// Provider identifies a supported OCR backend. Every supported backend speaks
// the OpenAI chat-completions protocol; only the base URL and API key differ.
type Provider string

const (
	ProviderTogether Provider = "together"
	ProviderGroq     Provider = "groq"
	ProviderOpenAI   Provider = "openai"
	ProviderCustom   Provider = "custom"
)

// ProviderConfig is a resolved connection target. An empty BaseURL means the
// SDK default host.
type ProviderConfig struct {
	ID      Provider
	BaseURL string
}

var (
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrMissingEndpoint     = errors.New("custom endpoint is required for custom provider")
)

// ProviderError wraps any transport or API-level failure from a provider call
// so callers can distinguish "no text found" from "request failed".
type ProviderError struct {
	Provider Provider
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("failed to extract text from image using %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// EffectiveSettings is the resolved combination of default-vs-custom
// credentials and prompt actually used for one request.
type EffectiveSettings struct {
	Provider       Provider
	APIKey         string
	Model          string
	CustomEndpoint string
	Prompt         string
}

const (
	// DefaultModel is the service-wide vision model.
	DefaultModel = "meta-llama/Llama-Vision-Free"

	// DefaultPrompt is the instruction used when no per-user prompt is set.
	DefaultPrompt = "Extract all readable text from this image and format it as clean, well-structured Markdown. Preserve any formatting, headings, lists, or structure you can identify. If there are tables, format them as Markdown tables. Return only the extracted text in Markdown format."

	// NoTextPlaceholder is returned when the provider produced no output.
	// Absence of text is not a failure.
	NoTextPlaceholder = "No text could be extracted from the image."
)

type ocrDTO struct {
	ImageURL string `json:"imageUrl"`
}

type testConnectionDTO struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	Model    string `json:"model"`
	Endpoint string `json:"endpoint"`
}

// TestResult is the diagnostic payload of a connection test.
type TestResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Response string `json:"response"`
}
