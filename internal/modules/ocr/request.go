package ocr

import (
	"github.com/openai/openai-go/v2"
)

const (
	maxOutputTokens  = 4000
	outputTemp       = 0.1
	probeMaxTokens   = 10
	probeTemperature = 0
)

// probeMessage is the fixed prompt used by connection tests.
const probeMessage = `Hello, this is a connection test. Please respond with "Connection successful".`

// BuildChatRequest assembles the multimodal chat-completion payload for one
// extraction: a single user message carrying the instruction text followed by
// the image reference. Low temperature keeps transcription faithful.
func BuildChatRequest(settings EffectiveSettings, imageURL string) openai.ChatCompletionNewParams {
	model := settings.Model
	if model == "" {
		model = DefaultModel
	}
	prompt := settings.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: imageURL,
				}),
			}),
		},
		MaxTokens:   openai.Int(maxOutputTokens),
		Temperature: openai.Float(outputTemp),
	}
}

// buildProbeRequest assembles the minimal text-only request used to verify
// that a provider accepts the caller's credentials.
func buildProbeRequest(model string) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(probeMessage),
		},
		MaxTokens:   openai.Int(probeMaxTokens),
		Temperature: openai.Float(probeTemperature),
	}
}
