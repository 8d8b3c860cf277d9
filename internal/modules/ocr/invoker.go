package ocr

import (
	"context"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"

	"github.com/snapocr/core/internal/pkg/metrics"
)

// Service performs OCR extractions against OpenAI-compatible providers.
type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// newClient builds a provider-bound client. Retries are disabled so each
// invocation maps to exactly one upstream request.
func newClient(pc ProviderConfig, apiKey string) openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if pc.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(pc.BaseURL))
	}
	return openai.NewClient(opts...)
}

// Invoke runs one extraction. Transport and API failures surface as
// *ProviderError; an empty or absent completion yields the placeholder text,
// not an error.
func (s *Service) Invoke(ctx context.Context, settings EffectiveSettings, imageURL string) (string, error) {
	pc, err := Resolve(settings.Provider, settings.CustomEndpoint)
	if err != nil {
		return "", err
	}

	client := newClient(pc, settings.APIKey)
	start := time.Now()
	completion, err := client.Chat.Completions.New(ctx, BuildChatRequest(settings, imageURL))
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveOCR(string(settings.Provider), "error", elapsed)
		s.logger.Warn("ocr extraction failed",
			zap.String("provider", string(settings.Provider)),
			zap.String("model", settings.Model),
			zap.Error(err),
		)
		return "", &ProviderError{Provider: settings.Provider, Err: err}
	}

	metrics.ObserveOCR(string(settings.Provider), "success", elapsed)

	if len(completion.Choices) == 0 {
		return NoTextPlaceholder, nil
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return NoTextPlaceholder, nil
	}
	return content, nil
}

// TestConnection sends the minimal probe with the supplied credentials and
// reports whether the provider answered. Provider and model are used exactly
// as given; an unrecognized provider fails before any network call.
func (s *Service) TestConnection(ctx context.Context, provider Provider, apiKey, model, endpoint string) (TestResult, error) {
	pc, err := Resolve(provider, endpoint)
	if err != nil {
		return TestResult{}, err
	}

	client := newClient(pc, apiKey)
	completion, err := client.Chat.Completions.New(ctx, buildProbeRequest(model))
	if err != nil {
		return TestResult{}, &ProviderError{Provider: provider, Err: err}
	}
	if len(completion.Choices) == 0 {
		return TestResult{}, nil
	}
	return TestResult{
		Success:  true,
		Message:  "Connection successful",
		Response: completion.Choices[0].Message.Content,
	}, nil
}
