package llm

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrUnavailable marks any model-tier failure (missing credential, transport
// error, timeout, unusable response). Callers recover via the deterministic
// fallback and never surface it.
var ErrUnavailable = errors.New("model unavailable")

// Request is one bounded completion call.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Client is the interface for completion providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)

	//Name is the provider name ("openai", "gemini", ...)
	Name() string
}

// New builds the configured provider. A nil client with nil error means no
// model capability is configured; the caller falls back to deterministic
// scoring and drafting.
func New(ctx context.Context, provider, apiKey, model string, log *zap.Logger) (Client, error) {
	switch provider {
	case "":
		return nil, nil
	case "openai":
		if apiKey == "" {
			return nil, nil
		}
		log.Debug("using llm provider", zap.String("provider", provider), zap.String("model", model))
		return NewOpenAIClient(apiKey, model), nil
	case "gemini":
		if apiKey == "" {
			return nil, nil
		}
		log.Debug("using llm provider", zap.String("provider", provider), zap.String("model", model))
		return NewGeminiClient(ctx, apiKey, model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}
