package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"shopdir/internal/config"
)

// New returns the searcher selected by SEARCH_PROVIDER. "auto" prefers
// Gemini, then OpenAI, then plain keyword matching, depending on which keys
// are set.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (Searcher, error) {
	provider := cfg.SearchProvider
	if provider == "" || provider == "auto" {
		switch {
		case cfg.GeminiAPIKey != "":
			provider = "gemini"
		case cfg.OpenAIAPIKey != "":
			provider = "openai"
		default:
			provider = providerKeyword
		}
	}

	limiter := NewRateLimiter(cfg.SearchRateLimitRPS)
	timeout := time.Duration(cfg.SearchTimeoutMs) * time.Millisecond

	switch provider {
	case providerKeyword:
		return KeywordSearcher{}, nil
	case "gemini":
		b, err := newGeminiBackend(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, "")
		if err != nil {
			return nil, err
		}
		return newAISearcher(b, limiter, timeout, logger), nil
	case "openai":
		b, err := newOpenAIBackend(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
		if err != nil {
			return nil, err
		}
		return newAISearcher(b, limiter, timeout, logger), nil
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", provider)
	}
}
