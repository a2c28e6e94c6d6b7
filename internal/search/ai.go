package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"shopdir/internal"
	"shopdir/internal/logging"
	"shopdir/internal/observability"
)

const aiFallbackText = "I'm having trouble connecting to AI, but here are some matches from our database."

// answer is the JSON document both model providers are asked to return.
type answer struct {
	ResponseText string   `json:"responseText"`
	BusinessIDs  []string `json:"businessIds"`
}

// backend sends one prompt to a model provider and returns its raw answer.
type backend interface {
	name() string
	ask(ctx context.Context, system, user string) (answer, error)
}

type directoryEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// AISearcher asks a language model which businesses fit the query and falls
// back to keyword matching whenever the model cannot be reached.
type AISearcher struct {
	backend backend
	limiter *RateLimiter
	timeout time.Duration
	logger  *zap.Logger
}

func newAISearcher(b backend, limiter *RateLimiter, timeout time.Duration, logger *zap.Logger) *AISearcher {
	if limiter == nil {
		limiter = NewRateLimiter(1)
	}
	return &AISearcher{backend: b, limiter: limiter, timeout: timeout, logger: logging.OrNop(logger)}
}

func (s *AISearcher) Search(ctx context.Context, query string, businesses []internal.Business) internal.SearchResult {
	provider := s.backend.name()

	res, err := s.ask(ctx, query, businesses)
	if err != nil {
		s.logger.Warn("ai search failed, using keyword fallback", zap.String("provider", provider), zap.Error(err))
		observability.SearchRequestsTotal.WithLabelValues(provider, "fallback").Inc()
		return internal.SearchResult{
			Text:        aiFallbackText,
			BusinessIDs: matchKeyword(query, businesses, false),
			Provider:    providerKeyword,
		}
	}

	observability.SearchRequestsTotal.WithLabelValues(provider, "ok").Inc()
	return res
}

func (s *AISearcher) ask(ctx context.Context, query string, businesses []internal.Business) (internal.SearchResult, error) {
	if err := s.limiter.WaitTurn(ctx); err != nil {
		return internal.SearchResult{}, err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	system, err := systemPrompt(businesses)
	if err != nil {
		return internal.SearchResult{}, err
	}
	ans, err := s.backend.ask(ctx, system, query)
	if err != nil {
		return internal.SearchResult{}, err
	}

	known := make(map[string]struct{}, len(businesses))
	for _, b := range businesses {
		known[b.ID] = struct{}{}
	}
	ids := []string{}
	seen := map[string]struct{}{}
	for _, id := range ans.BusinessIDs {
		id = strings.TrimSpace(id)
		if _, ok := known[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return internal.SearchResult{Text: ans.ResponseText, BusinessIDs: ids, Provider: s.backend.name()}, nil
}

func systemPrompt(businesses []internal.Business) (string, error) {
	entries := make([]directoryEntry, 0, len(businesses))
	for _, b := range businesses {
		entries = append(entries, directoryEntry{
			ID:          b.ID,
			Name:        b.Name,
			Category:    string(b.Category),
			Description: b.Description,
			Address:     b.Address,
		})
	}
	blob, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`You are a helpful assistant for a local business directory in Taungoo, Myanmar.
Here is the list of businesses in JSON:
%s

Read the user's query and pick the businesses that match it.
Reply with a JSON object: {"responseText": "<short friendly answer in the user's language>", "businessIds": ["<id>", ...]}.
Return an empty businessIds list when nothing fits. Return only JSON.`, blob), nil
}

func decodeAnswer(raw string) (answer, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var ans answer
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &ans); err != nil {
		return answer{}, fmt.Errorf("decode model answer: %w", err)
	}
	return ans, nil
}
