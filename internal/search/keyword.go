package search

import (
	"context"
	"fmt"
	"strings"

	"shopdir/internal"
	"shopdir/internal/observability"
	"shopdir/internal/util"
)

const providerKeyword = "keyword"

// Searcher answers a free-text query with matching business ids and a short
// message for the user. Implementations never fail; they degrade instead.
type Searcher interface {
	Search(ctx context.Context, query string, businesses []internal.Business) internal.SearchResult
}

type KeywordSearcher struct{}

func (KeywordSearcher) Search(_ context.Context, query string, businesses []internal.Business) internal.SearchResult {
	ids := matchKeyword(query, businesses, true)
	observability.SearchRequestsTotal.WithLabelValues(providerKeyword, "ok").Inc()

	text := fmt.Sprintf("No results found for \"%s\". Try searching for something else.", query)
	if len(ids) > 0 {
		text = fmt.Sprintf("I found %d results matching \"%s\".", len(ids), query)
	}
	return internal.SearchResult{Text: text, BusinessIDs: ids, Provider: providerKeyword}
}

// matchKeyword does a case-insensitive substring match on name, description
// and category, plus address when withAddress is set.
func matchKeyword(query string, businesses []internal.Business, withAddress bool) []string {
	q := strings.TrimSpace(query)
	ids := []string{}
	for _, b := range businesses {
		fields := []string{b.Name, b.Description, string(b.Category)}
		if withAddress {
			fields = append(fields, b.Address)
		}
		for _, f := range fields {
			if util.ContainsFold(f, q) {
				ids = append(ids, b.ID)
				break
			}
		}
	}
	return ids
}
