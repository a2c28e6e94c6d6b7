package directory

import "shopdir/internal"

// Filter narrows the directory the way the storefront does: search ids first
// (nil means no active search), then category. CategoryAll or an empty
// category keeps every category. Order is preserved.
func Filter(businesses []internal.Business, category internal.Category, ids []string) []internal.Business {
	var allowed map[string]struct{}
	if ids != nil {
		allowed = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			allowed[id] = struct{}{}
		}
	}

	out := make([]internal.Business, 0, len(businesses))
	for _, b := range businesses {
		if allowed != nil {
			if _, ok := allowed[b.ID]; !ok {
				continue
			}
		}
		if category != "" && category != internal.CategoryAll && b.Category != category {
			continue
		}
		out = append(out, b)
	}
	return out
}

func ByID(businesses []internal.Business) map[string]internal.Business {
	out := make(map[string]internal.Business, len(businesses))
	for _, b := range businesses {
		if _, exists := out[b.ID]; !exists {
			out[b.ID] = b
		}
	}
	return out
}

// ParseCategory accepts a category label or "All" case-insensitively.
func ParseCategory(input string) (internal.Category, bool) {
	if input == "" {
		return internal.CategoryAll, true
	}
	if equalFold(input, string(internal.CategoryAll)) {
		return internal.CategoryAll, true
	}
	for _, c := range internal.Categories() {
		if equalFold(input, string(c)) {
			return c, true
		}
	}
	return "", false
}
