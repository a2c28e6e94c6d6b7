package directory

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"shopdir/internal"
)

const topRatedLimit = 5

type CategoryCount struct {
	Category internal.Category
	Count    int
}

type Summary struct {
	Total         int
	ByCategory    []CategoryCount
	AverageRating float64
	WithPrice     int
	WithImage     int
	TopRated      []internal.Business
}

func Summarize(businesses []internal.Business) Summary {
	s := Summary{Total: len(businesses)}

	counts := map[internal.Category]int{}
	ratingSum := 0.0
	for _, b := range businesses {
		counts[b.Category]++
		ratingSum += b.Rating
		if strings.TrimSpace(b.Price) != "" {
			s.WithPrice++
		}
		if strings.TrimSpace(b.ImageURL) != "" {
			s.WithImage++
		}
	}
	for _, c := range internal.Categories() {
		if counts[c] > 0 {
			s.ByCategory = append(s.ByCategory, CategoryCount{Category: c, Count: counts[c]})
		}
	}
	if len(businesses) > 0 {
		s.AverageRating = ratingSum / float64(len(businesses))
	}

	ranked := make([]internal.Business, len(businesses))
	copy(ranked, businesses)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].Reviews > ranked[j].Reviews
	})
	if len(ranked) > topRatedLimit {
		ranked = ranked[:topRatedLimit]
	}
	s.TopRated = ranked
	return s
}

func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "businesses: %d (priced %d, with image %d)\n", s.Total, s.WithPrice, s.WithImage)
	fmt.Fprintf(w, "average rating: %.2f\n", s.AverageRating)
	fmt.Fprintln(w, "by category:")
	for _, cc := range s.ByCategory {
		fmt.Fprintf(w, "  %-14s %d\n", cc.Category, cc.Count)
	}
	fmt.Fprintln(w, "top rated:")
	for i, b := range s.TopRated {
		fmt.Fprintf(w, "  %d. %s (%.1f, %d reviews)\n", i+1, b.Name, b.Rating, b.Reviews)
	}
}
