package pipeline

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type DetectResult struct {
	IsHTML bool
	Title  string
	Reason string
}

var markupTag = regexp.MustCompile(`(?i)<\s*(html|head|body|script|div|title|meta)[\s>/]`)

// DetectHTML recognises a login or error page served in place of a CSV export.
func DetectHTML(body string) DetectResult {
	trimmed := strings.TrimSpace(body)
	lower := strings.ToLower(trimmed)

	reason := ""
	switch {
	case strings.HasPrefix(lower, "<!doctype"):
		reason = "doctype"
	case markupTag.MatchString(trimmed):
		reason = "markup_tag"
	default:
		return DetectResult{}
	}

	return DetectResult{IsHTML: true, Title: pageTitle(trimmed), Reason: reason}
}

func pageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
