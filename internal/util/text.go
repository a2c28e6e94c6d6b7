package util

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reLeadingNum  = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)`)
	reLeadingInts = regexp.MustCompile(`^[+-]?\d+`)
)

// NormalizeHeader lower-cases a column name, drops every whitespace rune and
// strips a leading and trailing double quote.
func NormalizeHeader(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = StripSpaces(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return s
}

func StripSpaces(input string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
}

// ContainsFold reports whether needle occurs in haystack ignoring case.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// LeadingFloat parses the numeric prefix of input the way spreadsheet cells
// like "4.8 stars" are meant to be read.
func LeadingFloat(input string) (float64, bool) {
	m := reLeadingNum.FindString(strings.TrimSpace(input))
	if m == "" {
		return 0, false
	}
	return parseFloat(m)
}

func LeadingInt(input string) (int, bool) {
	m := reLeadingInts.FindString(strings.TrimSpace(input))
	if m == "" {
		return 0, false
	}
	return parseInt(m)
}
