package util

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const currencySuffix = " Ks"

var firstDigits = regexp.MustCompile(`\d+`)

var pricePrinter = message.NewPrinter(language.English)

// ParsePrice extracts the first whole number from free-text prices such as
// "Starting at 200,000 Ks" or "5,000 - 50,000". Text without digits is 0.
func ParsePrice(input string) int64 {
	clean := strings.ReplaceAll(input, ",", "")
	m := firstDigits.FindString(clean)
	if m == "" {
		return 0
	}
	n, err := strconv.ParseInt(m, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func FormatPrice(amount int64) string {
	return pricePrinter.Sprintf("%d", amount) + currencySuffix
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
