package parse

import (
	"regexp"
	"strings"
)

// PriceUnknown is the sentinel used when no price pattern is found.
const PriceUnknown = "N/A"

// priceRe matches a Swiss franc amount: digits with an optional decimal
// part, so "Prix: CHF 12.50.-" captures "12.50" and leaves the ".-" suffix.
var priceRe = regexp.MustCompile(`CHF\s*(\d+(?:\.\d+)?)`)

// ExtractPrice searches text for a CHF amount and returns it in the
// normalized "CHF <amount>" form. Without a match it returns PriceUnknown
// and false.
func ExtractPrice(text string) (string, bool) {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return PriceUnknown, false
	}
	return "CHF " + m[1], true
}

// stripRe removes a priced substring together with its surrounding spaces.
var stripRe = regexp.MustCompile(`\s*CHF\s*\d+(?:\.\d+)?\s*`)

// StripPrice removes any "CHF <amount>" substring from text. The image
// route receives descriptions with the price embedded and hashes the two
// parts separately.
func StripPrice(text string) string {
	return strings.TrimSpace(stripRe.ReplaceAllString(text, " "))
}
