package menu

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// frenchDays maps Go's locale-neutral weekday onto the day names used by
// the source page. Static on purpose, this is not a localization system.
var frenchDays = map[time.Weekday]string{
	time.Monday:    "lundi",
	time.Tuesday:   "mardi",
	time.Wednesday: "mercredi",
	time.Thursday:  "jeudi",
	time.Friday:    "vendredi",
	time.Saturday:  "samedi",
	time.Sunday:    "dimanche",
}

// TodayName returns the French day name for now's weekday.
func TodayName(now time.Time) string {
	return frenchDays[now.Weekday()]
}

// foldAccents strips combining marks so that "épinards" folds to
// "epinards". Chained transformers carry state, so build one per call.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// FoldDayName lowercases a day label and drops accents and surrounding
// whitespace, producing the comparison key used by day lookups.
func FoldDayName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	out, _, err := transform.String(foldAccents(), s)
	if err != nil {
		return s
	}
	return out
}
