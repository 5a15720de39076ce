package normalize

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

type amountPattern struct {
	re         *regexp.Regexp
	multiplier float64
}

// Unit-scaled figures such as "1.2億円" and "200万円".
var amountPatterns = []amountPattern{
	{regexp.MustCompile(`(\d[\d,.]*)\s*億\s*円`), 100_000_000},
	{regexp.MustCompile(`(\d[\d,.]*)\s*万\s*円`), 10_000},
}

// Comma-grouped yen such as "1,500,000円".
var directYenPattern = regexp.MustCompile(`(\d{1,3}(?:,\d{3})+)\s*円`)

// ParseAmount returns the largest yen figure quoted in text.
// The largest figure is assumed to be the program ceiling. ok is false when no
// figure was found.
func ParseAmount(text string) (value int64, ok bool) {
	text = fold(text)

	for _, p := range amountPatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil {
				continue
			}
			value, ok = maxAmount(value, ok, scaledYen(f, p.multiplier))
		}
	}

	for _, m := range directYenPattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.ParseInt(strings.ReplaceAll(m[1], ",", ""), 10, 64)
		if errors.Is(err, strconv.ErrRange) {
			n = math.MaxInt64
		} else if err != nil {
			continue
		}
		value, ok = maxAmount(value, ok, n)
	}

	return value, ok
}

// scaledYen converts a unit-scaled figure to yen, saturating at math.MaxInt64.
func scaledYen(f, multiplier float64) int64 {
	yen := f * multiplier
	if yen >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(yen)
}

func maxAmount(current int64, seen bool, candidate int64) (int64, bool) {
	if !seen || candidate > current {
		return candidate, true
	}
	return current, true
}

const amountTextLimit = 120

var amountTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`助成[金額総]*[：:][\s　]*(.+?)(?:\n|$)`),
	regexp.MustCompile(`助成[金額総]*[\s　]+(.+?万円.+?)(?:\n|$)`),
	regexp.MustCompile(`([\d０-９][\d０-９,，.．]*万円[^\n]{0,50})`),
}

// ExtractAmountText returns the first passage describing the grant amount, or ""
func ExtractAmountText(text string) string {
	for _, re := range amountTextPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return Truncate(strings.TrimSpace(m[1]), amountTextLimit)
		}
	}
	return ""
}
