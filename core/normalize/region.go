package normalize

import (
	"regexp"
	"strings"

	"grant-scraper/core/domain"
)

const regionTextLimit = 60

var regionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`対象地域[：:][\s　]*(.+?)(?:\n|$)`),
	regexp.MustCompile(`活動地域[：:][\s　]*(.+?)(?:\n|$)`),
	regexp.MustCompile(`対象エリア[：:][\s　]*(.+?)(?:\n|$)`),
	regexp.MustCompile(`助成対象[：:][\s　]*(.+?)(?:に所在|に拠点)`),
}

// CheckRegion decides regional eligibility from free text.
// The first excluded substring found makes the record ineligible and is returned
// as the description. Otherwise the first declared scope is returned, or
// domain.RegionUnspecified.
func CheckRegion(text string, excluded []string) (eligible bool, region string) {
	for _, pattern := range excluded {
		if pattern != "" && strings.Contains(text, pattern) {
			return false, pattern
		}
	}

	for _, re := range regionPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return true, Truncate(strings.TrimSpace(m[1]), regionTextLimit)
		}
	}

	return true, domain.RegionUnspecified
}
