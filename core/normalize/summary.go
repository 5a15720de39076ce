package normalize

import "strings"

// minSummaryLength is the shortest line accepted as a summary
const minSummaryLength = 30

// Metadata lines that precede the description on detail pages
var skipPrefixes = []string{
	"最終更新日時", "助成制度名", "実施団体", "関連URL", "お問い合わせ先",
	"募集ステータス", "募集時期", "募集期間", "対象分野", "対象事業",
}

// isContentHeading matches lines such as "内容／対象" or "事業の内容・概要"
func isContentHeading(line string) bool {
	return strings.Contains(line, "内容") &&
		(strings.Contains(line, "対象") || strings.Contains(line, "概要") || strings.Contains(line, "説明"))
}

// PickSummary chooses a summary line from page text.
// After a content heading, the first line longer than 30 characters wins. Without a
// heading, the first line of at least 30 characters that is not a metadata label is
// used. The result is truncated to maxLen characters.
func PickSummary(text string, maxLen int) string {
	lines := strings.Split(text, "\n")

	contentStarted := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isContentHeading(line) {
			contentStarted = true
			continue
		}
		if contentStarted && Length(line) > minSummaryLength {
			return Truncate(line, maxLen)
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if Length(line) < minSummaryLength {
			continue
		}
		if hasSkipPrefix(line) {
			continue
		}
		return Truncate(line, maxLen)
	}

	return ""
}

func hasSkipPrefix(line string) bool {
	for _, p := range skipPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
