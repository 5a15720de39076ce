package config

import (
	"strconv"

	"grant-scraper/core/filter"
	"grant-scraper/core/scoring"
)

// Policy is the keyword and threshold policy applied to every record
type Policy struct {
	HighPriorityKeywords   []string `yaml:"high_priority_keywords"`
	LowPriorityKeywords    []string `yaml:"low_priority_keywords"`
	ExcludeKeywords        []string `yaml:"exclude_keywords"`
	ExcludedRegionPatterns []string `yaml:"excluded_region_patterns"`
	ScoreThreshold         int      `yaml:"score_threshold"`
	AmountThreshold        int64    `yaml:"amount_threshold"`
}

// DefaultPolicy returns the built-in policy for family and child-rearing programs
func DefaultPolicy() Policy {
	return Policy{
		HighPriorityKeywords: []string{
			"子育て", "親子", "母親", "妊娠", "出産", "産後", "子ども", "乳幼児", "ひとり親", "家族",
		},
		LowPriorityKeywords: []string{
			"NPO", "地域", "女性", "福祉", "居場所", "コミュニティ", "教育", "まちづくり", "社会課題", "ボランティア",
		},
		ExcludeKeywords: []string{
			"研究者個人", "学術研究", "留学", "奨学金", "海外",
		},
		ExcludedRegionPatterns: []string{
			"北海道内", "青森県内", "岩手県内", "秋田県内", "山形県内", "福島県内",
			"新潟県内", "富山県内", "石川県内", "福井県内", "長野県内", "岐阜県内",
			"静岡県内", "愛知県内", "三重県内", "滋賀県内", "京都府内", "大阪府内",
			"兵庫県内", "奈良県内", "和歌山県内", "鳥取県内", "島根県内", "岡山県内",
			"広島県内", "山口県内", "徳島県内", "香川県内", "愛媛県内", "高知県内",
			"福岡県内", "佐賀県内", "長崎県内", "熊本県内", "大分県内", "宮崎県内",
			"鹿児島県内", "沖縄県内",
		},
		ScoreThreshold:  2,
		AmountThreshold: 100_000,
	}
}

// Validate rejects thresholds the pipeline cannot interpret
func (p Policy) Validate() error {
	if p.ScoreThreshold < 0 {
		return configError("SCORE_THRESHOLD", strconv.Itoa(p.ScoreThreshold), "cannot be negative")
	}
	if p.AmountThreshold < 0 {
		return configError("AMOUNT_THRESHOLD", strconv.FormatInt(p.AmountThreshold, 10), "cannot be negative")
	}
	if len(p.HighPriorityKeywords) == 0 && len(p.LowPriorityKeywords) == 0 {
		return configError("POLICY_FILE", "", "at least one scoring keyword is required")
	}
	return nil
}

// Keywords returns the scorer's view of the policy
func (p Policy) Keywords() scoring.Keywords {
	return scoring.Keywords{High: p.HighPriorityKeywords, Low: p.LowPriorityKeywords}
}

// Rules returns the filter's view of the policy
func (p Policy) Rules() filter.Rules {
	return filter.Rules{
		ScoreThreshold:  p.ScoreThreshold,
		AmountFloor:     p.AmountThreshold,
		ExcludeKeywords: p.ExcludeKeywords,
	}
}
