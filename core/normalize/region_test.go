package normalize

import (
	"strings"
	"testing"

	"grant-scraper/core/domain"
)

func TestCheckRegion(t *testing.T) {
	excluded := []string{"北海道内", "沖縄県内"}

	tests := []struct {
		name         string
		text         string
		wantEligible bool
		wantRegion   string
	}{
		{"excluded substring", "北海道内に所在する団体を対象とします", false, "北海道内"},
		{"first exclusion wins", "沖縄県内または北海道内", false, "北海道内"},
		{"declared target region", "対象地域：全国\n募集期間：随時", true, "全国"},
		{"declared activity area", "活動地域: 東京都・神奈川県", true, "東京都・神奈川県"},
		{"declared area", "対象エリア：関東一円", true, "関東一円"},
		{"grant target with location", "助成対象：日本国内に所在するNPO法人", true, "日本国内"},
		{"nothing declared", "子育て支援活動への助成", true, domain.RegionUnspecified},
		{"empty", "", true, domain.RegionUnspecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, region := CheckRegion(tt.text, excluded)
			if eligible != tt.wantEligible {
				t.Errorf("eligible = %v, want %v", eligible, tt.wantEligible)
			}
			if region != tt.wantRegion {
				t.Errorf("region = %q, want %q", region, tt.wantRegion)
			}
		})
	}
}

func TestCheckRegion_TruncatesDeclaration(t *testing.T) {
	text := "対象地域：" + strings.Repeat("県", 100)

	_, region := CheckRegion(text, nil)
	if Length(region) != 60 {
		t.Errorf("len = %d, want 60", Length(region))
	}
}
