package sources

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grant-scraper/core/domain"
	coreerrors "grant-scraper/core/errors"
)

const npowebFeedURL = "https://www.npoweb.jp/feed"

const npowebFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>NPOWEB</title>
  <link>https://www.npoweb.jp/</link>
  <description>NPO情報</description>
  <item>
    <title>No.123 メールマガジン 助成情報まとめ</title>
    <link>https://www.npoweb.jp/mm/123</link>
    <description>助成金の一覧</description>
  </item>
  <item>
    <title>【新着12件】今週の助成金情報</title>
    <link>https://www.npoweb.jp/digest/12</link>
    <description>助成金</description>
  </item>
  <item>
    <title>ひとり親家庭支援の助成プログラム</title>
    <link>https://www.npoweb.jp/grant/1</link>
    <description><![CDATA[<p>助成金：1,500,000円</p><p>子育て支援を行う団体が対象です。</p>]]></description>
  </item>
  <item>
    <title>セミナーのお知らせ</title>
    <link>https://www.npoweb.jp/event/3</link>
    <description>参加者募集</description>
  </item>
  <item>
    <title>地域の居場所づくり</title>
    <link>https://www.npoweb.jp/grant/2</link>
    <description>&lt;b&gt;基金&lt;/b&gt;による活動支援</description>
  </item>
  <item>
    <title>リンクのない補助金情報</title>
    <description>補助</description>
  </item>
</channel>
</rss>`

func TestNPOWEB_Collect(t *testing.T) {
	deps, _ := testDeps(pages(map[string]string{npowebFeedURL: npowebFeed}))
	source := NewNPOWEB(deps, Options{URL: npowebFeedURL})

	grants, err := source.Collect(context.Background())
	require.NoError(t, err)

	require.Len(t, grants, 2)

	first := grants[0]
	assert.Equal(t, "ひとり親家庭支援の助成プログラム", first.Name)
	assert.Equal(t, "https://www.npoweb.jp/grant/1", first.URL)
	assert.Equal(t, "NPOWEB", first.Source)
	assert.Equal(t, domain.StatusUnverified, first.Status)
	assert.Contains(t, first.Summary, "助成金：1,500,000円")
	assert.NotContains(t, first.Summary, "<p>")
	assert.Equal(t, first.Summary, first.FullText)
	require.True(t, first.HasAmount())
	assert.Equal(t, int64(1500000), *first.AmountValue)

	second := grants[1]
	assert.Equal(t, "https://www.npoweb.jp/grant/2", second.URL)
	assert.Contains(t, second.Summary, "基金による活動支援")
	assert.False(t, second.HasAmount())
}

func TestNPOWEB_TruncatesSummaryText(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "子育て支援の助成金です。"
	}
	feed := `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>t</title>
<item><title>助成のお知らせ</title><link>https://www.npoweb.jp/grant/9</link><description>` + long + `</description></item>
</channel></rss>`

	deps, _ := testDeps(pages(map[string]string{npowebFeedURL: feed}))
	grants, err := NewNPOWEB(deps, Options{URL: npowebFeedURL}).Collect(context.Background())

	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Len(t, []rune(grants[0].Summary), summaryLimit)
	assert.Len(t, []rune(grants[0].FullText), feedTextLimit)
}

func TestNPOWEB_FetchFailure(t *testing.T) {
	deps, _ := testDeps(pages(nil))

	grants, err := NewNPOWEB(deps, Options{URL: npowebFeedURL}).Collect(context.Background())

	assert.Empty(t, grants)
	assert.True(t, coreerrors.IsFetch(err))
}

func TestNPOWEB_ParseFailure(t *testing.T) {
	deps, _ := testDeps(pages(map[string]string{npowebFeedURL: "this is not a feed"}))

	grants, err := NewNPOWEB(deps, Options{URL: npowebFeedURL}).Collect(context.Background())

	assert.Empty(t, grants)
	assert.Error(t, err)
}
