package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skipText reports whether text under n is never rendered
func skipText(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style")
}

// collectText appends the text nodes under n in document order
func collectText(n *html.Node, out []string) []string {
	if skipText(n) {
		return out
	}
	if n.Type == html.TextNode {
		return append(out, n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = collectText(c, out)
	}
	return out
}

// pageText joins every text node of the document with newlines
func pageText(doc *goquery.Document) string {
	var pieces []string
	for _, n := range doc.Nodes {
		pieces = collectText(n, pieces)
	}
	return strings.Join(pieces, "\n")
}

// strippedText concatenates the trimmed, non-empty text pieces under nodes
func strippedText(nodes ...*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		for _, piece := range collectText(n, nil) {
			b.WriteString(strings.TrimSpace(piece))
		}
	}
	return b.String()
}

// selectionText is strippedText over the first node of a selection
func selectionText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return strippedText(sel.Get(0))
}

// htmlToText renders a markup fragment as its plain text, pieces unseparated
func htmlToText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	var pieces []string
	for _, n := range doc.Nodes {
		pieces = collectText(n, pieces)
	}
	return strings.Join(pieces, "")
}

// nextAfter returns the node following n's subtree in document order
func nextAfter(n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

// findNextElement returns the first element named in tags that follows
// heading in document order, skipping heading's own descendants
func findNextElement(heading *html.Node, tags map[string]bool) *html.Node {
	n := nextAfter(heading)
	for n != nil {
		if n.Type == html.ElementNode && tags[n.Data] {
			return n
		}
		if n.FirstChild != nil {
			n = n.FirstChild
		} else {
			n = nextAfter(n)
		}
	}
	return nil
}
