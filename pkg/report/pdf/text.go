package pdf

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	htmlRX     = regexp.MustCompile(`(?i)<(p|br|div|h[1-6]|li|ul|ol|strong|em|b|i|span|table)\b[^>]*>`)
	blankRX    = regexp.MustCompile(`\n[ \t]*\n+`)
	headingRX  = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	emphasisRX = regexp.MustCompile(`\*\*|__`)
)

// Paragraphs flattens HTML or markdown model output into plain paragraphs
// separated on blank lines.
func Paragraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if htmlRX.MatchString(content) {
		content = flattenHTML(content)
	}
	content = headingRX.ReplaceAllString(content, "")
	content = emphasisRX.ReplaceAllString(content, "")

	var out []string
	for _, p := range blankRX.Split(content, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func flattenHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("br").ReplaceWithHtml("\n")

	var parts []string
	doc.Find("h1,h2,h3,h4,h5,h6,p,li").Each(func(_ int, sel *goquery.Selection) {
		t := strings.TrimSpace(sel.Text())
		if t == "" {
			return
		}
		if goquery.NodeName(sel) == "li" {
			t = "- " + t
		}
		parts = append(parts, t)
	})
	if len(parts) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(parts, "\n\n")
}
