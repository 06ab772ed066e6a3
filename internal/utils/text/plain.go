package text

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText strips markup from an article body. Bodies that do not parse as
// HTML are returned with whitespace collapsed.
func PlainText(body string) string {
	if !strings.ContainsAny(body, "<&") {
		return collapseSpaces(body)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return collapseSpaces(body)
	}

	doc.Find("script, style").Remove()
	doc.Find("br, p, div, li, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return collapseSpaces(doc.Text())
}

// Excerpt returns the first limit runes of the plain-text body, ending with
// "..." when it had to cut.
func Excerpt(body string, limit int) string {
	return Truncate(PlainText(body), limit, "...")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
