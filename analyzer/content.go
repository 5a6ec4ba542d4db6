package analyzer

import (
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"
)

var htmlTag = regexp.MustCompile(`(?i)</?(?:p|div|h[1-6]|ul|ol|li|a|br|span|strong|em|b|i|article|section|body|html)\b[^>]*>`)

// LooksLikeHTML reports whether content carries block or inline HTML markup
func LooksLikeHTML(content string) bool {
	return htmlTag.MatchString(content)
}

// NormalizeContent converts pasted HTML into markdown so headings, lists and
// links survive as text structure. Plain text is returned unchanged. If the
// converter fails the visible text is extracted with goquery instead.
func NormalizeContent(content string) string {
	if !LooksLikeHTML(content) {
		return content
	}

	converter := md.NewConverter("", true, nil)
	converted, err := converter.ConvertString(content)
	if err == nil && strings.TrimSpace(converted) != "" {
		return converted
	}
	if err != nil {
		log.Warn().Err(err).Msg("html to markdown conversion failed, falling back to text extraction")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}
	var blocks []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(blocks, "\n\n")
}
