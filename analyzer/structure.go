package analyzer

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const maxHeadingChars = 60

var (
	markdownHeading = regexp.MustCompile(`(?m)^[ \t]*#`)
	listMarker      = regexp.MustCompile(`(?m)^[ \t]*(?:[-*•]|\d+[.)])[ \t]+\S`)
	paragraphBreak  = regexp.MustCompile(`\n[ \t]*\n`)
)

var markdown = goldmark.New()

// splitParagraphs splits content on blank lines and drops empty blocks
func splitParagraphs(content string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(content, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type markdownCounts struct {
	headings int
	lists    int
	links    int
}

func countMarkdown(content string) markdownCounts {
	var counts markdownCounts
	source := []byte(content)
	doc := markdown.Parser().Parse(text.NewReader(source))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			counts.headings++
		case ast.KindList:
			counts.lists++
		case ast.KindLink, ast.KindAutoLink:
			counts.links++
		}
		return ast.WalkContinue, nil
	})
	return counts
}

// isolatedShortLine reports a standalone one-line block that reads like a title
func isolatedShortLine(paragraphs []string) bool {
	if len(paragraphs) < 2 {
		return false
	}
	for _, p := range paragraphs {
		if strings.Contains(p, "\n") || len(p) >= maxHeadingChars {
			continue
		}
		if strings.ContainsAny(p[len(p)-1:], ".!?,;:") {
			continue
		}
		return true
	}
	return false
}

func detectStructure(content string) StructureSignals {
	paragraphs := splitParagraphs(content)
	md := countMarkdown(content)
	lower := strings.ToLower(content)

	return StructureSignals{
		WordCount:      len(strings.Fields(content)),
		SentenceCount:  len(splitSentences(content)),
		ParagraphCount: len(paragraphs),
		HasHeadings:    markdownHeading.MatchString(content) || md.headings > 0 || isolatedShortLine(paragraphs),
		HasLists:       listMarker.MatchString(content) || md.lists > 0,
		HasLinks:       strings.Contains(lower, "http") || strings.Contains(lower, "www.") || md.links > 0,
	}
}
