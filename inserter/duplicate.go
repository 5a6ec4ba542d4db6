package inserter

import (
	"strings"

	"github.com/seo-optimizer/content-optimizer/lexicon"
)

// minComponentWordLen is the length above which a component word of a
// multi-word keyword is checked for existing repetition.
const minComponentWordLen = 4

// normalizeSpace collapses every whitespace run to a single space and trims
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsDuplicate reports whether inserting keyword into content would duplicate
// text that is already there. A multi-word keyword is a duplicate if the
// phrase already occurs, or if any of its words longer than 3 characters
// already occurs at least twice. A single word is a duplicate if it occurs at
// all. Matching is case-insensitive; a blank keyword is never a duplicate.
func IsDuplicate(content, keyword string) bool {
	words := strings.Fields(keyword)
	switch len(words) {
	case 0:
		return false
	case 1:
		return lexicon.CountTerm(content, words[0]) >= 1
	}

	phrase := strings.ToLower(strings.Join(words, " "))
	if strings.Contains(strings.ToLower(normalizeSpace(content)), phrase) {
		return true
	}
	for _, w := range words {
		if c := lexicon.Clean(w); len(c) >= minComponentWordLen && lexicon.CountTerm(content, c) >= 2 {
			return true
		}
	}
	return false
}
