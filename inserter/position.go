package inserter

import (
	"strings"

	"github.com/seo-optimizer/content-optimizer/lexicon"
)

const fallbackWordRatio = 0.4

// FindBestWordPosition returns the index in words before which keyword should
// be inserted. Candidates lie strictly inside the sentence; the first rule
// that matches wins: before a coordinating conjunction, before a transition
// adverb, before a relative or subordinating word, after a comma, the best
// semantic-flow position, and finally 40% into the sentence past any
// determiner. The result is clamped to [1, len(words)-2], or 1 for sentences
// of two words or fewer.
func FindBestWordPosition(words []string, keyword string) int {
	n := len(words)
	if n <= 2 {
		return 1
	}
	last := n - 2

	for _, match := range []func(string) bool{
		lexicon.IsConjunction,
		lexicon.IsTransition,
		lexicon.IsRelativeWord,
	} {
		for i := 1; i <= last; i++ {
			if match(lexicon.Clean(words[i])) {
				return i
			}
		}
	}

	for i := 1; i <= last; i++ {
		prev := words[i-1]
		if strings.Contains(prev, ",") && !strings.ContainsAny(prev, "\"“”") {
			return i
		}
	}

	if pos := semanticFlowPosition(words, lexicon.Words(keyword)); pos > 0 {
		return pos
	}

	pos := int(fallbackWordRatio * float64(n))
	for pos > 0 && pos < n-1 && lexicon.IsDeterminer(lexicon.Clean(words[pos-1])) {
		pos++
	}
	return max(1, min(pos, last))
}

// semanticFlowPosition scores each inner position by how many words in the
// two words before and three after share a prefix with a keyword word. It
// returns 0 when no position scores above zero.
func semanticFlowPosition(words, kwWords []string) int {
	n := len(words)
	best, bestScore := 0, 0
	for i := 1; i <= n-2; i++ {
		score := 0
		for _, w := range words[max(0, i-2):min(n, i+3)] {
			c := lexicon.Clean(w)
			if len(c) < affixLen {
				continue
			}
			for _, kw := range kwWords {
				if len(kw) >= affixLen && c[:affixLen] == kw[:affixLen] {
					score += 2
				}
			}
		}
		if score > 0 && i > 1 && i < n-2 {
			score++
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}
