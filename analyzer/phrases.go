package analyzer

import (
	"slices"
	"strings"

	"github.com/seo-optimizer/content-optimizer/lexicon"
)

const (
	minSingleWordLen  = 5 // single-word candidates must be longer than 4 chars
	minPhraseWordLen  = 3
	minCandidateFreq  = 2
	minPhraseChars    = 7
	maxPhraseChars    = 35
	maxPhrases        = 5
	maxSingleWords    = 3
	maxContextual     = 3
	maxFallbackWords  = 5
	maxSuggestedTerms = 8
)

// genericKeywords is the last resort when content yields no candidates at all.
var genericKeywords = []string{"content optimization", "seo strategy", "digital marketing"}

// freqCounter counts keys and remembers first-seen order for stable ranking
type freqCounter struct {
	order  []string
	counts map[string]int
}

func newFreqCounter() *freqCounter {
	return &freqCounter{counts: make(map[string]int)}
}

func (c *freqCounter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// ranked returns keys seen at least minCount times, most frequent first;
// ties keep first-seen order.
func (c *freqCounter) ranked(minCount int) []string {
	keys := make([]string, 0, len(c.order))
	for _, k := range c.order {
		if c.counts[k] >= minCount {
			keys = append(keys, k)
		}
	}
	slices.SortStableFunc(keys, func(a, b string) int {
		return c.counts[b] - c.counts[a]
	})
	return keys
}

// termList is an ordered, case-insensitively deduplicated list of terms
type termList struct {
	terms []string
	seen  map[string]bool
}

func newTermList() *termList {
	return &termList{seen: make(map[string]bool)}
}

func (l *termList) add(term string) bool {
	key := strings.ToLower(strings.TrimSpace(term))
	if key == "" || l.seen[key] {
		return false
	}
	l.seen[key] = true
	l.terms = append(l.terms, term)
	return true
}

func isPhraseWord(w string) bool {
	return len(w) >= minPhraseWordLen && !lexicon.IsStopWord(w) && !lexicon.IsGenericVerb(w)
}

// ExtractPhrases returns candidate keyword terms for content: frequent
// multi-word phrases, frequent single words and contextual topic phrases.
// It always returns at least one term for non-blank content.
func ExtractPhrases(content string) []string {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	tokens := lexicon.Words(content)

	words := newFreqCounter()
	for _, tok := range tokens {
		if len(tok) >= minSingleWordLen && !lexicon.IsStopWord(tok) {
			words.add(tok)
		}
	}

	phrases := newFreqCounter()
	for size := 2; size <= 3; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			window := tokens[i : i+size]
			if !slices.ContainsFunc(window, func(w string) bool { return !isPhraseWord(w) }) {
				phrases.add(strings.Join(window, " "))
			}
		}
	}

	out := newTermList()

	picked := 0
	for _, p := range phrases.ranked(minCandidateFreq) {
		if picked == maxPhrases {
			break
		}
		if len(p) < minPhraseChars || len(p) > maxPhraseChars {
			continue
		}
		if out.add(p) {
			picked++
		}
	}

	picked = 0
	for _, w := range words.ranked(minCandidateFreq) {
		if picked == maxSingleWords {
			break
		}
		if out.add(w) {
			picked++
		}
	}

	for _, p := range contextualPhrases(tokens) {
		out.add(p)
	}

	if len(out.terms) == 0 {
		fallback := newFreqCounter()
		for _, tok := range tokens {
			if !lexicon.IsStopWord(tok) {
				fallback.add(tok)
			}
		}
		for i, w := range fallback.ranked(1) {
			if i == maxFallbackWords {
				break
			}
			out.add(w)
		}
	}

	if len(out.terms) == 0 {
		for _, g := range genericKeywords {
			out.add(g)
		}
	}

	if len(out.terms) > maxSuggestedTerms {
		return out.terms[:maxSuggestedTerms]
	}
	return out.terms
}

// contextualPhrases picks up to maxContextual topic phrases whose trigger
// words appear in the token stream.
func contextualPhrases(tokens []string) []string {
	present := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		present[tok] = true
	}

	var out []string
	for _, topic := range lexicon.Topics {
		if !slices.ContainsFunc(topic.Triggers, func(t string) bool { return present[t] }) {
			continue
		}
		for _, p := range topic.Phrases {
			if len(out) == maxContextual {
				return out
			}
			out = append(out, p)
		}
	}
	return out
}
