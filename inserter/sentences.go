package inserter

import (
	"regexp"
	"strings"

	"github.com/seo-optimizer/content-optimizer/lexicon"
)

const (
	affixLen             = 3
	positionWindow       = 0.7
	minPreferredWords    = 8
	maxPreferredWords    = 25
	minFallbackWords     = 6
	fallbackSpanStart    = 0.2
	fallbackSpanEnd      = 0.8
	topicAffinityPerTerm = 2
)

var sentenceBreak = regexp.MustCompile(`[.!?]+\s+`)

// sentence is one terminator-inclusive piece of content and the whitespace
// that followed it, so the document can be rebuilt with its original layout.
type sentence struct {
	text string
	sep  string
}

// document is content split into sentences. lead is whitespace before the
// first sentence.
type document struct {
	lead      string
	sentences []sentence
}

// splitSentences splits after runs of . ! or ? followed by whitespace. Content
// with no terminal punctuation at all has no sentences.
func splitSentences(content string) document {
	trimmed := strings.TrimLeft(content, " \t\r\n")
	doc := document{lead: content[:len(content)-len(trimmed)]}
	if !strings.ContainsAny(trimmed, ".!?") {
		return doc
	}

	start := 0
	for _, m := range sentenceBreak.FindAllStringIndex(trimmed, -1) {
		match := trimmed[m[0]:m[1]]
		sep := strings.TrimLeft(match, ".!?")
		end := m[1] - len(sep)
		doc.sentences = append(doc.sentences, sentence{text: trimmed[start:end], sep: sep})
		start = m[1]
	}
	if start < len(trimmed) {
		doc.sentences = append(doc.sentences, sentence{text: trimmed[start:]})
	}
	return doc
}

func (d document) texts() []string {
	out := make([]string, len(d.sentences))
	for i, s := range d.sentences {
		out[i] = s.text
	}
	return out
}

func (d document) String() string {
	var b strings.Builder
	b.WriteString(d.lead)
	for _, s := range d.sentences {
		b.WriteString(s.text)
		b.WriteString(s.sep)
	}
	return b.String()
}

// SplitSentences returns the terminator-inclusive sentences of content
func SplitSentences(content string) []string {
	return splitSentences(content).texts()
}

// FindOptimalInsertionPosition picks the sentence index that best hosts
// keyword. A position within bounds is returned as-is. Otherwise every
// sentence is scored for lexical similarity to the keyword, topic affinity,
// position, length and clause simplicity, and the first highest scorer wins.
// It returns -1 when there are no sentences.
func FindOptimalInsertionPosition(sentences []string, keyword string, position *int) int {
	n := len(sentences)
	if n == 0 {
		return -1
	}
	if position != nil && *position >= 0 && *position < n {
		return *position
	}

	kwWords := lexicon.Words(keyword)
	var related []string
	for _, t := range lexicon.TopicsForKeyword(keyword) {
		related = append(related, t.Related...)
	}

	best, bestScore := 0, 0
	for i, s := range sentences {
		score := similarityScore(kwWords, lexicon.Words(s))
		for _, term := range related {
			if lexicon.ContainsTerm(s, term) {
				score += topicAffinityPerTerm
			}
		}
		if i > 0 && float64(i) < positionWindow*float64(n) {
			score++
		}
		if wc := len(strings.Fields(s)); wc > minPreferredWords && wc < maxPreferredWords {
			score++
		}
		if strings.Contains(s, ",") && !strings.ContainsAny(s, ";:") {
			score++
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if bestScore > 0 {
		return best
	}
	return fallbackSentence(sentences)
}

// similarityScore adds +3 for containment, +2 for a shared prefix and +1 for
// a shared suffix over every keyword-word and sentence-word pair.
func similarityScore(kwWords, sentenceWords []string) int {
	score := 0
	for _, kw := range kwWords {
		if len(kw) < affixLen {
			continue
		}
		for _, w := range sentenceWords {
			if len(w) < affixLen {
				continue
			}
			if strings.Contains(kw, w) || strings.Contains(w, kw) {
				score += 3
			}
			if kw[:affixLen] == w[:affixLen] {
				score += 2
			}
			if kw[len(kw)-affixLen:] == w[len(w)-affixLen:] {
				score++
			}
		}
	}
	return score
}

// fallbackSentence returns the longest sentence of at least six words in the
// middle of the document, else the middle sentence, else the first.
func fallbackSentence(sentences []string) int {
	n := len(sentences)
	lo := int(fallbackSpanStart * float64(n))
	hi := min(int(fallbackSpanEnd*float64(n)), n-1)

	best, bestWords := -1, minFallbackWords-1
	for i := lo; i <= hi; i++ {
		if wc := len(strings.Fields(sentences[i])); wc > bestWords {
			best, bestWords = i, wc
		}
	}
	switch {
	case best >= 0:
		return best
	case n >= 3:
		return n / 2
	default:
		return 0
	}
}
