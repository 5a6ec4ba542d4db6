package analyzer

import (
	"math"
	"regexp"
	"strings"
)

const shortContentWords = 100

var sentenceEnders = regexp.MustCompile(`[.!?]+`)

// splitSentences splits on terminator runs and drops blank pieces
func splitSentences(content string) []string {
	var out []string
	for _, s := range sentenceEnders.Split(content, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ReadabilityScore returns a Flesch Reading Ease score in [0,100]. Content
// under 100 words never scores below 40.
func ReadabilityScore(content string) int {
	words := strings.Fields(content)
	if len(words) == 0 {
		return 0
	}

	sentences := len(splitSentences(content))
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += CountSyllables(w)
	}

	avgWords := float64(len(words)) / float64(sentences)
	avgSyllables := float64(syllables) / float64(len(words))
	score := 206.835 - 1.015*avgWords - 84.6*avgSyllables

	score = math.Max(0, math.Min(100, score))
	if len(words) < shortContentWords {
		score = math.Max(score, 40)
	}
	return int(math.Round(score))
}
