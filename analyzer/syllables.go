package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	silentEnding = regexp.MustCompile(`(?:[^laeiouy]es|ed|[^laeiouy]e)$`)
	leadingY     = regexp.MustCompile(`^y`)
)

// CountSyllables estimates the syllables in a single word. It is a vowel-run
// heuristic: deterministic, never below 1.
func CountSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if len(word) <= 3 {
		return 1
	}

	word = silentEnding.ReplaceAllString(word, "")
	word = leadingY.ReplaceAllString(word, "")

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if count == 0 {
		return 1
	}
	return count
}
