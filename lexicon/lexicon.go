// Package lexicon holds the fixed English word tables shared by the scoring
// and insertion engines, plus the term-matching helpers both rely on.
//
// Every table is built once at package init and never mutated, so all
// functions are safe for concurrent use.
package lexicon

import (
	"regexp"
	"strings"
	"unicode"
)

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}

// stopWords are pronouns, articles, auxiliaries and other function words.
var stopWords = newWordSet(
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
	"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing",
	"down", "during", "each", "few", "for", "from", "further", "had", "has", "have",
	"having", "he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
	"i", "if", "in", "into", "is", "it", "its", "itself", "just", "me",
	"more", "most", "my", "myself", "no", "nor", "not", "now", "of", "off",
	"on", "once", "only", "or", "other", "our", "ours", "ourselves", "out", "over",
	"own", "same", "she", "should", "so", "some", "such", "than", "that", "the",
	"their", "theirs", "them", "themselves", "then", "there", "these", "they", "this", "those",
	"through", "to", "too", "under", "until", "up", "very", "was", "we", "were",
	"what", "when", "where", "which", "while", "who", "whom", "why", "will", "with",
	"would", "you", "your", "yours", "yourself", "yourselves", "also", "may", "might", "must",
	"shall", "upon", "within", "without", "across", "among", "via", "yet", "however", "therefore",
)

// genericVerbs never anchor a multi-word phrase candidate.
var genericVerbs = newWordSet(
	"will", "get", "gets", "make", "makes", "made", "take", "takes", "give", "gives",
	"have", "has", "come", "comes", "goes", "know", "like", "want", "need", "needs",
	"said", "says", "used", "using", "become", "becomes",
)

var (
	conjunctions       = newWordSet("and", "or", "but", "yet", "so")
	transitions        = newWordSet("however", "moreover", "furthermore", "additionally", "therefore", "consequently", "meanwhile")
	relativeWords      = newWordSet("which", "that", "who", "where", "when", "because", "since", "while", "although")
	relativePronouns   = newWordSet("which", "that", "who", "where")
	determiners        = newWordSet("the", "a", "an", "this", "that", "these", "those", "his", "her", "its", "our", "their")
	actionVerbs        = newWordSet("provides", "offers", "includes", "features", "supports", "delivers", "ensures", "creates", "builds", "develops")
	prepositions       = newWordSet("for", "with", "through", "via", "using")
	emphasisAdjectives = newWordSet("important", "essential", "crucial", "vital", "key", "major", "significant")
)

// DiscourseMarkers are the words the cleanup pass collapses when doubled.
var DiscourseMarkers = []string{"especially", "particularly", "specifically", "generally", "after", "before", "during"}

// The predicates below report membership of a lowercase word in one of the
// fixed word classes used by the insertion heuristics.
func IsStopWord(w string) bool          { return stopWords.has(w) }
func IsGenericVerb(w string) bool       { return genericVerbs.has(w) }
func IsConjunction(w string) bool       { return conjunctions.has(w) }
func IsTransition(w string) bool        { return transitions.has(w) }
func IsRelativeWord(w string) bool      { return relativeWords.has(w) }
func IsRelativePronoun(w string) bool   { return relativePronouns.has(w) }
func IsDeterminer(w string) bool        { return determiners.has(w) }
func IsActionVerb(w string) bool        { return actionVerbs.has(w) }
func IsPreposition(w string) bool       { return prepositions.has(w) }
func IsEmphasisAdjective(w string) bool { return emphasisAdjectives.has(w) }

var wordToken = regexp.MustCompile(`\w+`)

// Words returns the lowercase word-character tokens of s.
func Words(s string) []string {
	return wordToken.FindAllString(strings.ToLower(s), -1)
}

// Clean strips leading and trailing non-alphanumeric runes and lowercases w.
func Clean(w string) string {
	return strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
}

// TermPattern compiles a case-insensitive pattern for term. Internal
// whitespace in term matches any whitespace run. A \b anchor is only emitted
// on a side whose edge character is a word character, so terms such as "C++"
// or ".NET" can match themselves; TermMatches checks the other sides. Returns
// nil for a blank term.
func TermPattern(term string) *regexp.Regexp {
	parts := strings.Fields(term)
	if len(parts) == 0 {
		return nil
	}
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	expr := strings.Join(parts, `\s+`)
	if startsWithWordChar(term) {
		expr = `\b` + expr
	}
	if endsWithWordChar(term) {
		expr += `\b`
	}
	return regexp.MustCompile(`(?i)` + expr)
}

// isWordByte mirrors the ASCII \w class used by regexp.
func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func startsWithWordChar(term string) bool {
	t := strings.TrimSpace(term)
	return t != "" && isWordByte(t[0])
}

func endsWithWordChar(term string) bool {
	t := strings.TrimSpace(term)
	return t != "" && isWordByte(t[len(t)-1])
}

// TermMatches returns the [start, end) spans of term in content. On a side
// where term begins or ends with punctuation the neighbouring character must
// not be a word character, so ".NET" does not match inside "ASP.NET".
func TermMatches(content, term string) [][]int {
	re := TermPattern(term)
	if re == nil {
		return nil
	}
	checkStart, checkEnd := !startsWithWordChar(term), !endsWithWordChar(term)

	var out [][]int
	for _, loc := range re.FindAllStringIndex(content, -1) {
		if checkStart && loc[0] > 0 && isWordByte(content[loc[0]-1]) {
			continue
		}
		if checkEnd && loc[1] < len(content) && isWordByte(content[loc[1]]) {
			continue
		}
		out = append(out, loc)
	}
	return out
}

// CountTerm counts whole-term, case-insensitive occurrences of term in content.
func CountTerm(content, term string) int {
	return len(TermMatches(content, term))
}

// ContainsTerm reports whether term occurs in content as a whole term.
func ContainsTerm(content, term string) bool {
	return CountTerm(content, term) > 0
}
