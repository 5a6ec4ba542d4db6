package inserter

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/seo-optimizer/content-optimizer/lexicon"
)

const (
	minSharedRoot = 4
	minStemLen    = 3
)

var (
	nounSuffix   = regexp.MustCompile(`(?:tion|sion|ment|ness|ity|ty|er|or|ist|ism)$`)
	verbalSuffix = regexp.MustCompile(`(?:ing|ed|ly)$`)
	stemSuffix   = regexp.MustCompile(`(?:ing|ed|es|s|ly|er|tion)$`)
	doubleSpace  = regexp.MustCompile(`[ \t]{2,}`)
)

// CreateNaturalInsertion splices keyword into words before index pos and
// returns the rebuilt sentence. Connective words are added from the
// neighbouring words so the result reads as naturally as a fixed rule set
// allows.
func CreateNaturalInsertion(words []string, pos int, keyword string) string {
	pos = max(0, min(pos, len(words)))
	insertion := insertionPhrase(words, pos, keyword)

	out := make([]string, 0, len(words)+1)
	out = append(out, words[:pos]...)
	out = append(out, insertion)
	out = append(out, words[pos:]...)

	return strings.TrimSpace(doubleSpace.ReplaceAllString(strings.Join(out, " "), " "))
}

// insertionPhrase returns keyword with whatever connective the neighbours of
// pos call for, capitalized when it opens the sentence. pos must be within
// [0, len(words)].
func insertionPhrase(words []string, pos int, keyword string) string {
	var rawPrev, prev, next string
	if pos > 0 {
		rawPrev = words[pos-1]
		prev = lexicon.Clean(rawPrev)
	}
	if pos < len(words) {
		next = lexicon.Clean(words[pos])
	}

	insertion := connect(keyword, rawPrev, prev, next, words[max(0, pos-2):pos])
	if pos == 0 || (pos == 1 && isPunctuation(words[0])) {
		insertion = capitalize(insertion)
	}
	return insertion
}

// connect applies the first matching splice rule
func connect(keyword, rawPrev, prev, next string, context []string) string {
	switch {
	case lexicon.IsActionVerb(prev):
		return "and " + keyword
	case lexicon.IsRelativePronoun(next):
		return keyword + " which"
	case lexicon.IsPreposition(prev):
		return keyword
	case strings.HasSuffix(rawPrev, ",") || prev == "and":
		return keyword
	case lexicon.IsTransition(prev):
		return keyword
	case lexicon.IsEmphasisAdjective(next):
		return keyword + " and"
	case sharesRoot(context, keyword):
		return "including " + keyword
	}

	if !strings.Contains(keyword, " ") && looksLikeNoun(strings.ToLower(keyword)) && !lexicon.IsDeterminer(prev) {
		return article(keyword) + " " + keyword
	}
	if prev != "" && !lexicon.IsStopWord(prev) && len(prev) > 2 {
		return "and " + keyword
	}
	return keyword
}

// sharesRoot reports whether a context word and a keyword word share a prefix
// of at least four characters or reduce to the same stem.
func sharesRoot(context []string, keyword string) bool {
	kwWords := lexicon.Words(keyword)
	for _, raw := range context {
		w := lexicon.Clean(raw)
		if len(w) < minStemLen {
			continue
		}
		for _, kw := range kwWords {
			if commonPrefixLen(w, kw) >= minSharedRoot {
				return true
			}
			if s := stem(w); len(s) >= minStemLen && s == stem(kw) {
				return true
			}
		}
	}
	return false
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func stem(w string) string {
	return stemSuffix.ReplaceAllString(w, "")
}

func looksLikeNoun(w string) bool {
	return nounSuffix.MatchString(w) || (len(w) > 4 && !verbalSuffix.MatchString(w))
}

func article(w string) string {
	if r, _ := utf8.DecodeRuneInString(strings.ToLower(w)); slices.Contains([]rune("aeiou"), r) {
		return "an"
	}
	return "a"
}

func isPunctuation(w string) bool {
	return w != "" && strings.IndexFunc(w, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) < 0
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
