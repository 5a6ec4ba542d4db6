package inserter

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/seo-optimizer/content-optimizer/lexicon"
)

const compoundBound = "after"

var (
	tokenPattern = regexp.MustCompile(`(\S+)(\s*)`)
	commaRun     = regexp.MustCompile(`,(\s*,)+`)
	blankRun     = regexp.MustCompile(`[ \t]+`)
	spaceNewline = regexp.MustCompile(` *\n *`)
)

// token is one whitespace-delimited word of content split into its leading
// punctuation, its lowercase core, its trailing punctuation and the whitespace
// that follows it.
type token struct {
	text  string
	core  string
	lead  string
	trail string
	sep   string
}

func newToken(text, sep string) token {
	isWord := func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
	start := strings.IndexFunc(text, isWord)
	if start < 0 {
		return token{text: text, sep: sep}
	}
	end := strings.LastIndexFunc(text, isWord)
	_, size := utf8.DecodeRuneInString(text[end:])
	end += size
	return token{
		text:  text,
		core:  strings.ToLower(text[start:end]),
		lead:  text[:start],
		trail: text[end:],
		sep:   sep,
	}
}

// pure reports whether the token is a bare word with no punctuation
func (t token) pure() bool {
	return t.core != "" && t.lead == "" && t.trail == "" && strings.IndexFunc(t.core, unicode.IsLetter) >= 0
}

// inline reports whether the token is followed by same-line whitespace
func (t token) inline() bool {
	return !strings.Contains(t.sep, "\n")
}

// same reports whether t and u carry the same word, u optionally ending in
// punctuation.
func (t token) same(u token) bool {
	return t.core != "" && t.core == u.core && u.lead == ""
}

// withEnding keeps t's word but takes u's trailing punctuation and spacing
func (t token) withEnding(u token) token {
	t.text = t.lead + t.text[len(t.lead):len(t.text)-len(t.trail)] + u.trail
	t.trail = u.trail
	t.sep = u.sep
	return t
}

func tokenize(content string) []token {
	matches := tokenPattern.FindAllStringSubmatch(content, -1)
	tokens := make([]token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, newToken(m[1], m[2]))
	}
	return tokens
}

func join(tokens []token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.text)
		b.WriteString(t.sep)
	}
	return b.String()
}

// CleanupRepetitions removes the artifacts keyword splicing tends to leave
// behind. In order it collapses a doubled word (which also reduces a tripled
// one), a doubled two-word phrase, the "w, w w2 after w w2" compound, a doubled
// discourse marker with or without a comma between, runs of commas, and runs
// of blanks. Line breaks are kept so paragraphs survive.
func CleanupRepetitions(content string) string {
	tokens := tokenize(strings.TrimSpace(content))
	tokens = collapseWords(tokens)
	tokens = collapsePhrases(tokens)
	tokens = collapseCompound(tokens)
	tokens = collapseMarkers(tokens)

	out := commaRun.ReplaceAllString(join(tokens), ",")
	out = blankRun.ReplaceAllString(out, " ")
	out = spaceNewline.ReplaceAllStringFunc(out, func(s string) string {
		return strings.Trim(s, " ")
	})
	return strings.TrimSpace(out)
}

// collapseWords folds "w w" into "w"
func collapseWords(tokens []token) []token {
	for i := 0; i+1 < len(tokens); {
		a, b := tokens[i], tokens[i+1]
		if a.pure() && a.inline() && a.same(b) {
			tokens[i] = a.withEnding(b)
			tokens = slices.Delete(tokens, i+1, i+2)
			continue
		}
		i++
	}
	return tokens
}

// collapsePhrases folds "w1 w2 w1 w2" into "w1 w2"
func collapsePhrases(tokens []token) []token {
	for i := 0; i+3 < len(tokens); {
		run := tokens[i : i+4]
		if run[0].pure() && run[1].pure() && run[2].pure() &&
			run[0].inline() && run[1].inline() && run[2].inline() &&
			run[0].same(run[2]) && run[1].same(run[3]) {
			tokens[i+1] = run[1].withEnding(run[3])
			tokens = slices.Delete(tokens, i+2, i+4)
			continue
		}
		i++
	}
	return tokens
}

// collapseCompound folds "w, w w2 after w w2" and "w, w w2 after w w2 w2"
// into "w w2".
func collapseCompound(tokens []token) []token {
	for i := 0; i+5 < len(tokens); {
		t := tokens[i : i+6]
		w, w2 := t[1].core, t[2].core
		match := t[0].core == w && t[0].trail == "," && t[0].lead == "" &&
			t[1].pure() && t[2].pure() && t[3].pure() && t[4].pure() &&
			t[3].core == compoundBound && t[4].core == w && t[5].core == w2 && t[5].lead == "" &&
			w != "" && w2 != ""
		if !match {
			i++
			continue
		}
		last := i + 5
		if last+1 < len(tokens) && t[5].pure() && tokens[last+1].core == w2 && tokens[last+1].lead == "" {
			last++
		}
		tokens[i] = t[1]
		tokens[i+1] = t[2].withEnding(tokens[last])
		tokens = slices.Delete(tokens, i+2, last+1)
		i += 2
	}
	return tokens
}

// collapseMarkers folds "especially especially" and "especially, especially"
func collapseMarkers(tokens []token) []token {
	for i := 0; i+1 < len(tokens); {
		a, b := tokens[i], tokens[i+1]
		if slices.Contains(lexicon.DiscourseMarkers, a.core) && a.lead == "" &&
			(a.trail == "" || a.trail == ",") && a.inline() && a.same(b) {
			tokens[i] = a.withEnding(b)
			tokens = slices.Delete(tokens, i+1, i+2)
			continue
		}
		i++
	}
	return tokens
}
