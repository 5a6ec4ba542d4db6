// Package inserter places keywords into existing prose. It refuses keywords
// that are already present, picks a host sentence and a word position inside
// it, splices the keyword in with a small connective where the neighbours call
// for one, and finally scrubs the repetition artifacts splicing leaves behind.
//
// Everything here is a synchronous function of its string inputs.
package inserter

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/phuslu/log"
	"github.com/seo-optimizer/content-optimizer/lexicon"
)

// ErrInternal wraps an unexpected fault during insertion. No partial content
// is returned alongside it.
var ErrInternal = errors.New("internal insertion failure")

// Engine performs single and bulk keyword insertion
type Engine struct{}

// New creates a new Engine instance
func New() *Engine {
	return &Engine{}
}

// BulkResult is the outcome of InsertBulk. Inserted and Skipped keep the
// request order and together hold every requested keyword exactly once.
type BulkResult struct {
	Content  string
	Inserted []string
	Skipped  []string
}

// Insert places keyword into content and returns the new content. position,
// when non-nil and within range, selects the host sentence by index.
//
// Content is returned unchanged when the keyword is blank, already present,
// or the insertion would not lengthen the text.
func (e *Engine) Insert(content, keyword string, position *int) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("panic", fmt.Sprint(r)).Str("stack", string(debug.Stack())).Msg("insertion panicked")
			out, err = "", fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	keyword = normalizeSpace(keyword)
	if keyword == "" || IsDuplicate(content, keyword) {
		return content, nil
	}

	spliced := splice(content, keyword, position)
	result := CleanupRepetitions(spliced)
	if len(result) <= len(content) || !lexicon.ContainsTerm(result, keyword) {
		result = spliced
	}
	if len(result) <= len(content) {
		return content, nil
	}
	return result, nil
}

// InsertBulk inserts keywords one at a time in order, each checked against
// the content as modified by the ones before it. A keyword is skipped when it
// is blank or already present, when inserting it would not lengthen the
// content, or when it would put its first word twice in a row.
func (e *Engine) InsertBulk(content string, keywords []string) (res BulkResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("panic", fmt.Sprint(r)).Str("stack", string(debug.Stack())).Msg("bulk insertion panicked")
			res, err = BulkResult{}, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	res = BulkResult{Inserted: []string{}, Skipped: []string{}}
	current := content
	var placed []string

	for _, requested := range keywords {
		keyword := normalizeSpace(requested)
		if keyword == "" || IsDuplicate(current, keyword) {
			res.Skipped = append(res.Skipped, requested)
			continue
		}

		candidate := splice(current, keyword, nil)
		if len(candidate) <= len(current) || repeatsFirstWord(current, candidate, keyword) {
			log.Debug().Str("keyword", keyword).Msg("bulk insertion skipped keyword")
			res.Skipped = append(res.Skipped, requested)
			continue
		}

		current = candidate
		placed = append(placed, keyword)
		res.Inserted = append(res.Inserted, requested)
	}

	res.Content = CleanupRepetitions(current)
	for _, keyword := range placed {
		if !lexicon.ContainsTerm(res.Content, keyword) {
			res.Content = current
			break
		}
	}
	return res, nil
}

// splice inserts keyword without any cleanup. Content with no sentence
// terminators gets the keyword as a leading sentence of its own.
func splice(content, keyword string, position *int) string {
	doc := splitSentences(content)
	if len(doc.sentences) == 0 {
		if body := strings.TrimSpace(content); body != "" {
			return keyword + ". " + body
		}
		return keyword + "."
	}

	idx := FindOptimalInsertionPosition(doc.texts(), keyword, position)
	host := &doc.sentences[idx]
	host.text = spliceSentence(host.text, keyword)
	return doc.String()
}

// spliceSentence is CreateNaturalInsertion over a sentence that keeps the
// sentence's own spacing, so line breaks inside it survive.
func spliceSentence(s, keyword string) string {
	tokens := tokenize(s)
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.text
	}

	pos := max(0, min(FindBestWordPosition(words, keyword), len(words)))
	phrase := insertionPhrase(words, pos, keyword)

	var b strings.Builder
	for i, t := range tokens {
		if i == pos {
			b.WriteString(phrase)
			b.WriteByte(' ')
		}
		b.WriteString(t.text)
		if i == len(tokens)-1 && pos == len(tokens) {
			b.WriteByte(' ')
			b.WriteString(phrase)
		}
		b.WriteString(t.sep)
	}
	return b.String()
}

func repeatsFirstWord(before, after, keyword string) bool {
	first := strings.Fields(keyword)[0]
	doubled := first + " " + first
	return lexicon.CountTerm(after, doubled) > lexicon.CountTerm(before, doubled)
}
