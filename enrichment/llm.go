package enrichment

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxPromptChars = 12000
	llmMaxTokens   = 1024
)

const extractionPrompt = `Extract SEO keywords and named entities from the text below.
Respond with JSON only, no prose, in exactly this shape:
{"keywords":[{"text":"..."}],"entities":[{"text":"...","type":"..."}]}
Return at most 10 keywords, most relevant first. Keywords must be phrases that a
searcher would type, 1 to 3 words each.

Text:
`

func buildPrompt(text string) string {
	if len(text) > maxPromptChars {
		cut := maxPromptChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return extractionPrompt + text
}

// parseLLMResponse extracts the JSON object from a model reply. Models often
// wrap JSON in markdown fences or add a sentence around it.
func parseLLMResponse(reply string) (*Result, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, errors.New("empty model response")
	}

	if strings.HasPrefix(reply, "```") {
		reply = strings.TrimPrefix(reply, "```json")
		reply = strings.TrimPrefix(reply, "```")
		reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in model response")
	}
	return decodeResult([]byte(reply[start : end+1]))
}
