package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountTerm(t *testing.T) {
	tests := []struct {
		name    string
		content string
		term    string
		want    int
	}{
		{"case insensitive", "Growth drives growth. GROWTH!", "growth", 3},
		{"word boundary", "Regrowth is not growth", "growth", 1},
		{"phrase across whitespace", "content\n  marketing and Content Marketing", "content marketing", 2},
		{"blank term", "anything", "   ", 0},
		{"regex metacharacters are literal", "use c.a.t here", "c.a.t", 1},
		{"trailing symbols", "We write C++ daily, and C++ is fast.", "C++", 2},
		{"trailing symbol not inside longer token", "Tools for C# and C#9 differ.", "c#", 1},
		{"leading dot", "Teams on .NET ship often.", ".NET", 1},
		{"leading dot inside a word", "We migrated from ASP.NET last year.", ".net", 0},
		{"adjacent symbol terms", "C++ C++", "C++", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountTerm(tt.content, tt.term))
		})
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "business", Clean("Business."))
	assert.Equal(t, "don't", Clean("\"Don't,"))
	assert.Equal(t, "", Clean("--"))
}

func TestWordTables(t *testing.T) {
	assert.True(t, IsStopWord("the"))
	assert.False(t, IsStopWord("marketing"))
	assert.True(t, IsConjunction("but"))
	assert.True(t, IsTransition("however"))
	assert.True(t, IsDeterminer("their"))
	assert.True(t, IsActionVerb("delivers"))
	assert.True(t, IsEmphasisAdjective("crucial"))
	assert.True(t, IsGenericVerb("make"))
}

func TestTopicsForKeyword(t *testing.T) {
	names := func(ts []Topic) []string {
		var out []string
		for _, t := range ts {
			out = append(out, t.Name)
		}
		return out
	}

	assert.Contains(t, names(TopicsForKeyword("content marketing")), "marketing")
	assert.Contains(t, names(TopicsForKeyword("cloud platform")), "technology")
	assert.Empty(t, TopicsForKeyword("zebra"))
}
