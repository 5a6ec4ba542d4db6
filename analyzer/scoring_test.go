package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"", 1},
		{"the", 1},
		{"cat", 1},
		{"table", 2},
		{"running", 2},
		{"beautiful", 3},
		{"make", 1},
		{"yellow", 2},
		{"rhythm", 1},
		{"Hello!", 2},
		{"\"Optimization,\"", 5},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, CountSyllables(tt.word))
		})
	}
}

func TestCountSyllablesNeverZero(t *testing.T) {
	for _, w := range []string{"bcdfg", "shh", "xyz", "1234", "...", "ées"} {
		assert.GreaterOrEqual(t, CountSyllables(w), 1, w)
	}
}

func TestReadabilityScore(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0, ReadabilityScore("   "))
	})

	t.Run("simple text clamps at 100", func(t *testing.T) {
		assert.Equal(t, 100, ReadabilityScore("The cat sat on the mat."))
	})

	t.Run("short complex text floors at 40", func(t *testing.T) {
		text := "Notwithstanding institutionalization, internationalization characteristically necessitates extraordinary organizational considerations"
		assert.Equal(t, 40, ReadabilityScore(text))
	})

	t.Run("long complex text can drop below 40", func(t *testing.T) {
		sentence := "Comprehensive organizational transformation initiatives necessitate extraordinarily sophisticated interdepartmental communication infrastructures, "
		text := strings.Repeat(sentence, 12) + "consequently."
		assert.Less(t, ReadabilityScore(text), 40)
	})

	t.Run("bounds", func(t *testing.T) {
		for _, text := range []string{"a", "Go.", sampleArticle, strings.Repeat("word ", 500)} {
			score := ReadabilityScore(text)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	})
}

func TestExtractPhrases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "blank",
			content: "  \n ",
			want:    nil,
		},
		{
			name:    "repeated phrase and words",
			content: "Solar panels reduce energy bills. Solar panels last decades. Installers mount solar panels quickly.",
			want:    []string{"solar panels", "solar", "panels"},
		},
		{
			name:    "contextual topic phrases",
			content: "Our software team ships software weekly.",
			want:    []string{"software", "digital transformation", "technology solutions", "software development"},
		},
		{
			name:    "frequency fallback",
			content: "Quick brown fox.",
			want:    []string{"quick", "brown", "fox"},
		},
		{
			name:    "generic fallback",
			content: "It is what it is, and so on.",
			want:    genericKeywords,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPhrases(tt.content))
		})
	}
}

func TestExtractPhrasesLimits(t *testing.T) {
	content := strings.Repeat("Cloud software helps business growth. Marketing campaigns build brand awareness. "+
		"Students value online courses. Doctors track patient wellness. Budget planning protects money. ", 3)

	terms := ExtractPhrases(content)
	require.NotEmpty(t, terms)
	assert.LessOrEqual(t, len(terms), maxSuggestedTerms)

	seen := map[string]bool{}
	for _, term := range terms {
		key := strings.ToLower(term)
		assert.False(t, seen[key], "duplicate term %q", term)
		seen[key] = true
	}
}

func TestDetectStructure(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		headings bool
		lists    bool
		links    bool
	}{
		{"plain", "Just a sentence. Another one.", false, false, false},
		{"markdown heading", "# Title\n\nBody text goes here.", true, false, false},
		{"isolated short line", "Introduction\n\nThis paragraph explains the topic in full.", true, false, false},
		{"bullet list", "Items to pack:\n- tent\n- stove", false, true, false},
		{"numbered list", "Steps follow.\n1. plan\n2. build", false, true, false},
		{"bare url", "Visit www.example.com for details.", false, false, true},
		{"markdown link", "Read the [docs](/docs) first.", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := detectStructure(tt.content)
			assert.Equal(t, tt.headings, s.HasHeadings, "headings")
			assert.Equal(t, tt.lists, s.HasLists, "lists")
			assert.Equal(t, tt.links, s.HasLinks, "links")
		})
	}

	s := detectStructure("Just a sentence. Another one.")
	assert.Equal(t, 5, s.WordCount)
	assert.Equal(t, 2, s.SentenceCount)
	assert.Equal(t, 1, s.ParagraphCount)
}

func TestScoreSEOThinContent(t *testing.T) {
	report := ScoreSEO("Short text.", nil)

	// length 5 + paragraph 15 + density 5 + readability 20
	assert.Equal(t, 45, report.Score)
	assert.Equal(t, 0.0, report.KeywordDensity)

	types := make([]TipType, 0, len(report.OptimizationTips))
	for _, tip := range report.OptimizationTips {
		types = append(types, tip.Type)
	}
	assert.Equal(t, []TipType{TipSuccess, TipWarning, TipInfo, TipError, TipWarning, TipSuccess, TipInfo}, types)
	assert.Equal(t, metaDescriptionTip, report.OptimizationTips[len(report.OptimizationTips)-1])
}

func TestScoreSEODensity(t *testing.T) {
	content := "Solar panels cut bills. Solar panels last. We like solar panels."

	report := ScoreSEO(content, []string{"solar panels"})
	assert.Equal(t, 3, report.Occurrences)
	assert.Equal(t, 27.3, report.KeywordDensity)
	assert.Equal(t, TipError, report.OptimizationTips[4].Type)
	assert.Equal(t, "Keyword stuffing detected", report.OptimizationTips[4].Title)

	overlapping := ScoreSEO(content, []string{"solar panels", "solar"})
	assert.Equal(t, 6, overlapping.Occurrences)
}

func TestScoreSEODensityBands(t *testing.T) {
	tests := []struct {
		density float64
		score   int
	}{
		{0, 5},
		{0.4, 5},
		{0.5, 10},
		{1.0, 15},
		{1.5, 20},
		{4.0, 20},
		{4.1, 12},
		{6.0, 12},
		{6.1, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.score, densityScore(tt.density), "density %.1f", tt.density)
	}
}

func TestLengthScoreBands(t *testing.T) {
	tests := []struct {
		words int
		score int
	}{
		{0, 5},
		{49, 5},
		{50, 15},
		{149, 15},
		{150, 20},
		{299, 20},
		{300, 25},
		{2000, 25},
		{2001, 15},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.score, lengthScore(tt.words), "%d words", tt.words)
	}
}

func TestParagraphScore(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs int
		words      int
		score      int
	}{
		{"no paragraphs", 0, 0, 8},
		{"several balanced paragraphs", 2, 100, 20},
		{"balanced bounds", 4, 120, 20},
		{"single paragraph", 1, 100, 15},
		{"many short paragraphs", 3, 30, 15},
		{"walls of text", 2, 500, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.score, paragraphScore(tt.paragraphs, tt.words))
		})
	}
}

func TestStructureScore(t *testing.T) {
	tests := []struct {
		name    string
		signals StructureSignals
		content string
		score   int
	}{
		{"nothing", StructureSignals{}, "one sentence only", 0},
		{"single terminator run", StructureSignals{}, "Wait... what", 0},
		{"multiple sentences", StructureSignals{}, "One. Two!", 5},
		{"heading", StructureSignals{HasHeadings: true}, "Title", 5},
		{"list", StructureSignals{HasLists: true}, "Items", 5},
		{"everything", StructureSignals{HasHeadings: true, HasLists: true}, "One. Two? Three.", 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.score, structureScore(tt.signals, tt.content))
		})
	}
}

func TestOptimizationBonus(t *testing.T) {
	assert.Equal(t, 0, optimizationBonus(0, 0, 0))
	assert.Equal(t, 5, optimizationBonus(3, 5.0, 0))
	assert.Equal(t, 5, optimizationBonus(1, 1.5, 1))
	assert.Equal(t, 3, optimizationBonus(2, 4.0, 2))
	assert.Equal(t, 8, optimizationBonus(0, 3.5, 2))
	assert.Equal(t, 10, optimizationBonus(3, 2.0, 2), "capped at 10")
}

func TestBalanceBonus(t *testing.T) {
	assert.Equal(t, 5, balanceBonus(2, 50))
	assert.Equal(t, 5, balanceBonus(7, 90))
	assert.Equal(t, 0, balanceBonus(1, 90))
	assert.Equal(t, 0, balanceBonus(2, 49))
}

func TestTopicalFocusTip(t *testing.T) {
	signals := StructureSignals{WordCount: 400, SentenceCount: 20, ParagraphCount: 4}
	titles := func(tips []OptimizationTip) []string {
		var out []string
		for _, tip := range tips {
			out = append(out, tip.Title)
		}
		return out
	}

	focused := generateTips(signals, 65, 8, 2.0, 3)
	assert.Contains(t, titles(focused), "Strong topical focus")
	assert.Equal(t, metaDescriptionTip, focused[len(focused)-1])

	scattered := generateTips(signals, 65, 8, 2.0, 2)
	assert.NotContains(t, titles(scattered), "Strong topical focus")
	assert.Len(t, scattered, len(focused)-1)
}

func TestScoreSEOBounds(t *testing.T) {
	inputs := []string{
		"x",
		sampleArticle,
		strings.Repeat("seo seo seo. ", 400),
		strings.Repeat("# Heading\n\n- item one\n- item two\n\nA paragraph about content strategy and content marketing. ", 60),
	}
	for _, content := range inputs {
		report := ScoreSEO(content, ExtractPhrases(content))
		assert.GreaterOrEqual(t, report.Score, 0)
		assert.LessOrEqual(t, report.Score, 100)
		assert.NotEmpty(t, report.OptimizationTips)
	}
}

func TestScoreSEOWellStructuredBeatsThin(t *testing.T) {
	rich := ScoreSEO(sampleArticle, ExtractPhrases(sampleArticle))
	thin := ScoreSEO("Short text.", nil)
	assert.Greater(t, rich.Score, thin.Score)
}

func TestNormalizeContent(t *testing.T) {
	plain := "No markup here, just words."
	assert.Equal(t, plain, NormalizeContent(plain))
	assert.False(t, LooksLikeHTML(plain))

	html := "<h2>Pricing</h2><p>Plans start small.</p><ul><li>Basic</li><li>Pro</li></ul>"
	assert.True(t, LooksLikeHTML(html))

	out := NormalizeContent(html)
	assert.NotContains(t, out, "<")
	assert.Contains(t, out, "Pricing")
	assert.Contains(t, out, "Plans start small.")
	assert.True(t, detectStructure(out).HasLists)
}

func TestSyntheticMetrics(t *testing.T) {
	m := SyntheticMetrics{}

	v1, d1 := m.Estimate("content marketing")
	v2, d2 := m.Estimate("Content Marketing")
	assert.Equal(t, v1, v2)
	assert.Equal(t, d1, d2)

	_, d := m.Estimate("long tail keyword phrase")
	assert.Equal(t, DifficultyLow, d)

	assert.Equal(t, "999", formatVolume(999))
	assert.Equal(t, "1.5K", formatVolume(1500))
}
