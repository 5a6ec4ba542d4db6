package analyzer

import (
	"fmt"
	"math"
	"regexp"

	"github.com/seo-optimizer/content-optimizer/lexicon"
)

const (
	minTopicalWordLen = 5
	maxScore          = 100
)

var terminalRuns = regexp.MustCompile(`[.!?]+`)

// repeatedTopicalWords counts distinct content words longer than 4 chars,
// outside the stop list, that appear at least twice.
func repeatedTopicalWords(content string) int {
	counts := make(map[string]int)
	for _, w := range lexicon.Words(content) {
		if len(w) >= minTopicalWordLen && !lexicon.IsStopWord(w) {
			counts[w]++
		}
	}
	n := 0
	for _, c := range counts {
		if c >= 2 {
			n++
		}
	}
	return n
}

// keywordOccurrences sums word-boundary matches of every term; overlapping
// terms are each counted.
func keywordOccurrences(content string, terms []string) int {
	total := 0
	for _, t := range terms {
		total += lexicon.CountTerm(content, t)
	}
	return total
}

func keywordDensity(occurrences, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}
	return math.Round(float64(occurrences)/float64(wordCount)*100*10) / 10
}

func lengthScore(words int) int {
	switch {
	case words >= 300 && words <= 2000:
		return 25
	case words > 2000:
		return 15
	case words >= 150:
		return 20
	case words >= 50:
		return 15
	default:
		return 5
	}
}

func paragraphScore(paragraphs, words int) int {
	if paragraphs == 0 {
		return 8
	}
	avg := float64(words) / float64(paragraphs)
	switch {
	case paragraphs >= 2 && avg >= 30 && avg <= 150:
		return 20
	case avg <= 200:
		return 15
	default:
		return 8
	}
}

func densityScore(density float64) int {
	switch {
	case density >= 1.5 && density <= 4:
		return 20
	case density >= 1 && density < 1.5:
		return 15
	case density >= 0.5 && density < 1:
		return 10
	case density > 4 && density <= 6:
		return 12
	default:
		return 5
	}
}

func readabilityContribution(readability int) int {
	switch {
	case readability >= 70:
		return 20
	case readability >= 50:
		return 18
	case readability >= 35:
		return 15
	case readability >= 20:
		return 12
	default:
		return 8
	}
}

func structureScore(s StructureSignals, content string) int {
	score := 0
	if s.HasHeadings {
		score += 5
	}
	if s.HasLists {
		score += 5
	}
	if len(terminalRuns.FindAllStringIndex(content, -1)) >= 2 {
		score += 5
	}
	return score
}

// balanceBonus rewards keyword use that does not hurt readability
func balanceBonus(occurrences, readability int) int {
	if occurrences >= 2 && readability >= 50 {
		return 5
	}
	return 0
}

func optimizationBonus(occurrences int, density float64, repeated int) int {
	bonus := 0
	if occurrences >= 3 {
		bonus += 5
	}
	if density >= 1.5 && density <= 3.5 {
		bonus += 5
	}
	if repeated >= 2 {
		bonus += 3
	}
	return min(bonus, 10)
}

// ScoreSEO computes the composite 0-100 score, keyword density and ordered
// optimization tips for content against the suggested terms.
func ScoreSEO(content string, terms []string) SEOReport {
	structure := detectStructure(content)
	words := structure.WordCount
	readability := ReadabilityScore(content)
	occurrences := keywordOccurrences(content, terms)
	density := keywordDensity(occurrences, words)
	repeated := repeatedTopicalWords(content)

	score := lengthScore(words)
	score += paragraphScore(structure.ParagraphCount, words)
	score += densityScore(density)
	score += min(occurrences*3, 15)
	score += min(repeated*2, 10)
	score += readabilityContribution(readability)
	score += balanceBonus(occurrences, readability)
	score += structureScore(structure, content)
	score += optimizationBonus(occurrences, density, repeated)

	return SEOReport{
		Score:            max(0, min(maxScore, score)),
		KeywordDensity:   density,
		Occurrences:      occurrences,
		OptimizationTips: generateTips(structure, readability, occurrences, density, repeated),
		Structure:        structure,
	}
}

func generateTips(s StructureSignals, readability, occurrences int, density float64, repeated int) []OptimizationTip {
	var tips []OptimizationTip

	// Paragraph length
	avgParagraph := 0.0
	if s.ParagraphCount > 0 {
		avgParagraph = float64(s.WordCount) / float64(s.ParagraphCount)
	}
	if avgParagraph > 150 {
		tips = append(tips, OptimizationTip{TipWarning, "Break up long paragraphs",
			fmt.Sprintf("Paragraphs average %.0f words. Aim for 30-150 words so readers can scan the page.", avgParagraph)})
	} else {
		tips = append(tips, OptimizationTip{TipSuccess, "Good paragraph length",
			"Paragraphs are short enough to scan comfortably."})
	}

	// Headings
	if s.HasHeadings {
		tips = append(tips, OptimizationTip{TipSuccess, "Headings detected",
			"Subheadings help readers and search engines understand the structure."})
	} else {
		tips = append(tips, OptimizationTip{TipWarning, "Add subheadings",
			"Use H2 and H3 headings to split the content into clear sections."})
	}

	// Links
	if s.HasLinks {
		tips = append(tips, OptimizationTip{TipSuccess, "Links included",
			"Links to related resources add context and credibility."})
	} else {
		tips = append(tips, OptimizationTip{TipInfo, "Add relevant links",
			"Link to authoritative sources and related pages on your site."})
	}

	// Content length
	switch {
	case s.WordCount < 50:
		tips = append(tips, OptimizationTip{TipError, "Content is too thin",
			fmt.Sprintf("Only %d words. Search engines rarely rank pages under 300 words.", s.WordCount)})
	case s.WordCount < 300:
		tips = append(tips, OptimizationTip{TipWarning, "Expand your content",
			fmt.Sprintf("%d words. Aim for at least 300 words for better rankings.", s.WordCount)})
	case s.WordCount <= 2000:
		tips = append(tips, OptimizationTip{TipSuccess, "Good content length",
			fmt.Sprintf("%d words is a solid length for search visibility.", s.WordCount)})
	default:
		tips = append(tips, OptimizationTip{TipInfo, "Long-form content",
			"Long articles rank well when they stay focused. Consider a table of contents."})
	}

	// Keyword density
	switch {
	case occurrences == 0:
		tips = append(tips, OptimizationTip{TipWarning, "No target keywords found",
			"Work your primary keywords into the introduction, headings and body."})
	case density < 1.5:
		tips = append(tips, OptimizationTip{TipInfo, "Good keyword foundation",
			fmt.Sprintf("Keyword density is %.1f%%. A few more natural mentions would strengthen relevance.", density)})
	case density <= 4:
		tips = append(tips, OptimizationTip{TipSuccess, "Balanced keyword density",
			fmt.Sprintf("Keyword density of %.1f%% is in the optimal range.", density)})
	case density <= 6:
		tips = append(tips, OptimizationTip{TipWarning, "High keyword density",
			fmt.Sprintf("Keyword density of %.1f%% is high. Use synonyms and related terms.", density)})
	default:
		tips = append(tips, OptimizationTip{TipError, "Keyword stuffing detected",
			fmt.Sprintf("Keyword density of %.1f%% may be penalised. Remove repeated keywords.", density)})
	}

	// Readability
	if readability >= 60 {
		tips = append(tips, OptimizationTip{TipSuccess, "Easy to read",
			fmt.Sprintf("Readability score of %d suits a broad audience.", readability)})
	} else {
		tips = append(tips, OptimizationTip{TipWarning, "Improve readability",
			fmt.Sprintf("Readability score of %d. Use shorter sentences and simpler words.", readability)})
	}

	if repeated >= 3 {
		tips = append(tips, OptimizationTip{TipSuccess, "Strong topical focus",
			fmt.Sprintf("%d key terms recur throughout the content, signalling a clear topic.", repeated)})
	}

	tips = append(tips, metaDescriptionTip)
	return tips
}

var metaDescriptionTip = OptimizationTip{TipInfo, "Optimize meta description",
	"Write a 120-160 character meta description that includes your primary keyword."}
