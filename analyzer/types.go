package analyzer

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Difficulty is the estimated ranking competition for a keyword
type Difficulty string

const (
	DifficultyLow    Difficulty = "Low"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHigh   Difficulty = "High"
)

// TipType classifies an optimization tip
type TipType string

const (
	TipSuccess TipType = "success"
	TipWarning TipType = "warning"
	TipError   TipType = "error"
	TipInfo    TipType = "info"
)

// AnalysisResult represents the complete analysis of a piece of content
type AnalysisResult struct {
	ReadabilityScore  int                 `json:"readabilityScore"`
	SEOScore          int                 `json:"seoScore"`
	KeywordDensity    float64             `json:"keywordDensity"`
	SuggestedKeywords []KeywordSuggestion `json:"suggestedKeywords"`
	OptimizationTips  []OptimizationTip   `json:"optimizationTips"`
	RawExternalData   json.RawMessage     `json:"rawExternalData"`
	Structure         StructureSignals    `json:"structure"`
	Degraded          bool                `json:"degraded"`
}

// clone copies r so callers never share slices with a cached entry
func (r *AnalysisResult) clone() *AnalysisResult {
	c := *r
	c.SuggestedKeywords = slices.Clone(r.SuggestedKeywords)
	c.OptimizationTips = slices.Clone(r.OptimizationTips)
	c.RawExternalData = bytes.Clone(r.RawExternalData)
	return &c
}

type KeywordSuggestion struct {
	Term       string     `json:"term"`
	Volume     string     `json:"volume"`
	Difficulty Difficulty `json:"difficulty"`
	Inserted   bool       `json:"inserted"`
}

type OptimizationTip struct {
	Type        TipType `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
}

// StructureSignals summarises the layout features the scorer rewards
type StructureSignals struct {
	WordCount      int  `json:"wordCount"`
	SentenceCount  int  `json:"sentenceCount"`
	ParagraphCount int  `json:"paragraphCount"`
	HasHeadings    bool `json:"hasHeadings"`
	HasLists       bool `json:"hasLists"`
	HasLinks       bool `json:"hasLinks"`
}

// SEOReport is the output of the composite scorer
type SEOReport struct {
	Score            int               `json:"score"`
	KeywordDensity   float64           `json:"keywordDensity"`
	Occurrences      int               `json:"occurrences"`
	OptimizationTips []OptimizationTip `json:"optimizationTips"`
	Structure        StructureSignals  `json:"structure"`
}
