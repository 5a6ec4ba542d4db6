package analyzer

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/seo-optimizer/content-optimizer/enrichment"
	"github.com/seo-optimizer/content-optimizer/lexicon"
	"github.com/seo-optimizer/content-optimizer/stats"
)

var (
	// ErrEmptyContent is returned when there is no text to analyze
	ErrEmptyContent = errors.New("content is empty")
	// ErrInternal wraps an unexpected fault during analysis
	ErrInternal = errors.New("internal analysis failure")
)

const (
	maxSuggestions           = 10
	defaultEnrichmentTimeout = 5 * time.Second
	defaultCacheTTL          = 30 * time.Minute
	defaultCacheSize         = 1000
)

var degradedTip = OptimizationTip{TipInfo, "Limited analysis",
	"External keyword enrichment is unavailable. Suggestions are based on local text analysis only."}

// Options configures an Analyzer. Zero values select local-only analysis
// with an in-memory cache and synthetic keyword metrics.
type Options struct {
	Cache             Cache
	Stats             *stats.Storage
	Enricher          enrichment.Provider
	EnrichmentTimeout time.Duration
	Metrics           MetricsEstimator
}

// Analyzer scores content and suggests keywords
type Analyzer struct {
	cache    Cache
	stats    *stats.Storage
	enricher enrichment.Provider
	timeout  time.Duration
	metrics  MetricsEstimator
}

// New creates a new Analyzer instance
func New(opts Options) *Analyzer {
	a := &Analyzer{
		cache:    opts.Cache,
		stats:    opts.Stats,
		enricher: opts.Enricher,
		timeout:  opts.EnrichmentTimeout,
		metrics:  opts.Metrics,
	}
	if a.cache == nil {
		a.cache = NewMemoryCache(defaultCacheTTL, defaultCacheSize)
	}
	if a.timeout <= 0 {
		a.timeout = defaultEnrichmentTimeout
	}
	if a.metrics == nil {
		a.metrics = SyntheticMetrics{}
	}
	return a
}

func (a *Analyzer) record(d stats.Delta) {
	if a.stats != nil {
		a.stats.Increment(d)
	}
}

// Analyze performs a complete SEO analysis of content. Enrichment failures
// never fail the analysis; they produce a degraded, local-only result.
func (a *Analyzer) Analyze(ctx context.Context, content string) (result *AnalysisResult, err error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("panic", fmt.Sprint(r)).Str("stack", string(debug.Stack())).Msg("analysis panicked")
			result, err = nil, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	cacheKey := generateCacheKey(content)
	if cached, found := a.cache.Get(ctx, cacheKey); found {
		a.record(stats.Delta{Analyses: 1, AnalysisCacheHits: 1})
		return cached.clone(), nil
	}
	a.record(stats.Delta{Analyses: 1, AnalysisCacheMisses: 1})

	result = a.analyze(ctx, content)

	// Degraded results are not cached so a recovered provider is used next time.
	if !result.Degraded {
		a.cache.Set(ctx, cacheKey, result.clone())
	}
	return result, nil
}

func (a *Analyzer) analyze(ctx context.Context, content string) *AnalysisResult {
	startTime := time.Now()
	text := NormalizeContent(content)

	external, degraded := a.enrich(ctx, text)

	terms := mergeTerms(external, ExtractPhrases(text))
	report := ScoreSEO(text, terms)

	tips := report.OptimizationTips
	if degraded {
		last := len(tips) - 1
		tips = append(tips[:last:last], degradedTip, tips[last])
	}

	suggestions := make([]KeywordSuggestion, 0, len(terms))
	for _, term := range terms {
		volume, difficulty := a.metrics.Estimate(term)
		suggestions = append(suggestions, KeywordSuggestion{
			Term:       term,
			Volume:     volume,
			Difficulty: difficulty,
			Inserted:   lexicon.ContainsTerm(text, term),
		})
	}

	result := &AnalysisResult{
		ReadabilityScore:  ReadabilityScore(text),
		SEOScore:          report.Score,
		KeywordDensity:    report.KeywordDensity,
		SuggestedKeywords: suggestions,
		OptimizationTips:  tips,
		Structure:         report.Structure,
		Degraded:          degraded,
	}
	if external != nil {
		result.RawExternalData = external.Raw
	}

	log.Debug().
		Int("words", report.Structure.WordCount).
		Int("seo_score", result.SEOScore).
		Int("readability", result.ReadabilityScore).
		Bool("degraded", degraded).
		Dur("elapsed", time.Since(startTime)).
		Msg("content analyzed")

	return result
}

// enrich calls the provider under a bounded timeout. degraded is true when a
// provider is configured but could not answer.
func (a *Analyzer) enrich(ctx context.Context, text string) (result *enrichment.Result, degraded bool) {
	if a.enricher == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	result, err := a.enricher.Enrich(ctx, text)
	if err != nil {
		log.Warn().Err(err).Str("provider", a.enricher.Name()).Msg("enrichment failed, using local analysis")
		a.record(stats.Delta{EnrichmentFailures: 1})
		return nil, true
	}
	return result, false
}

// mergeTerms puts provider keywords first, then local phrases, dropping
// case-insensitive duplicates.
func mergeTerms(external *enrichment.Result, local []string) []string {
	out := newTermList()
	if external != nil {
		for _, k := range external.Keywords {
			out.add(strings.Join(strings.Fields(k.Text), " "))
		}
	}
	for _, p := range local {
		out.add(p)
	}
	if len(out.terms) > maxSuggestions {
		return out.terms[:maxSuggestions]
	}
	return out.terms
}

// GetCacheStats returns statistics about the cache
func (a *Analyzer) GetCacheStats(ctx context.Context) CacheStats {
	cs := CacheStats{
		Entries: a.cache.Len(ctx),
		TTL:     a.cache.TTL(),
	}
	if a.stats != nil {
		current := a.stats.GetCurrentStats()
		cs.Hits = current.AnalysisCacheHits
		cs.Misses = current.AnalysisCacheMisses
	}
	return cs
}

// IsCached checks if an analysis of content is cached and not expired
func (a *Analyzer) IsCached(ctx context.Context, content string) bool {
	_, found := a.cache.Get(ctx, generateCacheKey(content))
	return found
}

// ClearCache clears the analysis cache
func (a *Analyzer) ClearCache(ctx context.Context) {
	a.cache.Clear(ctx)
}

// GetStats returns the statistics storage instance
func (a *Analyzer) GetStats() *stats.Storage {
	return a.stats
}

// Shutdown releases the cache. The stats storage is owned by the caller.
func (a *Analyzer) Shutdown() error {
	if a == nil {
		return nil
	}
	if err := a.cache.Close(); err != nil {
		return fmt.Errorf("failed to close analysis cache: %w", err)
	}
	return nil
}
