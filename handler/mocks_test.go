package handler_test

import (
	"context"

	"github.com/seo-optimizer/content-optimizer/analyzer"
	"github.com/seo-optimizer/content-optimizer/inserter"
)

type mockAnalyzer struct {
	analyzeFn func(ctx context.Context, content string) (*analyzer.AnalysisResult, error)
	calls     int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, content string) (*analyzer.AnalysisResult, error) {
	m.calls++
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, content)
	}
	return &analyzer.AnalysisResult{ReadabilityScore: 70, SEOScore: 55, KeywordDensity: 1.2}, nil
}

func (m *mockAnalyzer) GetCacheStats(context.Context) analyzer.CacheStats {
	return analyzer.CacheStats{Entries: 3}
}

type mockInserter struct {
	insertFn func(content, keyword string, position *int) (string, error)
	bulkFn   func(content string, keywords []string) (inserter.BulkResult, error)
}

func (m *mockInserter) Insert(content, keyword string, position *int) (string, error) {
	return m.insertFn(content, keyword, position)
}

func (m *mockInserter) InsertBulk(content string, keywords []string) (inserter.BulkResult, error) {
	return m.bulkFn(content, keywords)
}
