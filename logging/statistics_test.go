package logging

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsTracking(t *testing.T) {
	s := NewStatistics(t.TempDir())

	s.TrackVisitor("10.0.0.1")
	s.TrackVisitor("10.0.0.2")
	s.TrackVisitor("10.0.0.1")

	s.TrackRequest("POST /api/analyze", 10*time.Millisecond, false)
	s.TrackRequest("POST /api/analyze", 30*time.Millisecond, false)
	s.TrackRequest("POST /api/insert-keyword", 20*time.Millisecond, true)
	s.TrackKeywords("SEO", "seo", "  content   marketing ", "")

	assert.Equal(t, 2, s.GetUniqueVisitorsCount())
	assert.InDelta(t, 33.33, s.GetErrorRate(), 0.01)

	summary := s.GetStatistics(false)
	assert.Equal(t, 3, summary["totalRequests"])
	assert.InDelta(t, 20.0, summary["averageLatency"], 0.001)
	assert.NotContains(t, summary, "popularKeywords")

	detailed := s.GetStatistics(true)
	assert.Equal(t, []Counter{{"seo", 2}, {"content marketing", 1}}, detailed["popularKeywords"])
	assert.Equal(t, []Counter{{"POST /api/analyze", 2}, {"POST /api/insert-keyword", 1}}, detailed["endpoints"])
}

func TestStatisticsPersistInterval(t *testing.T) {
	s := NewStatistics(t.TempDir())

	persisted := 0
	for i := 0; i < 250; i++ {
		if s.TrackRequest("GET /api/health", time.Millisecond, false) {
			persisted++
		}
	}
	assert.Equal(t, 2, persisted)
}

func TestStatisticsSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	s := NewStatistics(dir)
	s.TrackVisitor("192.168.1.5")
	s.TrackRequest("POST /api/analyze", 5*time.Millisecond, false)
	s.TrackKeywords("growth")
	require.NoError(t, s.Save())

	_, err := os.Stat(filepath.Join(dir, statisticsFile))
	require.NoError(t, err)

	loaded := NewStatistics(dir)
	assert.Equal(t, 1, loaded.TotalRequests)
	assert.Equal(t, 1, loaded.GetUniqueVisitorsCount())
	assert.Equal(t, 1, loaded.PopularKeywords["growth"])
}

func TestStatisticsLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, statisticsFile), []byte("{broken"), 0644))

	s := NewStatistics(dir)
	assert.Equal(t, 0, s.TotalRequests)
	assert.Error(t, s.Load())
}

func TestPruneVisitors(t *testing.T) {
	s := NewStatistics(t.TempDir())
	s.UniqueVisitors["old"] = time.Now().Add(-48 * time.Hour)
	s.TrackVisitor("new")

	assert.Equal(t, 1, s.PruneVisitors())
	assert.Len(t, s.UniqueVisitors, 1)
}

func TestStatisticsConcurrentAccess(t *testing.T) {
	s := NewStatistics(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.TrackVisitor("10.0.0.1")
				s.TrackRequest("POST /api/analyze", time.Millisecond, j%10 == 0)
				s.TrackKeywords("seo")
				_ = s.GetStatistics(true)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, s.TotalRequests)
	assert.Equal(t, 100, s.ErrorCount)
	assert.Equal(t, 1000, s.PopularKeywords["seo"])
}
