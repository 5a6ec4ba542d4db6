package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/phuslu/log"
)

const (
	visitorWindow   = 24 * time.Hour
	topEntries      = 5
	statisticsFile  = "statistics.json"
	persistInterval = 100
)

// Statistics collects request-level usage figures for the API
type Statistics struct {
	UniqueVisitors  map[string]time.Time `json:"uniqueVisitors"`  // IP -> last visit
	TotalRequests   int                  `json:"totalRequests"`   // tracked API requests
	ErrorCount      int                  `json:"errorCount"`      // responses with status >= 400
	Endpoints       map[string]int       `json:"endpoints"`       // "METHOD /path" -> count
	PopularKeywords map[string]int       `json:"popularKeywords"` // lowercase keyword -> count
	AverageLatency  float64              `json:"averageLatency"`  // milliseconds
	TotalLatency    float64              `json:"totalLatency"`
	LastPersisted   time.Time            `json:"lastPersisted"`

	filePath  string
	mutex     sync.RWMutex
	saveMutex sync.Mutex
}

// NewStatistics creates statistics persisted under dataDir and loads any
// previously saved figures.
func NewStatistics(dataDir string) *Statistics {
	s := &Statistics{
		UniqueVisitors:  make(map[string]time.Time),
		Endpoints:       make(map[string]int),
		PopularKeywords: make(map[string]int),
		LastPersisted:   time.Now(),
		filePath:        filepath.Join(dataDir, statisticsFile),
	}

	if err := s.Load(); err != nil {
		log.Warn().Err(err).Str("file", s.filePath).Msg("Could not load existing statistics")
	}
	return s
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// TrackRequest records one API request and reports whether enough requests
// have accumulated since the last multiple of 100 to warrant a save.
func (s *Statistics) TrackRequest(endpoint string, latency time.Duration, failed bool) (persist bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.TotalRequests++
	s.Endpoints[endpoint]++
	if failed {
		s.ErrorCount++
	}

	s.TotalLatency += float64(latency.Microseconds()) / 1000
	s.AverageLatency = s.TotalLatency / float64(s.TotalRequests)

	return s.TotalRequests%persistInterval == 0
}

// TrackKeywords counts keywords requested for insertion
func (s *Statistics) TrackKeywords(keywords ...string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, kw := range keywords {
		kw = strings.ToLower(strings.Join(strings.Fields(kw), " "))
		if kw != "" {
			s.PopularKeywords[kw]++
		}
	}
}

// PruneVisitors forgets visitors not seen within the visitor window
func (s *Statistics) PruneVisitors() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := time.Now().Add(-visitorWindow)
	pruned := 0
	for ip, lastVisit := range s.UniqueVisitors {
		if lastVisit.Before(cutoff) {
			delete(s.UniqueVisitors, ip)
			pruned++
		}
	}
	return pruned
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.uniqueVisitors()
}

func (s *Statistics) uniqueVisitors() int {
	cutoff := time.Now().Add(-visitorWindow)
	count := 0
	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}
	return count
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.errorRate()
}

func (s *Statistics) errorRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.ErrorCount) / float64(s.TotalRequests) * 100
}

// Counter is one entry of a ranked count
type Counter struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// top ranks counts by descending count, then name
func top(counts map[string]int, n int) []Counter {
	out := make([]Counter, 0, len(counts))
	for name, count := range counts {
		out = append(out, Counter{name, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// GetStatistics returns a summary of the collected figures. Per-endpoint and
// keyword rankings are only included when detailed is set.
func (s *Statistics) GetStatistics(detailed bool) map[string]interface{} {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	summary := map[string]interface{}{
		"uniqueVisitors24h": s.uniqueVisitors(),
		"totalRequests":     s.TotalRequests,
		"errorRate":         s.errorRate(),
		"averageLatency":    s.AverageLatency,
	}
	if detailed {
		summary["endpoints"] = top(s.Endpoints, len(s.Endpoints))
		summary["popularKeywords"] = top(s.PopularKeywords, topEntries)
		summary["lastPersisted"] = s.LastPersisted
	}
	return summary
}

// Save persists the statistics to the data directory
func (s *Statistics) Save() error {
	s.saveMutex.Lock()
	defer s.saveMutex.Unlock()

	s.mutex.Lock()
	s.LastPersisted = time.Now()
	data, err := json.Marshal(s)
	s.mutex.Unlock()
	if err != nil {
		return fmt.Errorf("could not encode statistics: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("could not create statistics directory: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("could not write statistics file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("could not replace statistics file: %w", err)
	}
	return nil
}

// Load reads the statistics from the data directory. A missing file is not
// an error.
func (s *Statistics) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("could not open statistics file: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("could not decode statistics: %w", err)
	}
	if s.UniqueVisitors == nil {
		s.UniqueVisitors = make(map[string]time.Time)
	}
	if s.Endpoints == nil {
		s.Endpoints = make(map[string]int)
	}
	if s.PopularKeywords == nil {
		s.PopularKeywords = make(map[string]int)
	}
	return nil
}
