package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/phuslu/log"
)

// MonthlyStats represents usage counters for a specific month
type MonthlyStats struct {
	Analyses            int       `json:"analyses"`
	AnalysisCacheHits   int       `json:"analysis_hits"`
	AnalysisCacheMisses int       `json:"analysis_misses"`
	EnrichmentFailures  int       `json:"enrichment_failures"`
	Insertions          int       `json:"insertions"`
	BulkInsertions      int       `json:"bulk_insertions"`
	KeywordsInserted    int       `json:"keywords_inserted"`
	KeywordsSkipped     int       `json:"keywords_skipped"`
	LastUpdated         time.Time `json:"last_updated"`
}

// Delta is a set of counter increments applied in one call
type Delta struct {
	Analyses            int
	AnalysisCacheHits   int
	AnalysisCacheMisses int
	EnrichmentFailures  int
	Insertions          int
	BulkInsertions      int
	KeywordsInserted    int
	KeywordsSkipped     int
}

// Storage handles persistent storage of statistics
type Storage struct {
	mutex       sync.RWMutex
	saveMutex   sync.Mutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	stopped     chan struct{}
	closeOnce   sync.Once
}

// NewStorage creates a new statistics storage instance
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create stats directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load monthly stats from %s: %w", s.filePath, err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes statistics to file via a temp file and rename
func (s *Storage) save() error {
	s.saveMutex.Lock()
	defer s.saveMutex.Unlock()

	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to encode monthly stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// backgroundWriter handles periodic writes to disk
func (s *Storage) backgroundWriter() {
	defer close(s.stopped)

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.saveAndLog()
		case <-ticker.C:
			s.saveAndLog()
		case <-s.done:
			return
		}
	}
}

func (s *Storage) saveAndLog() {
	if err := s.save(); err != nil {
		log.Error().Err(err).Str("file", s.filePath).Msg("failed to persist monthly stats")
	}
}

const monthLayout = "2006-01"

func currentMonth() string {
	return time.Now().Format(monthLayout)
}

// requestWrite signals that a write to disk is needed
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// write already pending
	}
}

// Increment adds d to the current month's counters
func (s *Storage) Increment(d Delta) {
	month := currentMonth()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats := s.stats[month]
	if stats == nil {
		stats = &MonthlyStats{}
		s.stats[month] = stats
	}

	stats.Analyses += d.Analyses
	stats.AnalysisCacheHits += d.AnalysisCacheHits
	stats.AnalysisCacheMisses += d.AnalysisCacheMisses
	stats.EnrichmentFailures += d.EnrichmentFailures
	stats.Insertions += d.Insertions
	stats.BulkInsertions += d.BulkInsertions
	stats.KeywordsInserted += d.KeywordsInserted
	stats.KeywordsSkipped += d.KeywordsSkipped
	stats.LastUpdated = time.Now()

	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	month := currentMonth()

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[month]; exists {
		return *stats
	}
	return MonthlyStats{}
}

// Cleanup removes statistics older than retainMonths months before the
// current one. retainMonths below zero is treated as zero.
func (s *Storage) Cleanup(retainMonths int) {
	retainMonths = max(retainMonths, 0)
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	oldest := first.AddDate(0, -retainMonths, 0).Format(monthLayout)

	s.mutex.Lock()
	removed := 0
	for key := range s.stats {
		if key < oldest {
			delete(s.stats, key)
			removed++
		}
	}
	s.mutex.Unlock()

	s.requestWrite()

	log.Info().Str("oldest_retained", oldest).Int("removed", removed).Msg("monthly stats cleanup")
}

// Save persists the statistics immediately
func (s *Storage) Save() error {
	return s.save()
}

// Shutdown stops the background writer and writes the final state
func (s *Storage) Shutdown() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	<-s.stopped
	return s.save()
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return *stats, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths lists every month with counters, newest first
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	slices.Sort(months)
	slices.Reverse(months)
	return months
}
