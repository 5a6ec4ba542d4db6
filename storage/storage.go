// Package storage keeps a record of every analysis request. Records are
// bookkeeping only: nothing in the analysis or insertion path reads them back.
package storage

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// ErrNotFound is returned when no record has the requested id
var ErrNotFound = errors.New("analysis record not found")

// Record is a stored analysis request. The score fields stay nil until a
// result is attached to the record.
type Record struct {
	ID                uint64    `json:"id" badgerhold:"key"`
	Content           string    `json:"content"`
	ReadabilityScore  *int      `json:"readabilityScore"`
	SEOScore          *int      `json:"seoScore"`
	KeywordDensity    *float64  `json:"keywordDensity"`
	SuggestedKeywords []string  `json:"suggestedKeywords"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Store creates and reads analysis records keyed by an auto-increment id
type Store interface {
	// Create assigns rec the next id, stamps CreatedAt when unset and saves it.
	Create(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id uint64) (*Record, error)
	// List returns every record in id order.
	List(ctx context.Context) ([]*Record, error)
	Close() error
}

// MemoryStore is a Store backed by a map. Its contents are lost on exit.
type MemoryStore struct {
	records map[uint64]*Record
	nextID  uint64
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store. Ids start at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uint64]*Record),
		nextID:  1,
	}
}

func (s *MemoryStore) Create(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	s.nextID++
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	stored := *rec
	s.records[rec.ID] = &stored
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uint64) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (s *MemoryStore) List(_ context.Context) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		copied := *rec
		out = append(out, &copied)
	}
	sortByID(out)
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func sortByID(records []*Record) {
	slices.SortFunc(records, func(a, b *Record) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
