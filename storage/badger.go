package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/phuslu/log"
	"github.com/timshannon/badgerhold/v4"
)

// BadgerStore is a Store persisted in a Badger database directory
type BadgerStore struct {
	store  *badgerhold.Store
	nextID uint64
	mu     sync.Mutex
}

// NewBadgerStore opens (or creates) the database at dir and resumes ids after
// the highest one already stored.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	var existing []Record
	if err := store.Find(&existing, nil); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to scan analysis records: %w", err)
	}

	s := &BadgerStore{store: store, nextID: 1}
	for _, rec := range existing {
		s.nextID = max(s.nextID, rec.ID+1)
	}

	log.Debug().Str("path", dir).Int("records", len(existing)).Msg("Analysis store opened")
	return s, nil
}

func (s *BadgerStore) Create(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if err := s.store.Insert(rec.ID, rec); err != nil {
		return fmt.Errorf("failed to save analysis record: %w", err)
	}
	s.nextID++
	return nil
}

func (s *BadgerStore) Get(_ context.Context, id uint64) (*Record, error) {
	var rec Record
	if err := s.store.Get(id, &rec); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get analysis record: %w", err)
	}
	rec.ID = id
	return &rec, nil
}

func (s *BadgerStore) List(_ context.Context) ([]*Record, error) {
	var records []Record
	if err := s.store.Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to list analysis records: %w", err)
	}

	out := make([]*Record, len(records))
	for i := range records {
		out[i] = &records[i]
	}
	sortByID(out)
	return out, nil
}

func (s *BadgerStore) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
