package memory

import (
	"context"
	"sync"
	"time"

	"github.com/avdeyev/bodylens/internal/storage"
)

type resultEntry struct {
	record    storage.AnalysisRecord
	expiresAt time.Time
}

// ResultsStorage is an in-memory storage.ResultsStorage with a capacity
// bound and per-entry TTL. When full, the oldest entry is evicted first.
type ResultsStorage struct {
	mu       sync.Mutex
	entries  map[string]resultEntry
	order    []string // insertion order, oldest first
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewResultsStorage creates a bounded TTL store.
func NewResultsStorage(capacity int, ttl time.Duration) *ResultsStorage {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &ResultsStorage{
		entries:  make(map[string]resultEntry),
		order:    make([]string, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *ResultsStorage) Put(ctx context.Context, record storage.AnalysisRecord) error {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpiredLocked(now)

	if _, exists := s.entries[record.ID]; !exists {
		for len(s.entries) >= s.capacity {
			s.evictOldestLocked()
		}
		s.order = append(s.order, record.ID)
	}

	s.entries[record.ID] = resultEntry{
		record:    record,
		expiresAt: now.Add(s.ttl),
	}
	return nil
}

func (s *ResultsStorage) Get(ctx context.Context, id string) (*storage.AnalysisRecord, error) {
	_ = ctx

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	if s.now().After(entry.expiresAt) {
		s.deleteLocked(id)
		return nil, nil
	}

	record := entry.record
	return &record, nil
}

func (s *ResultsStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]resultEntry)
	s.order = s.order[:0]
	return nil
}

func (s *ResultsStorage) evictExpiredLocked(now time.Time) {
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			s.deleteLocked(id)
		}
	}
}

func (s *ResultsStorage) evictOldestLocked() {
	if len(s.order) == 0 {
		return
	}
	oldest := s.order[0]
	s.deleteLocked(oldest)
}

func (s *ResultsStorage) deleteLocked(id string) {
	delete(s.entries, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
