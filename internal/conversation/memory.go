package conversation

import (
	"context"
	"sync"
)

// memoryStore keeps records for the lifetime of the process.
type memoryStore struct {
	mu      sync.RWMutex
	records map[string]*CallRecord
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		records: make(map[string]*CallRecord),
	}
}

func (s *memoryStore) Save(ctx context.Context, record *CallRecord) error {
	if record == nil || record.CallID == "" {
		return ErrMissingCallID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.CallID] = record.Clone()
	return nil
}

func (s *memoryStore) Get(ctx context.Context, callID string) (*CallRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[callID]
	if !ok {
		return nil, ErrNotFound
	}
	return record.Clone(), nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*CallRecord)
	return nil
}
