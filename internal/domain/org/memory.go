package org

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps the directory in process memory; used by tests and any
// storeless wiring.
type MemoryStore struct {
	mu       sync.RWMutex
	mappings map[string]Mapping
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mappings: make(map[string]Mapping)}
}

func (s *MemoryStore) Upsert(_ context.Context, mapping Mapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mappings[mapping.EmployeeID] = mapping
	return nil
}

func (s *MemoryStore) ManagerFor(_ context.Context, employeeID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mapping, ok := s.mappings[employeeID]
	if !ok {
		return "", false, nil
	}
	return mapping.ManagerID, true, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Mapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Mapping, 0, len(s.mappings))
	for _, m := range s.mappings {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}
