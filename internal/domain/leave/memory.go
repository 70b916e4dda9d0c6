package leave

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is the in-process StoreAPI used by tests.
type MemoryStore struct {
	mu          sync.RWMutex
	types       map[string]LeaveType
	allocations map[string]Allocation // keyed employeeID|leaveTypeID
	requests    map[string]Request
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		types:       make(map[string]LeaveType),
		allocations: make(map[string]Allocation),
		requests:    make(map[string]Request),
	}
}

func allocationKey(employeeID, leaveTypeID string) string {
	return employeeID + "|" + leaveTypeID
}

func (s *MemoryStore) CreateType(_ context.Context, t LeaveType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.types[t.ID] = t
	return nil
}

func (s *MemoryStore) GetType(_ context.Context, id string) (LeaveType, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.types[id]
	return t, ok, nil
}

func (s *MemoryStore) ListTypes(_ context.Context) ([]LeaveType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LeaveType, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) GetAllocation(_ context.Context, employeeID, leaveTypeID string) (Allocation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	allocation, ok := s.allocations[allocationKey(employeeID, leaveTypeID)]
	return allocation, ok, nil
}

func (s *MemoryStore) UpsertAllocation(_ context.Context, allocation Allocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allocations[allocationKey(allocation.EmployeeID, allocation.LeaveTypeID)] = allocation
	return nil
}

func (s *MemoryStore) ListAllocations(_ context.Context, employeeID string) ([]Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Allocation
	for _, allocation := range s.allocations {
		if allocation.EmployeeID == employeeID {
			out = append(out, allocation)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeaveTypeID < out[j].LeaveTypeID })
	return out, nil
}

func (s *MemoryStore) CreateRequest(_ context.Context, request Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.ID] = request
	return nil
}

func (s *MemoryStore) GetRequest(_ context.Context, id string) (Request, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	request, ok := s.requests[id]
	return request, ok, nil
}

func (s *MemoryStore) UpdateRequest(_ context.Context, request Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.ID] = request
	return nil
}

func (s *MemoryStore) ListRequests(_ context.Context, filter RequestFilter) ([]Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Request
	for _, request := range s.requests {
		if filter.EmployeeID != "" && request.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ManagerID != "" && request.ManagerID != filter.ManagerID {
			continue
		}
		out = append(out, request)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
