package payroll

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is the in-process StoreAPI used by tests.
type MemoryStore struct {
	mu         sync.RWMutex
	components []Component
	entries    map[string]Entry  // keyed employeeID|month|status
	payslips   map[string]Payslip // keyed by id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:  make(map[string]Entry),
		payslips: make(map[string]Payslip),
	}
}

func entryKey(employeeID, month, status string) string {
	return employeeID + "|" + month + "|" + status
}

func (s *MemoryStore) CreateComponent(_ context.Context, component Component) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.components = append(s.components, component)
	return nil
}

func (s *MemoryStore) ListComponents(_ context.Context, employeeID string) ([]Component, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Component
	for _, component := range s.components {
		if component.EmployeeID == employeeID {
			out = append(out, component)
		}
	}
	return out, nil
}

func (s *MemoryStore) GetEntry(_ context.Context, employeeID, month, status string) (Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[entryKey(employeeID, month, status)]
	return entry, ok, nil
}

func (s *MemoryStore) SaveDraft(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.Status = StatusDraft
	s.entries[entryKey(entry.EmployeeID, entry.Month, StatusDraft)] = entry
	return nil
}

func (s *MemoryStore) MarkFinalized(_ context.Context, employeeID, month string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draftKey := entryKey(employeeID, month, StatusDraft)
	entry, ok := s.entries[draftKey]
	if !ok {
		return nil
	}
	delete(s.entries, draftKey)
	entry.Status = StatusFinalized
	entry.UpdatedAt = at
	s.entries[entryKey(employeeID, month, StatusFinalized)] = entry
	return nil
}

func (s *MemoryStore) ListEntries(_ context.Context, filter EntryFilter) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Entry
	for _, entry := range s.entries {
		if filter.EmployeeID != "" && entry.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Month != "" && entry.Month != filter.Month {
			continue
		}
		if filter.Status != "" && entry.Status != filter.Status {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month == out[j].Month {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

func (s *MemoryStore) CreatePayslip(_ context.Context, payslip Payslip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payslips[payslip.ID] = payslip
	return nil
}

func (s *MemoryStore) GetPayslip(_ context.Context, id string) (Payslip, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payslip, ok := s.payslips[id]
	return payslip, ok, nil
}

func (s *MemoryStore) GetPayslipForMonth(_ context.Context, employeeID, month string) (Payslip, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, payslip := range s.payslips {
		if payslip.EmployeeID == employeeID && payslip.Month == month {
			return payslip, true, nil
		}
	}
	return Payslip{}, false, nil
}

func (s *MemoryStore) ListPayslips(_ context.Context, filter PayslipFilter) ([]Payslip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Payslip
	for _, payslip := range s.payslips {
		if filter.EmployeeID != "" && payslip.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Month != "" && payslip.Month != filter.Month {
			continue
		}
		out = append(out, payslip)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month == out[j].Month {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}
