package timesheet

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is the in-process StoreAPI used by tests.
type MemoryStore struct {
	mu     sync.RWMutex
	sheets map[string]Timesheet
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sheets: make(map[string]Timesheet)}
}

func (s *MemoryStore) Create(_ context.Context, sheet Timesheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet.ID] = cloneSheet(sheet)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, sheet Timesheet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet.ID] = cloneSheet(sheet)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Timesheet, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sheet, ok := s.sheets[id]
	if !ok {
		return Timesheet{}, false, nil
	}
	return cloneSheet(sheet), true, nil
}

func (s *MemoryStore) GetByWeek(_ context.Context, employeeID string, weekStart time.Time) (Timesheet, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sheet := range s.sheets {
		if sheet.EmployeeID == employeeID && sheet.WeekStart.Equal(weekStart) {
			return cloneSheet(sheet), true, nil
		}
	}
	return Timesheet{}, false, nil
}

func (s *MemoryStore) List(_ context.Context, filter Filter) ([]Timesheet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Timesheet
	for _, sheet := range s.sheets {
		if filter.EmployeeID != "" && sheet.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.ManagerID != "" && sheet.ManagerID != filter.ManagerID {
			continue
		}
		if !filter.WeekStart.IsZero() && !sheet.WeekStart.Equal(filter.WeekStart) {
			continue
		}
		out = append(out, cloneSheet(sheet))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WeekStart.Equal(out[j].WeekStart) {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].WeekStart.After(out[j].WeekStart)
	})
	return out, nil
}

func (s *MemoryStore) CountByStatus(_ context.Context, status, managerID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, sheet := range s.sheets {
		if sheet.Status != status {
			continue
		}
		if managerID != "" && sheet.ManagerID != managerID {
			continue
		}
		count++
	}
	return count, nil
}

// cloneSheet copies slices so callers cannot mutate stored state through
// shared backing arrays.
func cloneSheet(sheet Timesheet) Timesheet {
	out := sheet
	out.Entries = append([]Entry(nil), sheet.Entries...)
	out.History = append([]HistoryItem(nil), sheet.History...)
	return out
}
