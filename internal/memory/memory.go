package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
)

// Store keeps expenses and settings in process memory. It survives
// only for the lifetime of the running process and never returns
// storage errors. Each instance owns its own state, so tests can
// create independent stores.
type Store struct {
	mu       sync.Mutex
	nextID   int64
	items    []core.Expense
	settings core.Settings
}

func New() *Store {
	return &Store{nextID: 1}
}

// AddExpense assigns the next id and stores the expense.
func (s *Store) AddExpense(_ context.Context, e core.Expense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	e.CreatedAt = time.Now().UTC()
	s.items = append(s.items, e)
	return e, nil
}

// ListExpenses returns a copy sorted by date descending, most recent
// insertion first on equal dates. Unparseable dates sort last.
func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	sort.SliceStable(out, func(i, j int) bool {
		ti, erri := core.ParseDate(out[i].Date)
		tj, errj := core.ParseDate(out[j].Date)
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// DeleteExpense removes the expense with the given id, returning the
// number removed (0 or 1).
func (s *Store) DeleteExpense(_ context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *Store) GetSettings(_ context.Context) (core.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings, nil
}

// PutSettings replaces the settings record wholesale.
func (s *Store) PutSettings(_ context.Context, settings core.Settings) (core.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.settings, nil
}

func (s *Store) Close() error {
	return nil
}
