package memory

import (
	"context"
	"testing"

	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
)

func TestAddAssignsIncreasingIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, err := s.AddExpense(ctx, core.Expense{Name: "a", Price: 1, Category: core.Food, Date: "2025-06-01T00:00:00Z"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, _ := s.AddExpense(ctx, core.Expense{Name: "b", Price: 2, Category: core.Food, Date: "2025-06-01T00:00:00Z"})
	if a.ID == 0 || b.ID <= a.ID {
		t.Fatalf("expected increasing ids, got %d then %d", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
}

func TestListOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.AddExpense(ctx, core.Expense{Name: "older", Price: 1, Category: core.Food, Date: "2025-05-01T00:00:00Z"})
	s.AddExpense(ctx, core.Expense{Name: "tie first", Price: 1, Category: core.Food, Date: "2025-06-01T00:00:00Z"})
	s.AddExpense(ctx, core.Expense{Name: "tie second", Price: 1, Category: core.Food, Date: "2025-06-01T00:00:00Z"})
	s.AddExpense(ctx, core.Expense{Name: "broken date", Price: 1, Category: core.Food, Date: "garbage"})

	list, err := s.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"tie second", "tie first", "older", "broken date"}
	if len(list) != len(want) {
		t.Fatalf("expected %d expenses, got %d", len(want), len(list))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, list[i].Name)
		}
	}
}

func TestDeleteIdempotent(t *testing.T) {
	s := New()
	ctx := context.Background()

	e, _ := s.AddExpense(ctx, core.Expense{Name: "a", Price: 1, Category: core.Food, Date: "2025-06-01T00:00:00Z"})
	n, err := s.DeleteExpense(ctx, e.ID)
	if err != nil || n != 1 {
		t.Fatalf("first delete: expected 1, got %d (err=%v)", n, err)
	}
	n, err = s.DeleteExpense(ctx, e.ID)
	if err != nil || n != 0 {
		t.Fatalf("second delete: expected 0, got %d (err=%v)", n, err)
	}
}

func TestSettingsReplace(t *testing.T) {
	s := New()
	ctx := context.Background()

	got, _ := s.GetSettings(ctx)
	if got.Income != 0 || got.Budget != 0 {
		t.Fatalf("expected zero defaults, got %+v", got)
	}

	s.PutSettings(ctx, core.Settings{Income: 1000, Budget: 500})
	s.PutSettings(ctx, core.Settings{Income: 2000, Budget: 800})

	got, _ = s.GetSettings(ctx)
	if got.Income != 2000 || got.Budget != 800 {
		t.Fatalf("expected latest settings, got %+v", got)
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	ctx := context.Background()
	a, b := New(), New()
	a.AddExpense(ctx, core.Expense{Name: "only in a", Price: 1, Category: core.Food, Date: "2025-06-01T00:00:00Z"})

	list, _ := b.ListExpenses(ctx)
	if len(list) != 0 {
		t.Fatalf("expected empty store, got %d expenses", len(list))
	}
}
