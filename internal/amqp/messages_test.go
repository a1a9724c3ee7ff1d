package amqp

import (
	"testing"

	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
)

func TestNewCreatedEvent(t *testing.T) {
	e := core.Expense{ID: 7, Name: "Coffee", Price: 4.5, Category: core.Food, Date: "2025-06-01T08:00:00Z"}
	ev := NewCreatedEvent(e)
	if ev.Type != EventExpenseCreated || ev.ID != 7 || ev.Name != "Coffee" || ev.Price != 4.5 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be set")
	}

	body, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := ExpenseEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != ev.ID || back.Type != ev.Type || back.Category != core.Food {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, ev)
	}
}

func TestNewDeletedEvent(t *testing.T) {
	ev := NewDeletedEvent(42)
	if ev.Type != EventExpenseDeleted || ev.ID != 42 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Name != "" || ev.Price != 0 {
		t.Fatalf("deleted event must not carry expense fields: %+v", ev)
	}
}
