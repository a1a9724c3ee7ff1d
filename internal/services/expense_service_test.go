package services

import (
	"context"
	"errors"
	"testing"

	"github.com/srishti24jais/ispent-expense-tracker/internal/amqp"
	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
	"github.com/srishti24jais/ispent-expense-tracker/internal/memory"
)

type failingStore struct{}

var errBoom = errors.New("boom")

func (failingStore) ListExpenses(context.Context) ([]core.Expense, error) { return nil, errBoom }
func (failingStore) AddExpense(context.Context, core.Expense) (core.Expense, error) {
	return core.Expense{}, errBoom
}
func (failingStore) DeleteExpense(context.Context, int64) (int64, error) { return 0, errBoom }
func (failingStore) GetSettings(context.Context) (core.Settings, error) {
	return core.Settings{}, errBoom
}
func (failingStore) PutSettings(context.Context, core.Settings) (core.Settings, error) {
	return core.Settings{}, errBoom
}
func (failingStore) Close() error { return nil }

type capturingPublisher struct {
	events []*amqp.ExpenseEvent
	err    error
}

func (p *capturingPublisher) PublishExpenseEvent(_ context.Context, event *amqp.ExpenseEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func TestListExpensesDegradesToEmpty(t *testing.T) {
	svc := NewExpenseService(failingStore{}, nil)
	got := svc.ListExpenses(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
	if svc.DegradedReads() != 1 {
		t.Fatalf("expected 1 degraded read, got %d", svc.DegradedReads())
	}
}

func TestGetSettingsDegradesToDefaults(t *testing.T) {
	svc := NewExpenseService(failingStore{}, nil)
	got := svc.GetSettings(context.Background())
	if got.Income != 0 || got.Budget != 0 {
		t.Fatalf("expected zero settings, got %+v", got)
	}
	if svc.DegradedReads() != 1 {
		t.Fatalf("expected 1 degraded read, got %d", svc.DegradedReads())
	}
}

func TestWritesSurfaceErrors(t *testing.T) {
	svc := NewExpenseService(failingStore{}, nil)
	ctx := context.Background()

	if _, err := svc.AddExpense(ctx, core.Expense{Name: "a"}); err == nil {
		t.Fatalf("expected add error")
	}
	if _, err := svc.DeleteExpense(ctx, 1); err == nil {
		t.Fatalf("expected delete error")
	}
	if _, err := svc.PutSettings(ctx, core.Settings{}); err == nil {
		t.Fatalf("expected put settings error")
	}
}

func TestAddPublishesCreatedEvent(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewExpenseService(memory.New(), pub)

	created, err := svc.AddExpense(context.Background(), core.Expense{
		Name: "Coffee", Price: 4.5, Category: core.Food, Date: "2025-06-01T08:00:00Z",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(pub.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Type != amqp.EventExpenseCreated || ev.ID != created.ID || ev.Name != "Coffee" {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestDeletePublishesOnlyWhenRemoved(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewExpenseService(memory.New(), pub)
	ctx := context.Background()

	created, _ := svc.AddExpense(ctx, core.Expense{Name: "a", Price: 1, Category: core.Food, Date: "2025-06-01"})
	pub.events = nil

	n, err := svc.DeleteExpense(ctx, created.ID)
	if err != nil || n != 1 {
		t.Fatalf("delete: expected 1, got %d (err=%v)", n, err)
	}
	if len(pub.events) != 1 || pub.events[0].Type != amqp.EventExpenseDeleted {
		t.Fatalf("expected one deleted event, got %v", pub.events)
	}

	pub.events = nil
	n, err = svc.DeleteExpense(ctx, created.ID)
	if err != nil || n != 0 {
		t.Fatalf("second delete: expected 0, got %d (err=%v)", n, err)
	}
	if len(pub.events) != 0 {
		t.Fatalf("no event expected for missing id, got %v", pub.events)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("amqp down")}
	svc := NewExpenseService(memory.New(), pub)

	if _, err := svc.AddExpense(context.Background(), core.Expense{
		Name: "a", Price: 1, Category: core.Food, Date: "2025-06-01",
	}); err != nil {
		t.Fatalf("write must succeed despite publish failure: %v", err)
	}
}
