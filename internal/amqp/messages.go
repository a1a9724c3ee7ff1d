package amqp

import (
	"encoding/json"
	"time"

	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
)

// Event types carried on the expense event queue.
const (
	EventExpenseCreated = "expense.created"
	EventExpenseDeleted = "expense.deleted"
)

// ExpenseEvent notifies external consumers (export worker, backups)
// that an expense was created or deleted.
type ExpenseEvent struct {
	Type      string        `json:"type"`
	ID        int64         `json:"id"`
	Name      string        `json:"name,omitempty"`
	Price     float64       `json:"price,omitempty"`
	Category  core.Category `json:"category,omitempty"`
	Date      string        `json:"date,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewCreatedEvent builds an event for a freshly stored expense.
func NewCreatedEvent(e core.Expense) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      EventExpenseCreated,
		ID:        e.ID,
		Name:      e.Name,
		Price:     e.Price,
		Category:  e.Category,
		Date:      e.Date,
		Timestamp: time.Now(),
	}
}

// NewDeletedEvent builds an event for a removed expense id.
func NewDeletedEvent(id int64) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      EventExpenseDeleted,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventFromJSON creates an event from JSON bytes.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var msg ExpenseEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
