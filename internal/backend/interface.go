package backend

import (
	"context"
	"errors"

	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
)

// ErrStorageUnavailable is returned by mutating operations when the
// durable backend was required but could not be initialized.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store is the unified storage engine interface. Both modes behave
// identically from the caller's perspective except for durability
// across restarts.
type Store interface {
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	AddExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	DeleteExpense(ctx context.Context, id int64) (removed int64, err error)
	GetSettings(ctx context.Context) (core.Settings, error)
	PutSettings(ctx context.Context, s core.Settings) (core.Settings, error)
	Close() error
}

// Kind identifies the storage mode selected at startup.
type Kind string

const (
	SQLiteBackend Kind = "sqlite"
	MemoryBackend Kind = "memory"
)

// String implements fmt.Stringer
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the kind is a known storage mode.
func (k Kind) IsValid() bool {
	switch k {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources at shutdown.
type CleanupFunc func() error

// Result holds the selected store, the mode actually in effect, and an
// optional cleanup function.
type Result struct {
	Store   Store
	Kind    Kind
	Cleanup CleanupFunc
}
