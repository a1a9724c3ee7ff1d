package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
	"github.com/srishti24jais/ispent-expense-tracker/internal/memory"
	"github.com/srishti24jais/ispent-expense-tracker/internal/storage"
)

// Config selects the storage mode for the process lifetime.
type Config struct {
	Kind         Kind
	SQLiteDBPath string

	// DurableRequired disables the memory fallback: when the SQLite
	// backend cannot initialize, reads degrade to defaults and writes
	// return ErrStorageUnavailable instead of silently losing
	// durability.
	DurableRequired bool
}

// Validate validates the backend configuration.
func (c Config) Validate() error {
	if !c.Kind.IsValid() {
		return fmt.Errorf("invalid backend kind: %s", c.Kind)
	}
	if c.Kind == SQLiteBackend && c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required for sqlite backend")
	}
	return nil
}

// Open selects the storage mode once for the process lifetime. The
// decision is never re-evaluated per call: a failed SQLite
// initialization either falls back to process memory or, when
// DurableRequired is set, yields the unavailable variant. It never
// returns an error for backend unreachability, only for invalid
// configuration.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Kind == MemoryBackend {
		logger.Info("Initialized memory backend")
		return &Result{Store: memory.New(), Kind: MemoryBackend}, nil
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err == nil {
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Kind: SQLiteBackend, Cleanup: repo.Close}, nil
	}

	if cfg.DurableRequired {
		logger.Error("SQLite backend unavailable, durable mode required",
			"error", err, "db_path", cfg.SQLiteDBPath)
		return &Result{Store: Unavailable{}, Kind: SQLiteBackend}, nil
	}

	logger.Warn("SQLite backend unavailable, falling back to memory",
		"error", err, "db_path", cfg.SQLiteDBPath)
	return &Result{Store: memory.New(), Kind: MemoryBackend}, nil
}

// Unavailable is the explicit tagged variant for a durable backend
// that was required but never initialized. Reads degrade to defaults;
// mutations surface ErrStorageUnavailable rather than silently no-op.
type Unavailable struct{}

func (Unavailable) ListExpenses(context.Context) ([]core.Expense, error) {
	return nil, ErrStorageUnavailable
}

func (Unavailable) AddExpense(context.Context, core.Expense) (core.Expense, error) {
	return core.Expense{}, ErrStorageUnavailable
}

func (Unavailable) DeleteExpense(context.Context, int64) (int64, error) {
	return 0, ErrStorageUnavailable
}

func (Unavailable) GetSettings(context.Context) (core.Settings, error) {
	return core.Settings{}, ErrStorageUnavailable
}

func (Unavailable) PutSettings(context.Context, core.Settings) (core.Settings, error) {
	return core.Settings{}, ErrStorageUnavailable
}

func (Unavailable) Close() error { return nil }
