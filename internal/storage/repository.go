package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/srishti24jais/ispent-expense-tracker/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the durable storage engine. It holds one shared
// handle opened at construction and reused for all operations.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ListExpenses returns every stored expense ordered by date descending,
// ties broken by most recent insertion first.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, price, category, date, created_at FROM expenses ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		var e core.Expense
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.Price, &e.Category, &e.Date, &createdAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.CreatedAt = parseStoredTime(createdAt)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return expenses, nil
}

// AddExpense inserts the expense and returns it with the assigned id
// and created_at. The record is visible to subsequent ListExpenses
// calls immediately.
func (r *SQLiteRepository) AddExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (name, price, category, date, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.Name, e.Price, string(e.Category), e.Date, now.Format(time.RFC3339))
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("last insert id: %w", err)
	}

	e.ID = id
	e.CreatedAt = now

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"name", e.Name,
		"price", e.Price,
		"category", e.Category)

	return e, nil
}

// DeleteExpense removes the expense with the given id and returns the
// number of rows removed (0 or 1). A missing id is not an error.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

// GetSettings reads the single logical settings row, defaulting to
// zero values when none has ever been written.
func (r *SQLiteRepository) GetSettings(ctx context.Context) (core.Settings, error) {
	var s core.Settings
	err := r.db.QueryRowContext(ctx,
		`SELECT income, budget FROM users ORDER BY id DESC LIMIT 1`).Scan(&s.Income, &s.Budget)
	if err == sql.ErrNoRows {
		return core.Settings{}, nil
	}
	if err != nil {
		return core.Settings{}, fmt.Errorf("query settings: %w", err)
	}
	return s, nil
}

// PutSettings replaces the settings row wholesale. Delete-then-insert
// runs inside one transaction so a concurrent GetSettings can never
// observe a partial replace.
func (r *SQLiteRepository) PutSettings(ctx context.Context, s core.Settings) (core.Settings, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Settings{}, fmt.Errorf("begin settings tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return core.Settings{}, fmt.Errorf("clear settings: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (income, budget, created_at) VALUES (?, ?, ?)`,
		s.Income, s.Budget, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return core.Settings{}, fmt.Errorf("insert settings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return core.Settings{}, fmt.Errorf("commit settings: %w", err)
	}

	slog.InfoContext(ctx, "Settings replaced", "income", s.Income, "budget", s.Budget)
	return s, nil
}

func parseStoredTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
