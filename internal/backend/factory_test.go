package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"valid memory", Config{Kind: MemoryBackend}, false},
		{"valid sqlite", Config{Kind: SQLiteBackend, SQLiteDBPath: "./test.db"}, false},
		{"unknown kind", Config{Kind: "sheets"}, true},
		{"sqlite without path", Config{Kind: SQLiteBackend}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestOpenMemory(t *testing.T) {
	res, err := Open(context.Background(), Config{Kind: MemoryBackend}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if res.Kind != MemoryBackend {
		t.Fatalf("expected memory kind, got %s", res.Kind)
	}
	if _, err := res.Store.AddExpense(context.Background(), core.Expense{Name: "a", Price: 1, Category: core.Food, Date: "2025-06-01"}); err != nil {
		t.Fatalf("memory store add: %v", err)
	}
}

func TestOpenSQLite(t *testing.T) {
	res, err := Open(context.Background(), Config{
		Kind:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "ispent.db"),
	}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer res.Cleanup()
	if res.Kind != SQLiteBackend {
		t.Fatalf("expected sqlite kind, got %s", res.Kind)
	}
}

func TestOpenFallsBackToMemory(t *testing.T) {
	// A db path inside a read-only directory makes SQLite init fail.
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o700) })

	res, err := Open(context.Background(), Config{
		Kind:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(dir, "sub", "ispent.db"),
	}, nil)
	if err != nil {
		t.Fatalf("open must not fail on backend unreachability: %v", err)
	}
	if res.Kind != MemoryBackend {
		t.Fatalf("expected memory fallback, got %s", res.Kind)
	}
}

func TestOpenDurableRequired(t *testing.T) {
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o700) })

	res, err := Open(context.Background(), Config{
		Kind:            SQLiteBackend,
		SQLiteDBPath:    filepath.Join(dir, "sub", "ispent.db"),
		DurableRequired: true,
	}, nil)
	if err != nil {
		t.Fatalf("open must not fail on backend unreachability: %v", err)
	}

	ctx := context.Background()
	if _, err := res.Store.AddExpense(ctx, core.Expense{Name: "a", Price: 1, Category: core.Food, Date: "2025-06-01"}); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if _, err := res.Store.PutSettings(ctx, core.Settings{}); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
}
