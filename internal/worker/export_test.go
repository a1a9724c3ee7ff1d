package worker

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/srishti24jais/ispent-expense-tracker/internal/amqp"
	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
	applog "github.com/srishti24jais/ispent-expense-tracker/internal/log"
)

func newTestWorker(t *testing.T) (*ExportWorker, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export", "events.csv")
	return NewExportWorker(path, applog.New(applog.DefaultConfig())), path
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export file: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export file: %v", err)
	}
	return rows
}

func TestExportCreatedEvent(t *testing.T) {
	w, path := newTestWorker(t)

	event := amqp.NewCreatedEvent(core.Expense{
		ID:       7,
		Name:     "coffee",
		Price:    3.5,
		Category: core.Food,
		Date:     "2025-03-10",
	})
	if err := w.HandleEvent(event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 row, got %d rows", len(rows))
	}
	if rows[0][0] != "received_at" {
		t.Errorf("expected header row, got %v", rows[0])
	}
	row := rows[1]
	if row[1] != amqp.EventExpenseCreated || row[2] != "7" || row[3] != "coffee" || row[4] != "3.50" || row[5] != "food" {
		t.Errorf("unexpected record: %v", row)
	}
	if w.Processed() != 1 {
		t.Errorf("expected 1 processed event, got %d", w.Processed())
	}
}

func TestExportAppendsAcrossEvents(t *testing.T) {
	w, path := newTestWorker(t)

	created := amqp.NewCreatedEvent(core.Expense{ID: 1, Name: "a", Price: 1, Category: core.Other, Date: "2025-01-01"})
	deleted := amqp.NewDeletedEvent(1)

	if err := w.HandleEvent(created); err != nil {
		t.Fatalf("created: %v", err)
	}
	if err := w.HandleEvent(deleted); err != nil {
		t.Fatalf("deleted: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[2][1] != amqp.EventExpenseDeleted || rows[2][2] != "1" {
		t.Errorf("unexpected delete record: %v", rows[2])
	}
	// Delete events carry no expense payload.
	if rows[2][3] != "" || rows[2][6] != "" {
		t.Errorf("delete record should have empty name and date: %v", rows[2])
	}
	if w.Processed() != 2 {
		t.Errorf("expected 2 processed events, got %d", w.Processed())
	}
}
