// Package worker turns consumed expense events into a local CSV
// export that survives broker restarts.
package worker

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/srishti24jais/ispent-expense-tracker/internal/amqp"
	applog "github.com/srishti24jais/ispent-expense-tracker/internal/log"
)

var csvHeader = []string{"received_at", "event", "expense_id", "name", "price", "category", "date"}

// ExportWorker appends each consumed expense event as one CSV row.
// Rows are append-only: a delete event is recorded as its own row, it
// does not rewrite earlier ones.
type ExportWorker struct {
	mu        sync.Mutex
	path      string
	logger    *applog.Logger
	processed int64
}

func NewExportWorker(path string, logger *applog.Logger) *ExportWorker {
	return &ExportWorker{
		path:   path,
		logger: logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleEvent writes one event to the export file. Returning an error
// causes the consumer to requeue the message.
func (w *ExportWorker) HandleEvent(event *amqp.ExpenseEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if dir := filepath.Dir(w.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	if info, err := f.Stat(); err == nil && info.Size() == 0 {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("write export header: %w", err)
		}
	}

	record := []string{
		time.Now().UTC().Format(time.RFC3339),
		event.Type,
		strconv.FormatInt(event.ID, 10),
		event.Name,
		strconv.FormatFloat(event.Price, 'f', 2, 64),
		string(event.Category),
		event.Date,
	}
	if err := writer.Write(record); err != nil {
		return fmt.Errorf("write export record: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush export file: %w", err)
	}

	atomic.AddInt64(&w.processed, 1)
	w.logger.Info("Exported expense event",
		"event", event.Type,
		applog.FieldExpenseID, event.ID)
	return nil
}

// Processed reports how many events this worker has exported.
func (w *ExportWorker) Processed() int64 {
	return atomic.LoadInt64(&w.processed)
}
