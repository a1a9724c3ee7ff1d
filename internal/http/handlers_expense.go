package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/srishti24jais/ispent-expense-tracker/internal/backend"
	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
	applog "github.com/srishti24jais/ispent-expense-tracker/internal/log"
)

// createExpenseRequest carries the POST body. Price is untyped so
// clients sending strings degrade safely instead of failing decode.
type createExpenseRequest struct {
	Name     string `json:"name"`
	Price    any    `json:"price"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses := s.service.ListExpenses(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	price := core.ParsePrice(req.Price)
	if price <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "price must be a positive number")
		return
	}

	date := sanitizeInput(req.Date)
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	} else if _, err := core.ParseDate(date); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date: use an ISO-8601 timestamp or YYYY-MM-DD")
		return
	}

	exp := core.Expense{
		Name:     sanitizeInput(req.Name),
		Price:    price,
		Category: core.Category(sanitizeInput(req.Category)),
		Date:     date,
	}
	if err := exp.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.service.AddExpense(r.Context(), exp)
	if err != nil {
		if errors.Is(err, backend.ErrStorageUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
		s.logger.ErrorContext(r.Context(), "Failed to save expense",
			applog.FieldError, err,
			applog.FieldExpenseName, exp.Name,
			applog.FieldOperation, applog.OpCreate)
		writeError(w, http.StatusInternalServerError, "error saving expense")
		return
	}

	atomic.AddInt64(&s.totalExpenses, 1)
	s.invalidateSummary()

	s.logger.InfoContext(r.Context(), "Expense created",
		applog.FieldExpenseID, created.ID,
		applog.FieldExpenseName, created.Name,
		applog.FieldPrice, created.Price,
		applog.FieldCategory, string(created.Category),
		applog.FieldOperation, applog.OpCreate)

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"expense": created,
	})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	removed, err := s.service.DeleteExpense(r.Context(), id)
	if err != nil {
		if errors.Is(err, backend.ErrStorageUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
		s.logger.ErrorContext(r.Context(), "Failed to delete expense",
			applog.FieldError, err,
			applog.FieldExpenseID, id,
			applog.FieldOperation, applog.OpDelete)
		writeError(w, http.StatusInternalServerError, "error deleting expense")
		return
	}
	if removed == 0 {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	s.invalidateSummary()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"removed": removed,
	})
}
