package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/srishti24jais/ispent-expense-tracker/internal/backend"
	"github.com/srishti24jais/ispent-expense-tracker/internal/core"
	applog "github.com/srishti24jais/ispent-expense-tracker/internal/log"
)

type putSettingsRequest struct {
	Income any `json:"income"`
	Budget any `json:"budget"`
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings := s.service.GetSettings(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"settings": settings,
	})
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req putSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Income == nil || req.Budget == nil {
		writeError(w, http.StatusUnprocessableEntity, "income and budget are both required")
		return
	}

	settings := core.Settings{
		Income: core.ParsePrice(req.Income),
		Budget: core.ParsePrice(req.Budget),
	}
	if err := settings.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.service.PutSettings(r.Context(), settings)
	if err != nil {
		if errors.Is(err, backend.ErrStorageUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
		s.logger.ErrorContext(r.Context(), "Failed to save settings",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpPut)
		writeError(w, http.StatusInternalServerError, "error saving settings")
		return
	}

	s.invalidateSummary()

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"settings": saved,
	})
}
